// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/keylight"
	"github.com/cogentcore/webgpu/wgpu"
)

// Mesh holds one indexed triangle list uploaded to device-local
// vertex and index buffers, ready to draw with a [Pipeline].
type Mesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
	device       *Device
}

// NewMesh uploads the given triangle list. The index count must be a
// multiple of 3 and every index must address a vertex.
func NewMesh(dev *Device, verts []keylight.Vertex, idx []uint32) (*Mesh, error) {
	if len(idx)%3 != 0 {
		err := fmt.Errorf("gpu: index count %d is not a multiple of 3", len(idx))
		return nil, errors.Log(err)
	}
	for _, ix := range idx {
		if int(ix) >= len(verts) {
			err := fmt.Errorf("gpu: index %d out of range for %d vertices", ix, len(verts))
			return nil, errors.Log(err)
		}
	}
	ms := &Mesh{device: dev, indexCount: uint32(len(idx))}
	var err error
	ms.vertexBuffer, err = dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "keylight.Vertex",
		Contents: wgpu.ToBytes(verts),
		Usage:    wgpu.BufferUsageVertex,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	ms.indexBuffer, err = dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "keylight.Index",
		Contents: wgpu.ToBytes(idx),
		Usage:    wgpu.BufferUsageIndex,
	})
	if errors.Log(err) != nil {
		ms.Release()
		return nil, err
	}
	return ms, nil
}

// NumIndexes returns the number of indexes drawn, 3 per triangle.
func (ms *Mesh) NumIndexes() uint32 {
	return ms.indexCount
}

// Draw records an indexed draw of the whole mesh into the pass.
// A pipeline must already be bound.
func (ms *Mesh) Draw(rp *wgpu.RenderPass) {
	rp.SetVertexBuffer(0, ms.vertexBuffer, 0, wgpu.WholeSize)
	rp.SetIndexBuffer(ms.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	rp.DrawIndexed(ms.indexCount, 1, 0, 0, 0)
}

// Release releases the mesh buffers.
func (ms *Mesh) Release() {
	if ms.indexBuffer != nil {
		ms.indexBuffer.Release()
		ms.indexBuffer = nil
	}
	if ms.vertexBuffer != nil {
		ms.vertexBuffer.Release()
		ms.vertexBuffer = nil
	}
}
