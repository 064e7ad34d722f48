// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylight

import (
	"unsafe"

	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is the per-vertex input record: object-space position at
// attribute location 0 and normal at location 1, interleaved as two
// Float32x3 attributes with a 24-byte stride. Normals are expected to
// be unit length but nothing enforces that.
type Vertex struct {
	Position math32.Vector3
	Normal   math32.Vector3
}

// VertexOutput is what the vertex stage hands to the rasterizer: the
// homogeneous clip-space position and the pass-through normal. The
// rasterizer interpolates both perspective-correct across each
// primitive before the fragment stage runs.
type VertexOutput struct {
	ClipPosition math32.Vector4
	Normal       math32.Vector3
}

// VertexLayout returns the vertex buffer layout matching [Vertex], for
// use in a render pipeline's vertex state.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Offset:         0,
				ShaderLocation: PositionLocation,
				Format:         wgpu.VertexFormatFloat32x3,
			},
			{
				Offset:         uint64(unsafe.Offsetof(Vertex{}.Normal)),
				ShaderLocation: NormalLocation,
				Format:         wgpu.VertexFormatFloat32x3,
			},
		},
	}
}

// BindGroupLayouts creates the two bind group layouts of the program's
// binding contract: group 0 with the 64-byte [Camera] uniform visible
// to the vertex stage, and group 1 with the 16-byte [Material] uniform
// visible to the fragment stage. The caller owns both layouts.
func BindGroupLayouts(dev *wgpu.Device) (camera, material *wgpu.BindGroupLayout, err error) {
	camera, err = dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "keylight.Camera",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(unsafe.Sizeof(Camera{})),
			},
		}},
	})
	if err != nil {
		return nil, nil, err
	}
	material, err = dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "keylight.Material",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(unsafe.Sizeof(Material{})),
			},
		}},
	})
	if err != nil {
		camera.Release()
		return nil, nil, err
	}
	return camera, material, nil
}
