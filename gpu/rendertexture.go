// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/imagex"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTexture is an offscreen, non-window-backed rendering target,
// functioning like a [Surface]. The rendered frame can be read back
// with [RenderTexture.GrabImage]. It does not own its device.
type RenderTexture struct {
	gpu    *GPU
	device *Device

	format wgpu.TextureFormat
	size   image.Point

	texture *wgpu.Texture
	view    *wgpu.TextureView

	depthFormat  wgpu.TextureFormat
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

// NewRenderTexture returns a new offscreen render target of the given
// size, for the given GPU and device.
//   - device can be shared with a Surface if one is in use, otherwise
//     create one (or use [NoDisplayGPU]) and release it at the end.
//   - depthFormat is the depth buffer format: use
//     [wgpu.TextureFormatUndefined] for none, or typically
//     [wgpu.TextureFormatDepth32Float].
//
// The color format is always [wgpu.TextureFormatRGBA8Unorm], stored
// without gamma mapping so that grabbed pixel bytes are the shader
// outputs clamped to unorm.
func NewRenderTexture(gp *GPU, dev *Device, size image.Point, depthFormat wgpu.TextureFormat) (*RenderTexture, error) {
	rt := &RenderTexture{
		gpu:         gp,
		device:      dev,
		format:      wgpu.TextureFormatRGBA8Unorm,
		size:        size,
		depthFormat: depthFormat,
	}
	if err := rt.config(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTexture) config() error {
	tex, err := rt.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "keylight.RenderTexture",
		Size: wgpu.Extent3D{
			Width:              uint32(rt.size.X),
			Height:             uint32(rt.size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        rt.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if errors.Log(err) != nil {
		return err
	}
	rt.texture = tex
	rt.view, err = tex.CreateView(nil)
	if errors.Log(err) != nil {
		rt.releaseFrame()
		return err
	}
	if rt.depthFormat != wgpu.TextureFormatUndefined {
		rt.depthTexture, rt.depthView, err = newDepthTexture(rt.device, rt.size, rt.depthFormat)
		if err != nil {
			rt.releaseFrame()
			return err
		}
	}
	return nil
}

func (rt *RenderTexture) releaseFrame() {
	if rt.depthView != nil {
		rt.depthView.Release()
		rt.depthView = nil
	}
	if rt.depthTexture != nil {
		rt.depthTexture.Release()
		rt.depthTexture = nil
	}
	if rt.view != nil {
		rt.view.Release()
		rt.view = nil
	}
	if rt.texture != nil {
		rt.texture.Release()
		rt.texture = nil
	}
}

// Device returns the device rendering into this target.
func (rt *RenderTexture) Device() *Device { return rt.device }

// Format returns the color texture format.
func (rt *RenderTexture) Format() wgpu.TextureFormat { return rt.format }

// Size returns the current size of the target in pixels.
func (rt *RenderTexture) Size() image.Point { return rt.size }

// DepthView returns the depth texture view, or nil if the target was
// created without a depth buffer.
func (rt *RenderTexture) DepthView() *wgpu.TextureView { return rt.depthView }

// GetCurrentTexture returns a texture view that is the current
// target for rendering.
func (rt *RenderTexture) GetCurrentTexture() (*wgpu.TextureView, error) {
	return rt.view, nil
}

func (rt *RenderTexture) Present() {
	// no-op
}

// SetSize sets the size of the target, reallocating its textures,
// doesn't do anything if already that size.
func (rt *RenderTexture) SetSize(size image.Point) {
	if rt.size == size || size.X == 0 || size.Y == 0 {
		return
	}
	rt.releaseFrame()
	rt.size = size
	errors.Log(rt.config())
}

// Release releases the target textures. It does not release the
// device, which the target does not own.
func (rt *RenderTexture) Release() {
	rt.releaseFrame()
}

// GrabImage reads the rendered frame back from the device.
// It waits for rendering to complete.
func (rt *RenderTexture) GrabImage() (*image.RGBA, error) {
	dims := NewTextureBufferDims(rt.size)
	buf, err := rt.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "keylight.Grab",
		Size:  dims.PaddedSize(),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	defer buf.Release()

	cmd, err := rt.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	defer cmd.Release()
	cmd.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  rt.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(dims.PaddedRowSize),
				RowsPerImage: uint32(dims.Height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(dims.Width),
			Height:             uint32(dims.Height),
			DepthOrArrayLayers: 1,
		},
	)
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	defer cmdBuffer.Release()
	rt.device.Queue.Submit(cmdBuffer)

	if err := BufferReadSync(rt.device, int(dims.PaddedSize()), buf); err != nil {
		return nil, err
	}
	data := buf.GetMappedRange(0, uint(dims.PaddedSize()))
	img := image.NewRGBA(image.Rectangle{Max: rt.size})
	if dims.HasNoPadding() {
		copy(img.Pix, data[:dims.UnpaddedSize()])
	} else {
		for y := 0; y < rt.size.Y; y++ {
			row := data[uint64(y)*dims.PaddedRowSize:]
			copy(img.Pix[y*img.Stride:], row[:dims.UnpaddedRowSize])
		}
	}
	buf.Unmap()
	return img, nil
}

// AssertImage grabs the rendered frame and asserts that it is the
// same as the testdata image of the given name, per [imagex.Assert].
func (rt *RenderTexture) AssertImage(t imagex.TestingT, filename string) {
	img, err := rt.GrabImage()
	if err != nil {
		t.Errorf("AssertImage: error grabbing image: %v", err)
		return
	}
	imagex.Assert(t, img, filename)
}
