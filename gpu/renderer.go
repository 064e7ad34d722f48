// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is a rendering target: something that can provide a texture
// view to render into and then present the result. [Surface] renders
// into a window; [RenderTexture] renders offscreen.
type Renderer interface {

	// Device returns the device rendering into this target.
	Device() *Device

	// Format returns the color texture format of the target.
	Format() wgpu.TextureFormat

	// Size returns the current size of the target in pixels.
	Size() image.Point

	// GetCurrentTexture returns the texture view that is the current
	// target for rendering.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// DepthView returns the depth texture view, or nil if the target
	// was created without a depth buffer.
	DepthView() *wgpu.TextureView

	// Present presents the rendered texture, finalizing the frame.
	Present()

	// SetSize sets the size of the target,
	// doesn't do anything if already that size.
	SetSize(size image.Point)

	// Release releases the target resources.
	Release()
}

// Frame renders one frame of the given meshes to the target: a single
// pass that clears color (and depth, if the target has a depth buffer)
// and draws each mesh with the pipeline, then presents. The pipeline
// must have been configured for the target's format, and with a
// DepthFormat matching the target's depth buffer or lack of one.
func Frame(rt Renderer, pl *Pipeline, meshes ...*Mesh) error {
	view, err := rt.GetCurrentTexture()
	if errors.Log(err) != nil {
		return err
	}
	cmd, err := rt.Device().Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer cmd.Release()

	r, g, b, a := colors.ToFloat32(pl.ClearColor)
	desc := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)},
		}},
	}
	if dv := rt.DepthView(); dv != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            dv,
			DepthClearValue: 1,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		}
	}
	rp := cmd.BeginRenderPass(desc)
	pl.Bind(rp)
	for _, ms := range meshes {
		ms.Draw(rp)
	}
	rp.End()
	rp.Release()

	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer cmdBuffer.Release()
	rt.Device().Queue.Submit(cmdBuffer)
	rt.Present()
	return nil
}

// newDepthTexture returns a depth texture and view of the given size,
// for use as a render pass depth attachment.
func newDepthTexture(dev *Device, size image.Point, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := dev.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "keylight.Depth",
		Size: wgpu.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if errors.Log(err) != nil {
		return nil, nil, err
	}
	view, err := tex.CreateView(nil)
	if errors.Log(err) != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}
