// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface manages the physical device for the visible window surface,
// and the swapchain of textures presented to it. It implements
// [Renderer]. The Surface creates and owns its own [Device], because
// the device must be compatible with the surface.
type Surface struct {
	surface *wgpu.Surface
	gpu     *GPU
	device  *Device

	format    wgpu.TextureFormat
	alphaMode wgpu.CompositeAlphaMode
	size      image.Point

	depthFormat  wgpu.TextureFormat
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	// texture and view acquired for the frame being rendered,
	// released on Present.
	curTexture *wgpu.Texture
	curView    *wgpu.TextureView
}

// NewSurface configures the given WebGPU surface at the given size,
// creating a device for it. Pass [wgpu.TextureFormatUndefined] as the
// depth format to render without a depth buffer, or typically
// [wgpu.TextureFormatDepth32Float] for one.
func NewSurface(gp *GPU, sp *wgpu.Surface, size image.Point, depthFormat wgpu.TextureFormat) (*Surface, error) {
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, err
	}
	sf := &Surface{
		surface:     sp,
		gpu:         gp,
		device:      dev,
		size:        size,
		depthFormat: depthFormat,
	}
	caps := sp.GetCapabilities(gp.Adapter)
	sf.format = caps.Formats[0]
	sf.alphaMode = caps.AlphaModes[0]
	sf.configure()
	if sf.depthFormat != wgpu.TextureFormatUndefined {
		if err := sf.configDepth(); err != nil {
			sf.Release()
			return nil, err
		}
	}
	if Debug {
		slog.Info("keylight gpu: surface configured",
			"format", sf.format, "size", sf.size)
	}
	return sf, nil
}

func (sf *Surface) configure() {
	sf.surface.Configure(sf.gpu.Adapter, sf.device.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.format,
		Width:       uint32(sf.size.X),
		Height:      uint32(sf.size.Y),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   sf.alphaMode,
	})
}

func (sf *Surface) configDepth() error {
	tex, view, err := newDepthTexture(sf.device, sf.size, sf.depthFormat)
	if err != nil {
		return err
	}
	sf.depthTexture, sf.depthView = tex, view
	return nil
}

func (sf *Surface) releaseDepth() {
	if sf.depthView != nil {
		sf.depthView.Release()
		sf.depthView = nil
	}
	if sf.depthTexture != nil {
		sf.depthTexture.Release()
		sf.depthTexture = nil
	}
}

// Device returns the device owned by the surface.
func (sf *Surface) Device() *Device { return sf.device }

// Format returns the texture format the surface presents.
func (sf *Surface) Format() wgpu.TextureFormat { return sf.format }

// Size returns the current size of the surface in pixels.
func (sf *Surface) Size() image.Point { return sf.size }

// DepthView returns the depth texture view, or nil if the surface was
// created without a depth buffer.
func (sf *Surface) DepthView() *wgpu.TextureView { return sf.depthView }

// GetCurrentTexture returns a texture view onto the next swapchain
// texture. The view is valid until [Surface.Present].
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	tex, err := sf.surface.GetCurrentTexture()
	if errors.Log(err) != nil {
		return nil, err
	}
	sf.curTexture = tex
	view, err := tex.CreateView(nil)
	if errors.Log(err) != nil {
		tex.Release()
		sf.curTexture = nil
		return nil, err
	}
	sf.curView = view
	return view, nil
}

// Present presents the rendered frame to the window and releases the
// acquired swapchain texture.
func (sf *Surface) Present() {
	sf.surface.Present()
	if sf.curView != nil {
		sf.curView.Release()
		sf.curView = nil
	}
	if sf.curTexture != nil {
		sf.curTexture.Release()
		sf.curTexture = nil
	}
}

// SetSize sets the size for the surface, reconfiguring the swapchain
// and depth buffer, doesn't do anything if already that size.
// Call this from the window resize callback.
func (sf *Surface) SetSize(size image.Point) {
	if sf.size == size || size.X == 0 || size.Y == 0 {
		return
	}
	sf.device.WaitDone()
	sf.size = size
	sf.configure()
	if sf.depthFormat != wgpu.TextureFormatUndefined {
		sf.releaseDepth()
		errors.Log(sf.configDepth())
	}
}

// Release releases the surface resources, including its device.
func (sf *Surface) Release() {
	sf.releaseDepth()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	if sf.device != nil {
		sf.device.Release()
		sf.device = nil
	}
}
