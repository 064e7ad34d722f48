// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"

	"cogentcore.org/core/math32"
)

// Framebuffer is the CPU render target: a colour plane of raw float32
// RGBA values and a depth plane. The colour plane stores the fragment
// stage's arithmetic results unclamped; values outside 0..1 are cut off
// only when [Framebuffer.Image] converts to the 8-bit output range,
// mirroring how a GPU target clamps at the texel write, not in the
// program.
type Framebuffer struct {
	size  image.Point
	color []math32.Vector4
	depth []float32
}

// NewFramebuffer returns a framebuffer of the given size, cleared to
// transparent black with the depth plane at its maximum.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		size:  image.Point{width, height},
		color: make([]math32.Vector4, width*height),
		depth: make([]float32, width*height),
	}
	fb.ClearDepth()
	return fb
}

// Size returns the pixel size of the framebuffer.
func (fb *Framebuffer) Size() image.Point { return fb.size }

// Clear fills the colour plane with the given value and resets depth.
func (fb *Framebuffer) Clear(c math32.Vector4) {
	for i := range fb.color {
		fb.color[i] = c
	}
	fb.ClearDepth()
}

// ClearDepth resets the depth plane so any fragment passes.
func (fb *Framebuffer) ClearDepth() {
	for i := range fb.depth {
		fb.depth[i] = maxDepth
	}
}

// At returns the raw pre-clamp colour value at the given pixel.
func (fb *Framebuffer) At(x, y int) math32.Vector4 {
	return fb.color[y*fb.size.X+x]
}

// Depth returns the depth value at the given pixel.
func (fb *Framebuffer) Depth(x, y int) float32 {
	return fb.depth[y*fb.size.X+x]
}

// Image converts the colour plane to an 8-bit RGBA image. Each channel
// is clamped to 0..1 here, at the output boundary, and scaled to 0..255
// with rounding. This is the only place any clamping happens.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: fb.size})
	i := 0
	for y := 0; y < fb.size.Y; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < fb.size.X; x++ {
			c := fb.color[i]
			row[x*4] = unorm8(c.X)
			row[x*4+1] = unorm8(c.Y)
			row[x*4+2] = unorm8(c.Z)
			row[x*4+3] = unorm8(c.W)
			i++
		}
	}
	return img
}

// unorm8 clamps to 0..1 and converts to 0..255 with rounding, the same
// conversion an 8-bit unorm texture applies on write.
func unorm8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
