// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"

	"cogentcore.org/keylight"
	"golang.org/x/image/draw"
)

// RenderImage clears a fresh framebuffer of the given size times
// supersample, draws the mesh, and returns the resolved 8-bit image at
// size. A supersample below 1 renders at native size.
func (pl *Pipeline) RenderImage(size image.Point, supersample int, verts []keylight.Vertex, idx []uint32) (*image.RGBA, error) {
	ss := supersample
	if ss < 1 {
		ss = 1
	}
	fb := NewFramebuffer(size.X*ss, size.Y*ss)
	fb.Clear(pl.Background)
	if err := pl.Draw(fb, verts, idx); err != nil {
		return nil, err
	}
	img := fb.Image()
	if ss == 1 {
		return img, nil
	}
	return Downsample(img, size.X, size.Y), nil
}

// Downsample scales src to w by h with bilinear filtering, resolving a
// supersampled render the way a multisample target resolves: after the
// per-sample clamp to the output range.
func Downsample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
