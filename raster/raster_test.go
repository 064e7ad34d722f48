// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/math32"
	"cogentcore.org/keylight"
	"cogentcore.org/keylight/shape"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullScreen is the standard full-screen triangle: under an identity
// camera it covers all of clip space after clipping, at constant depth
// and normal.
func fullScreen(normal math32.Vector3, z float32) ([]keylight.Vertex, []uint32) {
	return []keylight.Vertex{
		{Position: math32.Vec3(-1, -1, z), Normal: normal},
		{Position: math32.Vec3(3, -1, z), Normal: normal},
		{Position: math32.Vec3(-1, 3, z), Normal: normal},
	}, []uint32{0, 1, 2}
}

// a key-lit red full-screen triangle must shade every pixel exactly
// (0.75, 0, 0, 1) before clamping and (191, 0, 0, 255) after.
func TestDrawFullScreenKeyLit(t *testing.T) {
	pl := NewPipeline()
	pl.Material.Colour = math32.Vec4(1, 0, 0, 1)
	fb := NewFramebuffer(8, 8)
	fb.Clear(pl.Background)

	verts, idx := fullScreen(math32.Vec3(0, 0, 1), 0.5)
	require.NoError(t, pl.Draw(fb, verts, idx))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, math32.Vec4(0.75, 0, 0, 1), fb.At(x, y), "pixel %d,%d", x, y)
			assert.Equal(t, float32(0.5), fb.Depth(x, y), "depth %d,%d", x, y)
		}
	}

	img := fb.Image()
	assert.Equal(t, color.RGBA{R: 191, A: 255}, img.RGBAAt(3, 3))
}

// a normal facing away from the key light drives intensity negative:
// the framebuffer keeps the negative value, the image clamps it to
// black with alpha still fully opaque.
func TestDrawPreClampNegative(t *testing.T) {
	pl := NewPipeline() // white material
	fb := NewFramebuffer(4, 4)
	fb.Clear(pl.Background)

	verts, idx := fullScreen(math32.Vec3(-1, -1, -1), 0.5)
	require.NoError(t, pl.Draw(fb, verts, idx))

	assert.Equal(t, math32.Vec4(-0.25, -0.25, -0.25, 1), fb.At(2, 1))
	assert.Equal(t, color.RGBA{A: 255}, fb.Image().RGBAAt(2, 1))
}

func TestDrawErrors(t *testing.T) {
	pl := NewPipeline()
	fb := NewFramebuffer(4, 4)
	verts, _ := fullScreen(math32.Vec3(0, 0, 1), 0.5)

	assert.ErrorContains(t, pl.Draw(fb, verts, []uint32{0, 1}), "multiple of 3")
	assert.ErrorContains(t, pl.Draw(fb, verts, []uint32{0, 1, 7}), "out of range")
}

// the depth test must make output independent of draw order.
func TestDrawDepthOrderIndependent(t *testing.T) {
	n := math32.Vec3(0, 0, 1)
	nearV, nearI := fullScreen(n, 0.25)
	farV, farI := fullScreen(n, 0.75)
	red := math32.Vec4(1, 0, 0, 1)
	green := math32.Vec4(0, 1, 0, 1)

	pl := NewPipeline()
	frontToBack := NewFramebuffer(8, 8)
	frontToBack.Clear(pl.Background)
	pl.Material.Colour = green
	require.NoError(t, pl.Draw(frontToBack, nearV, nearI))
	pl.Material.Colour = red
	require.NoError(t, pl.Draw(frontToBack, farV, farI))

	backToFront := NewFramebuffer(8, 8)
	backToFront.Clear(pl.Background)
	require.NoError(t, pl.Draw(backToFront, farV, farI))
	pl.Material.Colour = green
	require.NoError(t, pl.Draw(backToFront, nearV, nearI))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, math32.Vec4(0, 0.75, 0, 1), frontToBack.At(x, y))
			assert.Equal(t, frontToBack.At(x, y), backToFront.At(x, y))
			assert.Equal(t, float32(0.25), frontToBack.Depth(x, y))
		}
	}
}

// front faces wind counter-clockwise; culling discards exactly the
// selected winding.
func TestDrawCull(t *testing.T) {
	verts, ccw := fullScreen(math32.Vec3(0, 0, 1), 0.5)
	cw := []uint32{0, 2, 1}
	lit := math32.Vec4(0.75, 0.75, 0.75, 1)
	clear := math32.Vec4(0, 0, 0, 1)

	pl := NewPipeline()
	pl.Cull = wgpu.CullModeBack
	fb := NewFramebuffer(4, 4)
	fb.Clear(pl.Background)
	require.NoError(t, pl.Draw(fb, verts, cw))
	assert.Equal(t, clear, fb.At(2, 2), "clockwise culled")
	require.NoError(t, pl.Draw(fb, verts, ccw))
	assert.Equal(t, lit, fb.At(2, 2))

	pl.Cull = wgpu.CullModeFront
	fb.Clear(pl.Background)
	require.NoError(t, pl.Draw(fb, verts, ccw))
	assert.Equal(t, clear, fb.At(2, 2), "counter-clockwise culled")
	require.NoError(t, pl.Draw(fb, verts, cw))
	assert.Equal(t, lit, fb.At(2, 2))
}

func TestDrawClip(t *testing.T) {
	pl := NewPipeline()
	fb := NewFramebuffer(8, 8)
	fb.Clear(pl.Background)
	clear := math32.Vec4(0, 0, 0, 1)

	// entirely behind the near plane: nothing rasterizes
	behind := []keylight.Vertex{
		{Position: math32.Vec3(-0.5, -0.5, -0.5)},
		{Position: math32.Vec3(0.5, -0.5, -0.5)},
		{Position: math32.Vec3(0, 0.5, -0.5)},
	}
	require.NoError(t, pl.Draw(fb, behind, []uint32{0, 1, 2}))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, clear, fb.At(x, y))
		}
	}

	// straddling the near plane: only the part in front draws
	straddle := []keylight.Vertex{
		{Position: math32.Vec3(-1, -1, -0.5), Normal: math32.Vec3(0, 0, 1)},
		{Position: math32.Vec3(1, -1, 0.5), Normal: math32.Vec3(0, 0, 1)},
		{Position: math32.Vec3(1, 1, 0.5), Normal: math32.Vec3(0, 0, 1)},
	}
	require.NoError(t, pl.Draw(fb, straddle, []uint32{0, 1, 2}))
	covered := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if fb.At(x, y) != clear {
				covered++
			}
		}
	}
	assert.Greater(t, covered, 0)
	assert.Less(t, covered, 64)
}

// rasterization over row bands must be bit-identical regardless of the
// worker count.
func TestDrawDeterministic(t *testing.T) {
	v := keylight.View{Eye: math32.Vec3(3, 3, 3), Direction: math32.Vec3(-1, -1, -1), Aspect: 1}
	verts := []keylight.Vertex{
		{Position: math32.Vec3(-2, 0, -2), Normal: math32.Vec3(0, 1, 0)},
		{Position: math32.Vec3(2, 0, -2), Normal: math32.Vec3(0, 1, 0)},
		{Position: math32.Vec3(2, 0, 2), Normal: math32.Vec3(0, 1, 0)},
		{Position: math32.Vec3(-2, 0, 2), Normal: math32.Vec3(0, 1, 0)},
	}
	idx := []uint32{0, 1, 2, 0, 2, 3}

	render := func(workers int) *Framebuffer {
		pl := NewPipeline()
		pl.Camera = v.Camera()
		pl.Material.Colour = math32.Vec4(0.3, 0.6, 0.9, 1)
		pl.Workers = workers
		fb := NewFramebuffer(64, 64)
		fb.Clear(pl.Background)
		require.NoError(t, pl.Draw(fb, verts, idx))
		return fb
	}

	one := render(1)
	many := render(8)
	assert.Equal(t, one.color, many.color)
	assert.Equal(t, one.depth, many.depth)
}

func TestRenderImageSupersample(t *testing.T) {
	pl := NewPipeline()
	pl.Material.Colour = math32.Vec4(1, 0, 0, 1)
	verts, idx := fullScreen(math32.Vec3(0, 0, 1), 0.5)

	img, err := pl.RenderImage(image.Pt(16, 16), 2, verts, idx)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	assert.Equal(t, color.RGBA{R: 191, A: 255}, img.RGBAAt(8, 8))

	native, err := pl.RenderImage(image.Pt(16, 16), 0, verts, idx)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), native.Bounds())
}

func TestRenderImageBox(t *testing.T) {
	v := keylight.View{Eye: math32.Vec3(3, 3, 3), Direction: math32.Vec3(-1, -1, -1), Aspect: 1}
	pl := NewPipeline()
	pl.Camera = v.Camera()
	pl.Material.Colour = math32.Vec4(0.2, 0.5, 0.9, 1)
	pl.Cull = wgpu.CullModeBack

	verts, idx := shape.Box(math32.Vec3(2, 2, 2))
	img, err := pl.RenderImage(image.Pt(160, 160), 2, verts, idx)
	require.NoError(t, err)
	imagex.Assert(t, img, "box")
}

func TestRenderImageSphere(t *testing.T) {
	v := keylight.View{Eye: math32.Vec3(3, 3, 3), Direction: math32.Vec3(-1, -1, -1), Aspect: 1}
	pl := NewPipeline()
	pl.Camera = v.Camera()
	pl.Material.Colour = math32.Vec4(0.9, 0.3, 0.2, 1)
	pl.Cull = wgpu.CullModeBack

	verts, idx := shape.UVSphere(1.25, 32, 16)
	img, err := pl.RenderImage(image.Pt(160, 160), 2, verts, idx)
	require.NoError(t, err)
	imagex.Assert(t, img, "sphere")
}
