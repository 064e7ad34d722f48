// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster is a CPU reference pipeline for the keylight shading
// program: it runs the same two pure stage functions the GPU runs,
// through perspective-correct rasterization, so the program's output
// can be produced and tested on hosts with no GPU at all.
//
// The pipeline does what a minimal device-side render pass does:
// vertex staging, homogeneous clipping, perspective divide and
// viewport mapping, depth-tested barycentric rasterization with
// perspective-correct attribute interpolation, and fragment staging
// into a float [Framebuffer] that clamps only on output conversion.
// Rasterization runs in parallel over disjoint row bands, one
// goroutine per band, so repeated draws of the same inputs produce
// bit-identical framebuffers.
package raster

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"cogentcore.org/core/math32"
	"cogentcore.org/keylight"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline renders indexed triangle meshes with the keylight program.
// Set Camera and Material before drawing, or use [NewPipeline] for
// sensible defaults. A Pipeline carries no per-draw state: Draw
// may be called any number of times against any framebuffer.
type Pipeline struct {

	// Camera is the group 0 uniform block, read by the vertex stage.
	Camera keylight.Camera

	// Material is the group 1 uniform block, read by the fragment stage.
	Material keylight.Material

	// Background is the clear colour used by [Pipeline.RenderImage].
	Background math32.Vector4

	// Cull selects which winding to discard, with counter-clockwise
	// front faces. The zero value draws both windings.
	Cull wgpu.CullMode

	// Workers caps the rasterization goroutines. 0 means NumCPU.
	Workers int
}

// NewPipeline returns a pipeline with an identity camera, a white
// material, an opaque black background, and no culling.
func NewPipeline() *Pipeline {
	pl := &Pipeline{
		Material:   keylight.Material{Colour: math32.Vec4(1, 1, 1, 1)},
		Background: math32.Vec4(0, 0, 0, 1),
	}
	pl.Camera.ViewProjection.SetIdentity()
	return pl
}

// Draw renders the indexed triangle list into fb. Every three indices
// form one triangle; the vertex stage runs once per vertex and the
// fragment stage once per covered, depth-passing pixel. The depth test
// makes the image independent of triangle submission order.
func (pl *Pipeline) Draw(fb *Framebuffer, verts []keylight.Vertex, idx []uint32) error {
	if len(idx)%3 != 0 {
		return fmt.Errorf("raster.Draw: index count %d is not a multiple of 3", len(idx))
	}
	for _, ix := range idx {
		if int(ix) >= len(verts) {
			return fmt.Errorf("raster.Draw: index %d out of range for %d vertices", ix, len(verts))
		}
	}

	staged := make([]clipVertex, len(verts))
	for i, v := range verts {
		out := pl.Camera.VertexStage(v)
		staged[i] = clipVertex{pos: out.ClipPosition, normal: out.Normal}
	}

	var tris []screenTri
	for i := 0; i < len(idx); i += 3 {
		poly := clipTriangle(staged[idx[i]], staged[idx[i+1]], staged[idx[i+2]])
		for j := 0; j+2 < len(poly); j++ {
			tr, ok := pl.setup(fb, poly[0], poly[j+1], poly[j+2])
			if ok {
				tris = append(tris, tr)
			}
		}
	}
	if len(tris) == 0 {
		return nil
	}

	nw := pl.Workers
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	if nw > fb.size.Y {
		nw = fb.size.Y
	}
	rows := (fb.size.Y + nw - 1) / nw
	var wg sync.WaitGroup
	for b := 0; b < nw; b++ {
		y0 := b * rows
		y1 := min(y0+rows, fb.size.Y)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for ti := range tris {
				tris[ti].rasterize(fb, &pl.Material, y0, y1)
			}
		}(y0, y1)
	}
	wg.Wait()
	return nil
}

// screenTri is one clipped triangle after perspective divide and
// viewport mapping: positive-span screen coordinates, linear depth,
// and perspective-correct attribute numerators (normal and 1 over w).
type screenTri struct {
	x0, y0, x1, y1, x2, y2 float32
	z0, z1, z2             float32
	invW0, invW1, invW2    float32
	n0, n1, n2             math32.Vector3
	vs1x, vs1y, vs2x, vs2y float32
	span                   float32
	minX, minY, maxX, maxY int
}

// setup projects one clipped triangle to the screen and precomputes
// its rasterization state. Reports false for degenerate or culled
// triangles. Screen y points down, so a counter-clockwise triangle in
// normalized device coordinates has a negative screen-space span.
func (pl *Pipeline) setup(fb *Framebuffer, a, b, c clipVertex) (screenTri, bool) {
	w := float32(fb.size.X)
	h := float32(fb.size.Y)

	project := func(cv clipVertex) (x, y, z, invW float32) {
		invW = 1 / cv.pos.W
		x = (cv.pos.X*invW + 1) * 0.5 * w
		y = (1 - cv.pos.Y*invW) * 0.5 * h
		z = cv.pos.Z * invW
		return
	}

	var tr screenTri
	tr.x0, tr.y0, tr.z0, tr.invW0 = project(a)
	tr.x1, tr.y1, tr.z1, tr.invW1 = project(b)
	tr.x2, tr.y2, tr.z2, tr.invW2 = project(c)

	span := (tr.x1-tr.x0)*(tr.y2-tr.y0) - (tr.y1-tr.y0)*(tr.x2-tr.x0)
	if span == 0 {
		return tr, false
	}
	switch pl.Cull {
	case wgpu.CullModeBack:
		if span > 0 { // clockwise in device coordinates
			return tr, false
		}
	case wgpu.CullModeFront:
		if span < 0 {
			return tr, false
		}
	}
	if span < 0 {
		// reorder so the barycentric signs come out positive inside
		b, c = c, b
		tr.x1, tr.y1, tr.z1, tr.invW1 = project(b)
		tr.x2, tr.y2, tr.z2, tr.invW2 = project(c)
		span = -span
	}

	tr.vs1x, tr.vs1y = tr.x1-tr.x0, tr.y1-tr.y0
	tr.vs2x, tr.vs2y = tr.x2-tr.x0, tr.y2-tr.y0
	tr.span = span
	tr.n0 = a.normal.MulScalar(tr.invW0)
	tr.n1 = b.normal.MulScalar(tr.invW1)
	tr.n2 = c.normal.MulScalar(tr.invW2)
	tr.minX, tr.minY, tr.maxX, tr.maxY = pixelBounds(
		tr.x0, tr.y0, tr.x1, tr.y1, tr.x2, tr.y2, fb.size.X, fb.size.Y)
	return tr, true
}

// rasterize shades the triangle's pixels within rows [rowMin, rowMax).
// Sampling is at pixel centers; attributes interpolate over 1/w for
// perspective correctness, and depth tests less-than.
func (tr *screenTri) rasterize(fb *Framebuffer, mt *keylight.Material, rowMin, rowMax int) {
	y0 := max(tr.minY, rowMin)
	y1 := min(tr.maxY, rowMax-1)
	w := fb.size.X
	for y := y0; y <= y1; y++ {
		py := float32(y) + 0.5
		for x := tr.minX; x <= tr.maxX; x++ {
			px := float32(x) + 0.5
			qx := px - tr.x0
			qy := py - tr.y0
			s := (qx*tr.vs2y - qy*tr.vs2x) / tr.span
			t := (tr.vs1x*qy - tr.vs1y*qx) / tr.span
			if s < 0 || t < 0 || s+t > 1 {
				continue
			}
			u := 1 - s - t
			z := u*tr.z0 + s*tr.z1 + t*tr.z2
			di := y*w + x
			if z >= fb.depth[di] {
				continue
			}
			iw := u*tr.invW0 + s*tr.invW1 + t*tr.invW2
			n := math32.Vec3(
				(u*tr.n0.X+s*tr.n1.X+t*tr.n2.X)/iw,
				(u*tr.n0.Y+s*tr.n1.Y+t*tr.n2.Y)/iw,
				(u*tr.n0.Z+s*tr.n1.Z+t*tr.n2.Z)/iw,
			)
			fb.depth[di] = z
			fb.color[di] = mt.FragmentStage(n)
		}
	}
}
