// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates simple indexed triangle meshes in the vertex
// layout the keylight program consumes: interleaved position and
// normal, counter-clockwise front faces, outward normals.
package shape

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/keylight"
)

// quad appends one rectangular face with corners a, b, c, d given in
// counter-clockwise order as seen from the normal side.
func quad(verts []keylight.Vertex, idx []uint32, a, b, c, d, normal math32.Vector3) ([]keylight.Vertex, []uint32) {
	base := uint32(len(verts))
	verts = append(verts,
		keylight.Vertex{Position: a, Normal: normal},
		keylight.Vertex{Position: b, Normal: normal},
		keylight.Vertex{Position: c, Normal: normal},
		keylight.Vertex{Position: d, Normal: normal},
	)
	idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	return verts, idx
}

// Plane returns a rectangle of the given width (x) and depth (z),
// centered at the origin in the xz plane, facing up.
func Plane(width, depth float32) ([]keylight.Vertex, []uint32) {
	hx, hz := width/2, depth/2
	return quad(nil, nil,
		math32.Vec3(-hx, 0, hz), math32.Vec3(hx, 0, hz),
		math32.Vec3(hx, 0, -hz), math32.Vec3(-hx, 0, -hz),
		math32.Vec3(0, 1, 0))
}
