// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/keylight"
)

// Box returns an axis-aligned cuboid of the given size, centered at
// the origin, with flat per-face normals: 24 vertices, 36 indices.
func Box(size math32.Vector3) ([]keylight.Vertex, []uint32) {
	h := size.DivScalar(2)

	// the eight corners, named by sign along x, y, z
	var (
		nnn = math32.Vec3(-h.X, -h.Y, -h.Z)
		pnn = math32.Vec3(h.X, -h.Y, -h.Z)
		npn = math32.Vec3(-h.X, h.Y, -h.Z)
		ppn = math32.Vec3(h.X, h.Y, -h.Z)
		nnp = math32.Vec3(-h.X, -h.Y, h.Z)
		pnp = math32.Vec3(h.X, -h.Y, h.Z)
		npp = math32.Vec3(-h.X, h.Y, h.Z)
		ppp = math32.Vec3(h.X, h.Y, h.Z)
	)

	verts := make([]keylight.Vertex, 0, 24)
	idx := make([]uint32, 0, 36)

	// start with neg z as typically back
	verts, idx = quad(verts, idx, pnn, nnn, npn, ppn, math32.Vec3(0, 0, -1))
	verts, idx = quad(verts, idx, nnn, pnn, pnp, nnp, math32.Vec3(0, -1, 0))
	verts, idx = quad(verts, idx, pnp, pnn, ppn, ppp, math32.Vec3(1, 0, 0))
	verts, idx = quad(verts, idx, nnn, nnp, npp, npn, math32.Vec3(-1, 0, 0))
	verts, idx = quad(verts, idx, npp, ppp, ppn, npn, math32.Vec3(0, 1, 0))
	verts, idx = quad(verts, idx, nnp, pnp, ppp, npp, math32.Vec3(0, 0, 1))
	return verts, idx
}
