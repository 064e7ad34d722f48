// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/keylight"
)

// UVSphere returns a latitude-longitude sphere of the given radius,
// centered at the origin. segments is the number of longitude
// divisions (at least 3) and rings the number of latitude bands (at
// least 2). Normals are the normalized positions, so shading varies
// purely with surface direction.
func UVSphere(radius float32, segments, rings int) ([]keylight.Vertex, []uint32) {
	segments = max(segments, 3)
	rings = max(rings, 2)

	verts := make([]keylight.Vertex, 0, (rings+1)*segments)
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		y := math32.Cos(phi)
		sp := math32.Sin(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			n := math32.Vec3(sp*math32.Cos(theta), y, sp*math32.Sin(theta))
			verts = append(verts, keylight.Vertex{Position: n.MulScalar(radius), Normal: n})
		}
	}

	at := func(r, s int) uint32 { return uint32(r*segments + s%segments) }
	idx := make([]uint32, 0, 6*segments*rings)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a, b := at(r, s), at(r, s+1)
			c, d := at(r+1, s+1), at(r+1, s)
			if r > 0 { // in the top row, a and b coincide at the pole
				idx = append(idx, a, b, c)
			}
			if r < rings-1 { // in the bottom row, c and d coincide
				idx = append(idx, a, c, d)
			}
		}
	}
	return verts, idx
}
