// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import "cogentcore.org/core/math32"

// clipVertex is a vertex mid-pipeline: the clip-space position from the
// vertex stage plus the attributes that interpolate across a primitive.
type clipVertex struct {
	pos    math32.Vector4
	normal math32.Vector3
}

func (cv clipVertex) lerp(other clipVertex, t float32) clipVertex {
	return clipVertex{
		pos:    cv.pos.Lerp(other.pos, t),
		normal: cv.normal.Lerp(other.normal, t),
	}
}

// clipPlane runs one Sutherland-Hodgman pass over the polygon against
// the plane whose signed distance is given by dist: vertices with
// dist >= 0 are inside. Interpolation happens in homogeneous clip
// space, which keeps attributes perspective-correct.
func clipPlane(poly []clipVertex, dist func(clipVertex) float32) []clipVertex {
	if len(poly) == 0 {
		return poly
	}
	out := make([]clipVertex, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	dprev := dist(prev)
	for _, cur := range poly {
		dcur := dist(cur)
		if (dcur >= 0) != (dprev >= 0) {
			t := dprev / (dprev - dcur)
			out = append(out, prev.lerp(cur, t))
		}
		if dcur >= 0 {
			out = append(out, cur)
		}
		prev = cur
		dprev = dcur
	}
	return out
}

// clipTriangle clips one triangle against the view volume: the four
// x and y frustum sides plus the near plane at z = 0 (0..1 clip depth).
// The far plane is left unclipped: the projection in use places it at
// infinity, so no finite point reaches it. Returns a convex polygon
// with 0 to 7 vertices.
func clipTriangle(v0, v1, v2 clipVertex) []clipVertex {
	poly := []clipVertex{v0, v1, v2}
	poly = clipPlane(poly, func(cv clipVertex) float32 { return cv.pos.W - cv.pos.X })
	poly = clipPlane(poly, func(cv clipVertex) float32 { return cv.pos.W + cv.pos.X })
	poly = clipPlane(poly, func(cv clipVertex) float32 { return cv.pos.W - cv.pos.Y })
	poly = clipPlane(poly, func(cv clipVertex) float32 { return cv.pos.W + cv.pos.Y })
	poly = clipPlane(poly, func(cv clipVertex) float32 { return cv.pos.Z })
	return poly
}
