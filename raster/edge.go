// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import "github.com/chewxy/math32"

// scalar screen-space helpers for triangle setup.

// maxDepth is the cleared value of the depth buffer; every in-range
// fragment depth compares less than it.
const maxDepth = math32.MaxFloat32

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pixelBounds returns the inclusive pixel rectangle covering the three
// screen-space points, clamped to a w by h target.
func pixelBounds(x0, y0, x1, y1, x2, y2 float32, w, h int) (minX, minY, maxX, maxY int) {
	minX = clampInt(int(math32.Floor(math32.Min(x0, math32.Min(x1, x2)))), 0, w-1)
	minY = clampInt(int(math32.Floor(math32.Min(y0, math32.Min(y1, y2)))), 0, h-1)
	maxX = clampInt(int(math32.Ceil(math32.Max(x0, math32.Max(x1, x2)))), 0, w-1)
	maxY = clampInt(int(math32.Ceil(math32.Max(y0, math32.Max(y1, y2)))), 0, h-1)
	return
}
