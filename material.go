// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylight

import "cogentcore.org/core/math32"

// Material is the group 1 uniform block: the fixed RGBA colour shared
// by every fragment of a draw. It is 16 bytes matching WGSL vec4<f32>
// and can be uploaded as-is. Alpha is carried in the block but the
// fragment stage never reads it: output alpha is always 1. Components
// are expected in 0..1 for meaningful output but are not clamped here.
type Material struct {
	Colour math32.Vector4
}

// Intensity is the key-light term: 0.5 + 0.25*dot(normal, (1,1,1)).
// The dot product is deliberately not normalized by either operand, so
// intensity scales with the normal's length as well as with its angle
// to (1,1,1), and interpolated normals are not renormalized before use.
// Normals facing away from (1,1,1) drive the term negative; negative
// values flow through to the pre-clamp output and are cut off only by
// the output target's representable range.
func Intensity(normal math32.Vector3) float32 {
	return 0.5 + 0.25*normal.Dot(math32.Vec3(1, 1, 1))
}

// FragmentStage is the fragment stage of the program: the material
// colour scaled by [Intensity] of the interpolated normal, with alpha
// forced to 1 regardless of the material's alpha. The same intensity
// factor applies to all three colour channels. The returned value is
// the raw arithmetic result before any output-range clamp. Pure and
// deterministic: invocations share nothing and may run in any order.
func (mt *Material) FragmentStage(normal math32.Vector3) math32.Vector4 {
	i := Intensity(normal)
	return math32.Vec4(mt.Colour.X*i, mt.Colour.Y*i, mt.Colour.Z*i, 1)
}
