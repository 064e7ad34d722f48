// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylight

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestIntensity(t *testing.T) {
	assert.Equal(t, float32(0.75), Intensity(math32.Vec3(0, 0, 1)))
	assert.Equal(t, float32(0.5), Intensity(math32.Vec3(0, 0, 0)))
	assert.Equal(t, float32(-0.25), Intensity(math32.Vec3(-1, -1, -1)))
	assert.Equal(t, float32(1.25), Intensity(math32.Vec3(1, 1, 1)))

	// the dot product is not normalized: a longer normal means more light
	assert.Equal(t, float32(1), Intensity(math32.Vec3(0, 0, 2)))
}

// normal (0,0,1) with a red material: intensity 0.75, red channel only.
func TestFragmentStageKeyLit(t *testing.T) {
	red := Material{Colour: math32.Vec4(1, 0, 0, 1)}
	out := red.FragmentStage(math32.Vec3(0, 0, 1))
	assert.Equal(t, math32.Vec4(0.75, 0, 0, 1), out)
}

// a degenerate zero normal leaves only the ambient half.
func TestFragmentStageZeroNormal(t *testing.T) {
	for _, c := range []math32.Vector4{
		{1, 1, 1, 1}, {0.25, 0.5, 0.75, 1}, {1, 0, 1, 0.5}, {0, 0, 0, 0},
	} {
		mt := Material{Colour: c}
		out := mt.FragmentStage(math32.Vec3(0, 0, 0))
		assert.Equal(t, math32.Vec4(0.5*c.X, 0.5*c.Y, 0.5*c.Z, 1), out)
	}
}

// a normal facing fully away from the light drives the arithmetic
// negative; the stage must report the raw value, leaving any clamp to
// the output target.
func TestFragmentStagePreClamp(t *testing.T) {
	white := Material{Colour: math32.Vec4(1, 1, 1, 1)}
	out := white.FragmentStage(math32.Vec3(-1, -1, -1))
	assert.Equal(t, math32.Vec4(-0.25, -0.25, -0.25, 1), out)
}

// one intensity factor, applied identically to all three channels.
func TestFragmentStageUniformFactor(t *testing.T) {
	mt := Material{Colour: math32.Vec4(0.2, 0.4, 0.8, 1)}
	for _, n := range []math32.Vector3{
		{0, 0, 1}, {1, 0, 0}, {-1, 2, 0.5}, {0.1, 0.1, 0.1},
	} {
		i := Intensity(n)
		out := mt.FragmentStage(n)
		assert.Equal(t, math32.Vec4(0.2*i, 0.4*i, 0.8*i, 1), out)
	}
}

// output alpha is always exactly 1, whatever the material alpha says.
func TestFragmentStageAlphaOpaque(t *testing.T) {
	for _, a := range []float32{0, 0.25, 0.5, 1, 2} {
		mt := Material{Colour: math32.Vec4(0.5, 0.5, 0.5, a)}
		out := mt.FragmentStage(math32.Vec3(0, 1, 0))
		assert.Equal(t, float32(1), out.W)
	}
}

func TestFragmentStageIdempotent(t *testing.T) {
	mt := Material{Colour: math32.Vec4(0.3, 0.6, 0.9, 1)}
	n := math32.Vec3(0.5, -0.5, 0.707)
	assert.Equal(t, mt.FragmentStage(n), mt.FragmentStage(n))
}
