// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"io/fs"
	"os"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTOML(t *testing.T) {
	sc, err := Open("testdata/box.toml")
	require.NoError(t, err)
	assert.Equal(t, [2]int{320, 240}, sc.Size)
	assert.Equal(t, [4]float32{1, 0.2, 0.2, 1}, sc.Colour)
	assert.Equal(t, "box", sc.Shape)
	assert.Equal(t, 2, sc.Supersample)
	assert.Equal(t, [3]float32{4, 3, 2}, sc.Camera.Eye)
	assert.Equal(t, [3]float32{-4, -3, -2}, sc.Camera.Direction)
	assert.Equal(t, float32(90), sc.Camera.FOV)
	assert.Equal(t, float32(0.5), sc.Camera.Near)

	mt := sc.Material()
	assert.Equal(t, math32.Vec4(1, 0.2, 0.2, 1), mt.Colour)

	v := sc.View(sc.Aspect())
	assert.Equal(t, math32.Vec3(4, 3, 2), v.Eye)
	assert.Equal(t, math32.Vec3(-4, -3, -2), v.Direction)
	assert.InDelta(t, math32.Pi/2, v.FOV, 1e-6)
	assert.Equal(t, float32(0.5), v.Near)
	assert.InDelta(t, 320.0/240.0, v.Aspect, 1e-6)

	verts, idx, err := sc.Mesh()
	require.NoError(t, err)
	assert.Len(t, verts, 24)
	assert.Len(t, idx, 36)
}

func TestOpenYAML(t *testing.T) {
	sc, err := Open("testdata/sphere.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sphere", sc.Shape)
	assert.Equal(t, [4]float32{0.2, 0.5, 0.9, 1}, sc.Colour)
	assert.Equal(t, [2]int{640, 480}, sc.Size)

	// absent fields keep the defaults
	assert.Equal(t, 2, sc.Supersample)
	assert.Equal(t, [3]float32{3, 3, 3}, sc.Camera.Eye)
	assert.Equal(t, [3]float32{-1, -1, -1}, sc.Camera.Direction)
	assert.Zero(t, sc.Camera.FOV)
	assert.Zero(t, sc.View(1).FOV)

	verts, idx, err := sc.Mesh()
	require.NoError(t, err)
	assert.Len(t, verts, 17*32)
	assert.NotEmpty(t, idx)
}

func TestOpenFS(t *testing.T) {
	sc, err := OpenFS(os.DirFS("testdata"), "sphere.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sphere", sc.Shape)
}

func TestDecodeYML(t *testing.T) {
	sc, err := decode([]byte("shape: plane"), ".yml")
	require.NoError(t, err)
	verts, idx, err := sc.Mesh()
	require.NoError(t, err)
	assert.Len(t, verts, 4)
	assert.Len(t, idx, 6)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("testdata/missing.toml")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = decode(nil, ".json")
	assert.ErrorContains(t, err, `unrecognized extension ".json"`)

	_, err = decode([]byte(`shape = "torus"`), ".toml")
	assert.ErrorContains(t, err, `unknown shape "torus"`)

	_, err = decode([]byte(`size = [0, 100]`), ".toml")
	assert.ErrorContains(t, err, "not positive")

	_, err = decode([]byte(`shape = [`), ".toml")
	assert.Error(t, err)
}

func TestNewScene(t *testing.T) {
	sc := NewScene()
	assert.NoError(t, sc.Validate())
	assert.Equal(t, math32.Vec4(1, 1, 1, 1), sc.Material().Colour)

	v := sc.View(sc.Aspect())
	assert.Equal(t, math32.Vec3(3, 3, 3), v.Eye)
	assert.InDelta(t, 800.0/600.0, v.Aspect, 1e-6)

	sc.Shape = "teapot"
	assert.ErrorContains(t, sc.Validate(), `unknown shape "teapot"`)
	_, _, err := sc.Mesh()
	assert.ErrorContains(t, err, `unknown shape "teapot"`)
}
