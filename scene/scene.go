// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene loads render descriptions from TOML or YAML files:
// which shape to draw, its material colour, the camera, and the
// output size. It is the file-facing layer shared by the examples
// and batch rendering.
package scene

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/keylight"
	"cogentcore.org/keylight/shape"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CameraConfig describes the viewpoint of a [Scene].
type CameraConfig struct {

	// Eye is the camera position in world coordinates.
	Eye [3]float32

	// Direction is the facing direction; it need not be normalized.
	Direction [3]float32

	// FOV is the vertical field of view in degrees.
	// Zero means the program default.
	FOV float32

	// Near is the near plane distance.
	// Zero means the program default.
	Near float32
}

// Scene describes one rendered view: the shape, its colour, the
// camera, and the output size. Load one from a file with [Open], or
// start from [NewScene] for the defaults.
type Scene struct {

	// Size is the output width and height in pixels.
	Size [2]int

	// Colour is the material colour, RGBA components in 0..1.
	Colour [4]float32

	// Shape names the mesh to draw: box, sphere, or plane.
	Shape string

	// Supersample is the oversampling factor for software rendering.
	// It is ignored on the GPU.
	Supersample int

	// Camera is the viewpoint.
	Camera CameraConfig
}

// NewScene returns a scene with the defaults: a white box at the
// origin viewed from (3,3,3), at 800x600.
func NewScene() *Scene {
	sc := &Scene{}
	sc.Defaults()
	return sc
}

// Defaults sets the default scene. Fields absent from a loaded file
// keep these values.
func (sc *Scene) Defaults() {
	sc.Size = [2]int{800, 600}
	sc.Colour = [4]float32{1, 1, 1, 1}
	sc.Shape = "box"
	sc.Supersample = 2
	sc.Camera.Eye = [3]float32{3, 3, 3}
	sc.Camera.Direction = [3]float32{-1, -1, -1}
}

// Open loads a scene from the given file, decoding by extension:
// ".toml", or ".yaml" / ".yml". Absent fields keep their defaults.
func Open(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return decode(data, filepath.Ext(filename))
}

// OpenFS is [Open], loading from the given filesystem.
func OpenFS(fsys fs.FS, filename string) (*Scene, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	return decode(data, filepath.Ext(filename))
}

func decode(data []byte, ext string) (*Scene, error) {
	sc := NewScene()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, sc); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, sc); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("scene: unrecognized extension %q", ext)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks that the scene is renderable: positive size and a
// known shape name.
func (sc *Scene) Validate() error {
	if sc.Size[0] <= 0 || sc.Size[1] <= 0 {
		return fmt.Errorf("scene: size %dx%d is not positive", sc.Size[0], sc.Size[1])
	}
	switch strings.ToLower(sc.Shape) {
	case "box", "sphere", "plane":
		return nil
	}
	return fmt.Errorf("scene: unknown shape %q", sc.Shape)
}

// Aspect returns the width to height ratio of the output size.
func (sc *Scene) Aspect() float32 {
	return float32(sc.Size[0]) / float32(sc.Size[1])
}

// Material returns the material uniform block for the scene.
func (sc *Scene) Material() keylight.Material {
	return keylight.Material{
		Colour: math32.Vec4(sc.Colour[0], sc.Colour[1], sc.Colour[2], sc.Colour[3]),
	}
}

// View returns the camera view for the given aspect ratio, which is
// that of the actual render target, not necessarily [Scene.Aspect].
func (sc *Scene) View(aspect float32) keylight.View {
	v := keylight.View{
		Eye:       math32.Vec3(sc.Camera.Eye[0], sc.Camera.Eye[1], sc.Camera.Eye[2]),
		Direction: math32.Vec3(sc.Camera.Direction[0], sc.Camera.Direction[1], sc.Camera.Direction[2]),
		Aspect:    aspect,
		Near:      sc.Camera.Near,
	}
	if sc.Camera.FOV > 0 {
		v.FOV = math32.DegToRad(sc.Camera.FOV)
	}
	return v
}

// Mesh returns the triangle list for the scene's shape. The shapes
// have fixed world sizes: a 2 unit box, a 1.25 radius sphere, and a
// 4 unit plane.
func (sc *Scene) Mesh() ([]keylight.Vertex, []uint32, error) {
	switch strings.ToLower(sc.Shape) {
	case "box":
		verts, idx := shape.Box(math32.Vec3(2, 2, 2))
		return verts, idx, nil
	case "sphere":
		verts, idx := shape.UVSphere(1.25, 32, 16)
		return verts, idx, nil
	case "plane":
		verts, idx := shape.Plane(4, 4)
		return verts, idx, nil
	}
	return nil, nil, fmt.Errorf("scene: unknown shape %q", sc.Shape)
}
