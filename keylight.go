// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylight implements a minimal two-stage shading program:
// a vertex stage that transforms object-space positions into clip space
// through a camera view-projection matrix, and a fragment stage that
// modulates a fixed material colour by a single key-light term,
// 0.5 + 0.25*dot(normal, (1,1,1)).
//
// The program exists in two equivalent forms. [Source] is the canonical
// WGSL text, for binding into a WebGPU render pipeline (the gpu
// subpackage does this). [Camera.VertexStage] and
// [Material.FragmentStage] are pure Go functions with identical
// arithmetic, which the raster subpackage executes for CPU rendering
// and which the tests use to pin down the contract.
//
// Both stages are stateless pure functions: every vertex and every
// fragment invocation is independent of its siblings, and the only
// shared data are the two read-only uniform blocks, [Camera] at group 0
// and [Material] at group 1. A host must bind both groups and supply
// vertices in the [Vertex] attribute layout before drawing; nothing in
// the program can detect or report a missing binding.
package keylight

import _ "embed"

// Source is the canonical WGSL source of the shading program.
//
//go:embed shader.wgsl
var Source string

// Entry point names within [Source].
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Bind group numbers for the two uniform blocks. Each block is at
// binding 0 within its group. Camera is visible to the vertex stage and
// Material to the fragment stage.
const (
	CameraGroup   = 0
	MaterialGroup = 1
)

// Vertex attribute locations, matching [Vertex] field order.
const (
	PositionLocation = 0
	NormalLocation   = 1
)
