// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylight

import "cogentcore.org/core/math32"

// Camera is the group 0 uniform block: the combined view-projection
// transform applied to every vertex. It is 64 bytes of column-major
// float32, matching WGSL mat4x4<f32>, and can be uploaded to the GPU
// as-is. The program has no separate model matrix: any model transform
// must be folded into ViewProjection by the host, or the model is
// assumed to sit at the origin with identity orientation.
type Camera struct {
	ViewProjection math32.Matrix4
}

// VertexStage is the vertex stage of the program. It returns the
// clip-space position ViewProjection * (Position, 1), with the normal
// passed through unmodified. No normal-matrix correction is applied,
// so a non-uniform scale folded into ViewProjection will distort
// lighting; that is part of the contract. Pure and deterministic:
// invocations share nothing and may run in any order.
func (cm *Camera) VertexStage(in Vertex) VertexOutput {
	return VertexOutput{
		ClipPosition: math32.Vector4FromVector3(in.Position, 1).MulMatrix4(&cm.ViewProjection),
		Normal:       in.Normal,
	}
}

// Perspective defaults used by [View]: a 90 degree vertical field of
// view and a 0.1 near plane, with the far plane at infinity.
const (
	DefaultFOV  = math32.Pi / 2
	DefaultNear = float32(0.1)
)

// Up is the fixed world up reference used by [View] and [LookTo].
var Up = math32.Vec3(0, 1, 0)

// LookTo returns the right-handed view matrix for an eye at the given
// position, facing along dir (not necessarily normalized), with the
// given up reference.
func LookTo(eye, dir, up math32.Vector3) math32.Matrix4 {
	f := dir.Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	var m math32.Matrix4
	m[0], m[1], m[2], m[3] = s.X, u.X, -f.X, 0
	m[4], m[5], m[6], m[7] = s.Y, u.Y, -f.Y, 0
	m[8], m[9], m[10], m[11] = s.Z, u.Z, -f.Z, 0
	m[12], m[13], m[14], m[15] = -s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1
	return m
}

// PerspectiveInfinite returns the right-handed perspective projection
// with an infinite far plane and 0..1 clip depth (WebGPU convention).
// fov is the vertical field of view in radians.
func PerspectiveInfinite(fov, aspect, near float32) math32.Matrix4 {
	f := 1 / math32.Tan(0.5*fov)
	var m math32.Matrix4
	m[0] = f / aspect
	m[5] = f
	m[10] = -1
	m[11] = -1
	m[14] = -near
	return m
}

// View describes an eye-point camera from which a [Camera] uniform is
// built: world position, facing direction, and perspective parameters.
// The up reference is fixed at [Up].
type View struct {

	// Eye is the camera position in world coordinates.
	Eye math32.Vector3

	// Direction is the facing direction; it need not be normalized.
	Direction math32.Vector3

	// FOV is the vertical field of view in radians.
	// Zero or negative means [DefaultFOV].
	FOV float32

	// Aspect is the width to height ratio of the render target.
	Aspect float32

	// Near is the near plane distance.
	// Zero or negative means [DefaultNear].
	Near float32
}

// Matrix returns the combined view-projection matrix:
// [PerspectiveInfinite] * [LookTo].
func (v *View) Matrix() math32.Matrix4 {
	fov := v.FOV
	if fov <= 0 {
		fov = DefaultFOV
	}
	near := v.Near
	if near <= 0 {
		near = DefaultNear
	}
	proj := PerspectiveInfinite(fov, v.Aspect, near)
	view := LookTo(v.Eye, v.Direction, Up)
	var m math32.Matrix4
	m.MulMatrices(&proj, &view)
	return m
}

// Camera returns the [Camera] uniform block for this view.
func (v *View) Camera() Camera {
	return Camera{ViewProjection: v.Matrix()}
}

// NDCToWorld maps a point in normalized device coordinates (x and y in
// -1..1, z in 0..1 depth) back to world coordinates through the inverse
// of the view-projection matrix, with a perspective divide. Returns an
// error if the matrix is not invertible (degenerate Direction).
func (v *View) NDCToWorld(ndc math32.Vector3) (math32.Vector3, error) {
	m := v.Matrix()
	inv, err := m.Inverse()
	if err != nil {
		return math32.Vector3{}, err
	}
	return math32.Vector4FromVector3(ndc, 1).MulMatrix4(inv).PerspDiv(), nil
}
