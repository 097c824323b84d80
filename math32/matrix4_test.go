// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1.0e-5)

func assertVectorNear(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, float64(standardTol), "X: want %v got %v", want, got)
	assert.InDelta(t, want.Y, got.Y, float64(standardTol), "Y: want %v got %v", want, got)
	assert.InDelta(t, want.Z, got.Z, float64(standardTol), "Z: want %v got %v", want, got)
}

func TestTransformDecompose(t *testing.T) {
	pos := Vec3(1, -2, 3)
	quat := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	scale := Vec3(2, 2, 2)

	var m Matrix4
	m.SetTransform(pos, quat, scale)

	// +X rotated 90 deg about Y goes to -Z, then scaled and translated
	assertVectorNear(t, Vec3(1, -2, 1), Vec3(1, 0, 0).MulMatrix4(&m))

	dp, dq, ds := m.Decompose()
	assertVectorNear(t, pos, dp)
	assertVectorNear(t, scale, ds)
	assert.InDelta(t, quat.X, dq.X, 1e-5)
	assert.InDelta(t, quat.Y, dq.Y, 1e-5)
	assert.InDelta(t, quat.Z, dq.Z, 1e-5)
	assert.InDelta(t, quat.W, dq.W, 1e-5)
}

func TestInverse(t *testing.T) {
	var m Matrix4
	m.SetTransform(Vec3(5, 6, 7), NewQuatEuler(Vec3(0.3, -0.7, 1.1)), Vec3(1, 2, 3))
	inv := m.Inverse()
	id := m.Mul(inv)
	for i := range id {
		assert.InDelta(t, Identity4()[i], id[i], 1e-4)
	}

	var zero Matrix4
	assert.False(t, (&Matrix4{}).SetInverse(&zero))
}

func TestMulMatricesOrder(t *testing.T) {
	var tr, rot Matrix4
	tr.SetTranslation(10, 0, 0)
	rot.SetTransform(Vector3{}, NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90)), Vector3Scalar(1))

	// translate after rotate: (1,0,0) -> (0,1,0) -> (10,1,0)
	assertVectorNear(t, Vec3(10, 1, 0), Vec3(1, 0, 0).MulMatrix4(tr.Mul(&rot)))
	// rotate after translate: (1,0,0) -> (11,0,0) -> (0,11,0)
	assertVectorNear(t, Vec3(0, 11, 0), Vec3(1, 0, 0).MulMatrix4(rot.Mul(&tr)))
}

func TestOrthographic(t *testing.T) {
	var p Matrix4
	p.SetOrthographic(-2, 2, 2, -2, 1, 11)
	near := Vector4FromVector3(Vec3(2, -2, -1), 1).MulMatrix4(&p).PerspDiv()
	far := Vector4FromVector3(Vec3(0, 0, -11), 1).MulMatrix4(&p).PerspDiv()
	assertVectorNear(t, Vec3(1, -1, -1), near)
	assertVectorNear(t, Vec3(0, 0, 1), far)
}

func TestLookAt(t *testing.T) {
	var m Matrix4
	m.SetRotationFromLookAt(Vec3(0, 0, 10), Vector3{}, Vec3(0, 1, 0))
	assert.True(t, m.IsIdentity())

	m.SetRotationFromLookAt(Vec3(10, 0, 0), Vector3{}, Vec3(0, 1, 0))
	// camera looks down its local -Z, which must point at the target
	assertVectorNear(t, Vec3(-1, 0, 0), Vec3(0, 0, -1).MulMatrix4AsVector(&m))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByBox(B3Empty())
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec3(-1, -2, -3))
	b.ExpandByPoint(Vec3(1, 2, 3))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(0, 0, 0), b.Center())
	assert.Equal(t, Vec3(2, 4, 6), b.Size())
	assert.Equal(t, float32(6), b.MaxDim())

	var m Matrix4
	m.SetTransform(Vec3(10, 0, 0), NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90)), Vector3Scalar(1))
	tb := b.MulMatrix4(&m)
	assertVectorNear(t, Vec3(8, -1, -3), tb.Min)
	assertVectorNear(t, Vec3(12, 1, 3), tb.Max)
}

func TestPerspective(t *testing.T) {
	var p Matrix4
	p.SetPerspective(90, 1, 1, 100)
	near := Vector4FromVector3(Vec3(1, 1, -1), 1).MulMatrix4(&p).PerspDiv()
	far := Vector4FromVector3(Vec3(0, 0, -100), 1).MulMatrix4(&p).PerspDiv()
	assertVectorNear(t, Vec3(1, 1, -1), near)
	assertVectorNear(t, Vec3(0, 0, 1), far)
}
