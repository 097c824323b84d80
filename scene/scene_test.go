// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"testing"

	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{200, 0, 0, 255}

func newTestScene() (*Model, *Group, *Mesh) {
	m := tree.New[Model]()
	m.SetName("model")
	gp := tree.New[Group](m)
	gp.SetPos(10, 0, 0)
	ms := tree.New[Mesh](gp)
	ms.SetPos(0, 5, 0)
	ms.SetGeometry(NewBox(2, 2, 2)).SetMaterials(NewMaterial(red))
	return m, gp, ms
}

func TestNodeDefaults(t *testing.T) {
	ms := tree.New[Mesh]()
	assert.True(t, ms.Visible)
	assert.Equal(t, math32.Vec3(1, 1, 1), ms.Pose.Scale)
	assert.True(t, ms.Pose.Quat.IsIdentity())
	_, ok := ms.BuildStep()
	assert.False(t, ok)

	ms.SetBuildStep(3)
	st, ok := ms.BuildStep()
	assert.True(t, ok)
	assert.Equal(t, 3, st)

	gp := tree.New[Group]()
	assert.Nil(t, gp.AsMesh())
	assert.Same(t, ms, ms.AsMesh())
}

func TestWorldMatrix(t *testing.T) {
	_, _, ms := newTestScene()
	wm := WorldMatrix(ms)
	tr := wm.Translation()
	assert.InDelta(t, 10, tr.X, 1e-5)
	assert.InDelta(t, 5, tr.Y, 1e-5)
	assert.InDelta(t, 0, tr.Z, 1e-5)
}

func TestBBox(t *testing.T) {
	m, gp, ms := newTestScene()
	bb := BBox(m)
	assert.True(t, bb.Min.IsNear(math32.Vec3(9, 4, -1), 1e-5), bb.Min.String())
	assert.True(t, bb.Max.IsNear(math32.Vec3(11, 6, 1), 1e-5), bb.Max.String())

	assert.Equal(t, bb, VisibleBBox(m))

	gp.Visible = false
	assert.True(t, ms.Visible)
	assert.True(t, VisibleBBox(m).IsEmpty())
	assert.False(t, BBox(m).IsEmpty())

	empty := tree.New[Group]()
	assert.True(t, BBox(empty).IsEmpty())
	assert.Equal(t, float32(0), Radius(empty))
}

func TestEmptyGeometryIgnored(t *testing.T) {
	m, _, _ := newTestScene()
	nm := tree.New[Mesh](m)
	nm.SetPos(100, 100, 100)
	nm.SetGeometry(NewGeometry(nil, nil))
	bb := BBox(m)
	assert.True(t, bb.Max.IsNear(math32.Vec3(11, 6, 1), 1e-5))
}

func TestCenterModelRadius(t *testing.T) {
	m, _, _ := newTestScene()
	CenterModel(m)
	bb := BBox(m)
	assert.True(t, bb.Center().IsNear(math32.Vector3{}, 1e-5))
	assert.InDelta(t, math32.Sqrt(12)/2, Radius(m), 1e-5)
}

func TestOwnMaterials(t *testing.T) {
	shared := NewMaterial(red).SetOpacity(0.8)
	a := tree.New[Mesh]().SetMaterials(shared)
	b := tree.New[Mesh]().SetMaterials(shared)

	assert.True(t, a.OwnMaterials())
	assert.False(t, a.OwnMaterials())
	assert.NotSame(t, shared, a.Material())
	assert.InDelta(t, 0.8, a.OriginalOpacity(0), 1e-6)
	assert.Equal(t, float32(1), a.OriginalOpacity(5))

	a.Material().Opacity = 0.1
	assert.Equal(t, float32(0.8), shared.Opacity)
	assert.Same(t, shared, b.Material())
}

func TestCloneMesh(t *testing.T) {
	m, _, ms := newTestScene()
	ms.SetBuildStep(2)
	ms.FileName = "3001.dat"

	cl := m.Clone().(*Model)
	cms := Meshes(cl)
	require.Len(t, cms, 1)
	c := cms[0]
	assert.Same(t, ms.Geometry, c.Geometry)
	assert.NotSame(t, ms.Material(), c.Material())
	assert.Equal(t, *ms.Material(), *c.Material())
	assert.Equal(t, "3001.dat", c.FileName)
	st, ok := c.BuildStep()
	assert.True(t, ok)
	assert.Equal(t, 2, st)

	c.Material().Opacity = 0.3
	assert.Equal(t, float32(1), ms.Material().Opacity)
	assert.Equal(t, BBox(m), BBox(cl))
}

func TestFlattenMaterials(t *testing.T) {
	shared := NewMaterial(red)
	m := tree.New[Model]()
	a := tree.New[Mesh](m).SetMaterials(shared)
	tree.New[Mesh](m).SetMaterials(shared)

	FlattenMaterials(m)
	assert.False(t, shared.Unlit)
	for _, ms := range Meshes(m) {
		assert.True(t, ms.Material().Unlit)
		assert.NotSame(t, shared, ms.Material())
		assert.Equal(t, red, ms.Material().Color)
	}
	assert.True(t, a.MaterialsOwned)
}

func TestMaterialHex(t *testing.T) {
	mt := NewMaterial(color.RGBA{0x0a, 0xbc, 0xff, 255})
	assert.Equal(t, "#0abcff", mt.Hex())
	assert.False(t, mt.IsTransparent())
	mt.SetOpacity(0.5)
	assert.True(t, mt.Transparent)
}

func TestSetEulerRotation(t *testing.T) {
	var a, b Pose
	a.Defaults()
	b.Defaults()
	a.SetEulerRotation(0, 90, 0)
	b.SetAxisRotation(0, 1, 0, 90)
	assert.InDelta(t, b.Quat.X, a.Quat.X, 1e-6)
	assert.InDelta(t, b.Quat.Y, a.Quat.Y, 1e-6)
	assert.InDelta(t, b.Quat.Z, a.Quat.Z, 1e-6)
	assert.InDelta(t, b.Quat.W, a.Quat.W, 1e-6)

	a.UpdateMatrix()
	p := math32.Vec3(1, 0, 0).MulMatrix4(&a.Matrix)
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)
}
