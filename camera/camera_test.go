// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"image/color"
	"testing"
	"time"

	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/tree"
	"github.com/stretchr/testify/assert"
)

func newModel() (*scene.Model, *scene.Mesh) {
	m := tree.New[scene.Model]()
	ms := tree.New[scene.Mesh](m)
	ms.SetPos(20, 0, 0)
	ms.SetGeometry(scene.NewBox(100, 100, 100)).SetMaterials(scene.NewMaterial(color.RGBA{255, 0, 0, 255}))
	return m, ms
}

func TestInstructionDirection(t *testing.T) {
	assert.InDelta(t, 1, InstructionDirection.Length(), 1e-6)
	assert.Less(t, InstructionDirection.X, float32(0))
	assert.Greater(t, InstructionDirection.Y, float32(0))
	assert.Greater(t, InstructionDirection.Z, float32(0))
}

func TestObserve(t *testing.T) {
	m, _ := newModel()
	c := NewController(nil)
	assert.Equal(t, Idle, c.State())

	assert.False(t, c.Observe(m, 1), "first step is only recorded")
	assert.False(t, c.Observe(m, 1))
	assert.False(t, c.Observe(nil, 2))
	assert.False(t, c.Observe((*scene.Model)(nil), 2))
	assert.False(t, c.Frame((*scene.Model)(nil)))
	assert.Equal(t, Idle, c.State())

	c.Settings.Enabled = false
	assert.False(t, c.Observe(m, 2))
	c.Settings.Enabled = true

	assert.True(t, c.Observe(m, 2))
	assert.Equal(t, Animating, c.State())
	assert.Equal(t, float32(0), c.Progress())
	assert.Equal(t, "Animating", c.State().String())
}

func TestAnimationEndpoint(t *testing.T) {
	m, _ := newModel()
	c := NewController(nil)
	assert.True(t, c.Frame(m))
	for c.State() == Animating {
		c.Update(16 * time.Millisecond)
	}
	center := math32.Vec3(20, 0, 0)
	radius := math32.Sqrt(3*100*100) / 2
	want := center.Add(InstructionDirection.MulScalar(radius * 2.5))
	assert.True(t, c.Camera.Position().IsNear(want, 1e-2), c.Camera.Position().String())
	assert.True(t, c.Camera.Target.IsNear(center, 1e-3))
	assert.Equal(t, float32(1), c.Progress())
}

func TestMinDistance(t *testing.T) {
	m := tree.New[scene.Model]()
	tree.New[scene.Mesh](m).SetGeometry(scene.NewBox(1, 1, 1))
	c := NewController(nil)
	c.Frame(m)
	c.Update(time.Second)
	assert.InDelta(t, 50, c.Camera.Position().Length(), 1e-3)
	assert.Equal(t, Idle, c.State())
}

func TestEmptyVisibleBBox(t *testing.T) {
	m, ms := newModel()
	ms.Visible = false
	c := NewController(nil)
	c.Observe(m, 1)
	assert.False(t, c.Observe(m, 2))
	assert.Equal(t, Idle, c.State())
}

func TestProgressIndependentOfTickRate(t *testing.T) {
	for _, tick := range []time.Duration{5 * time.Millisecond, 16 * time.Millisecond, 33 * time.Millisecond, 100 * time.Millisecond} {
		m, _ := newModel()
		c := NewController(nil)
		c.Frame(m)
		var elapsed time.Duration
		prev := c.Progress()
		for c.State() == Animating {
			c.Update(tick)
			elapsed += tick
			assert.GreaterOrEqual(t, c.Progress(), prev)
			prev = c.Progress()
		}
		assert.Equal(t, float32(1), c.Progress())
		// 1/3.3 s is about 303ms; allow one tick of overshoot
		assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond, "tick %v", tick)
		assert.LessOrEqual(t, elapsed, 303*time.Millisecond+tick, "tick %v", tick)
	}
}

func TestRetargetMidAnimation(t *testing.T) {
	m, ms := newModel()
	c := NewController(nil)
	c.Observe(m, 1)
	c.Observe(m, 2)
	c.Update(100 * time.Millisecond)
	mid := c.Camera.Position()

	ms.SetPos(-500, 0, 0)
	assert.True(t, c.Observe(m, 3))
	assert.Equal(t, float32(0), c.Progress())
	c.Update(0)
	assert.True(t, c.Camera.Position().IsNear(mid, 1e-3))
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutCubic(0))
	assert.Equal(t, float32(1), EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-6)
}

func TestFramePosition(t *testing.T) {
	m, _ := newModel()
	fp := FramePosition(m, InstructionDirection, 2.5)
	assert.InDelta(t, math32.Sqrt(3*100*100)/2*2.5, fp.Length(), 1e-2)
}

func TestSetPosition(t *testing.T) {
	cam := NewCamera()
	cam.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
	cam.SetPosition(math32.Vec3(0, 0, 10))
	assert.Equal(t, math32.Vec3(0, 0, 10), cam.Position())
	assert.Equal(t, math32.Vector3{}, cam.Target)
	assert.Equal(t, math32.Vec3(0, 0, 10), cam.ViewVector())

	// the camera still looks at the target: it projects to the center
	vp := cam.ViewProjection()
	c := math32.Vector4FromVector3(math32.Vector3{}, 1).MulMatrix4(&vp).PerspDiv()
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)

	cam.Target = math32.Vec3(5, 0, 0)
	cam.LookAtTarget()
	vp = cam.ViewProjection()
	c = math32.Vector4FromVector3(cam.Target, 1).MulMatrix4(&vp).PerspDiv()
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)
}
