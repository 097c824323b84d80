// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"image/color"
	"testing"
	"time"

	"cogentcore.org/brickview/camera"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/settings"
	"cogentcore.org/brickview/steps"
	"cogentcore.org/brickview/thumbnail"
	"cogentcore.org/brickview/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newModel returns a model with n steps, each adding one brick of 3001
// in red, plus a brick of 3003 in blue at step 2.
func newModel(n int) *scene.Model {
	m := tree.New[scene.Model]()
	m.SetName("house")
	m.NumBuildingSteps = n
	red := scene.NewMaterial(color.RGBA{200, 0, 0, 255}).SetCode("4")
	blue := scene.NewMaterial(color.RGBA{0, 0, 200, 255}).SetCode("1")
	add := func(step int, file string, mt *scene.Material) *scene.Group {
		gp := tree.New[scene.Group](m)
		gp.FileName = file
		gp.SetBuildStep(step)
		gp.SetPos(0, float32(step)*10, 0)
		tree.New[scene.Mesh](gp).SetGeometry(scene.NewBox(20, 10, 20)).SetMaterials(mt)
		return gp
	}
	for s := 1; s <= n; s++ {
		add(s, "parts/3001.dat", red)
	}
	if n >= 2 {
		add(2, "parts/3003.dat", blue)
	}
	return m
}

// opacityAt returns the opacity of the first mesh of the given step.
func opacityAt(t *testing.T, m *scene.Model, step int) float32 {
	for _, ms := range scene.Meshes(m) {
		if s, ok := steps.EffectiveStep(ms); ok && s == step {
			return ms.Material().Opacity
		}
	}
	require.Fail(t, "no mesh at step", step)
	return 0
}

func TestSetModel(t *testing.T) {
	v := New(nil)
	assert.Equal(t, 0, v.CurrentStep())
	assert.False(t, v.NextStep())

	m := newModel(5)
	v.SetModel(m)
	assert.Same(t, m, v.Model())
	assert.Equal(t, 5, v.TotalSteps())
	assert.Equal(t, 5, v.CurrentStep())
	assert.True(t, v.Ghost())
	assert.InDelta(t, 0.3, opacityAt(t, m, 1), 1e-6)
	assert.Equal(t, float32(1), opacityAt(t, m, 5))
	assert.Equal(t, camera.Animating, v.Camera.State())

	m.NumBuildingSteps = 0
	v.SetModel(m)
	assert.Equal(t, 5, v.TotalSteps())

	v.SetModel(nil)
	assert.Equal(t, 0, v.TotalSteps())
	assert.Nil(t, v.StepParts())
}

func TestNavigation(t *testing.T) {
	v := New(nil)
	m := newModel(5)
	v.SetModel(m)

	assert.False(t, v.NextStep())
	assert.True(t, v.PrevStep())
	assert.Equal(t, 4, v.CurrentStep())
	assert.False(t, m.Child(4).(*scene.Group).Visible)

	assert.True(t, v.GoToStep(-3))
	assert.Equal(t, 1, v.CurrentStep())
	assert.False(t, v.PrevStep())
	assert.True(t, v.GoToStep(99))
	assert.Equal(t, 5, v.CurrentStep())
	assert.False(t, v.GoToStep(5))
}

func TestKeys(t *testing.T) {
	v := New(nil)
	v.SetModel(newModel(5))

	assert.True(t, v.HandleKey(KeyHome))
	assert.Equal(t, 1, v.CurrentStep())
	v.HandleKey(KeyRight)
	v.HandleKey(KeyDown)
	assert.Equal(t, 3, v.CurrentStep())
	v.HandleKey(KeyLeft)
	assert.Equal(t, 2, v.CurrentStep())
	v.HandleKey(KeyUp)
	assert.Equal(t, 1, v.CurrentStep())
	v.HandleKey(KeyEnd)
	assert.Equal(t, 5, v.CurrentStep())

	// space at the end starts over
	v.HandleKey(KeySpace)
	assert.True(t, v.Playing())
	assert.Equal(t, 1, v.CurrentStep())
	v.HandleKey(KeySpace)
	assert.False(t, v.Playing())

	assert.False(t, v.HandleKey(KeyNone))
	assert.Equal(t, "Home", KeyHome.String())
}

func TestGhostToggle(t *testing.T) {
	v := New(nil)
	m := newModel(5)
	v.SetModel(m)
	v.GoToStep(3)
	assert.InDelta(t, 0.3, opacityAt(t, m, 2), 1e-6)

	v.SetGhost(false)
	assert.False(t, v.Ghost())
	assert.Equal(t, float32(1), opacityAt(t, m, 1))
	assert.Equal(t, float32(1), opacityAt(t, m, 2))

	v.SetGhost(true)
	assert.InDelta(t, 0.3, opacityAt(t, m, 1), 1e-6)
	assert.Equal(t, float32(1), opacityAt(t, m, 3))
}

func TestHighlightJumps(t *testing.T) {
	st := settings.New()
	st.Ghost.HighlightJumps = true
	v := New(st)
	m := newModel(7)
	v.SetModel(m)

	v.GoToStep(3)
	v.GoToStep(5)
	assert.InDelta(t, 0.3, opacityAt(t, m, 1), 1e-6)
	assert.InDelta(t, 0.3, opacityAt(t, m, 3), 1e-6)
	assert.Equal(t, float32(1), opacityAt(t, m, 4))
	assert.Equal(t, float32(1), opacityAt(t, m, 5))
	for i := range 7 {
		gp := m.Child(i).(*scene.Group)
		assert.Equal(t, i < 5, gp.Visible, "step %d", i+1)
	}

	v.PrevStep()
	assert.InDelta(t, 0.3, opacityAt(t, m, 3), 1e-6)
	assert.Equal(t, float32(1), opacityAt(t, m, 4))
	assert.False(t, m.Child(4).(*scene.Group).Visible)

	// without the option only the current step stands out
	v2 := New(nil)
	m2 := newModel(5)
	v2.SetModel(m2)
	v2.GoToStep(3)
	v2.GoToStep(5)
	assert.InDelta(t, 0.3, opacityAt(t, m2, 4), 1e-6)
}

func TestAutoplay(t *testing.T) {
	v := New(nil)
	v.SetModel(newModel(3))
	v.Play()
	assert.True(t, v.Playing())
	assert.Equal(t, 1, v.CurrentStep())

	v.Tick(1400 * time.Millisecond)
	assert.Equal(t, 1, v.CurrentStep())
	v.Tick(100 * time.Millisecond)
	assert.Equal(t, 2, v.CurrentStep())

	v.SetPlaybackSpeed(2)
	v.Tick(750 * time.Millisecond)
	assert.Equal(t, 3, v.CurrentStep())
	assert.False(t, v.Playing())

	v.Tick(10 * time.Second)
	assert.Equal(t, 3, v.CurrentStep())

	v.Restart()
	assert.True(t, v.Playing())
	assert.Equal(t, 1, v.CurrentStep())
	v.Pause()
	v.Tick(10 * time.Second)
	assert.Equal(t, 1, v.CurrentStep())

	v.SetPlaybackSpeed(0)
	assert.Equal(t, float32(2), v.PlaybackSpeed())
}

func TestTickCamera(t *testing.T) {
	v := New(nil)
	v.SetModel(newModel(4))
	v.Tick(time.Second)
	assert.Equal(t, camera.Idle, v.Camera.State())

	v.PrevStep()
	v.Tick(0)
	assert.Equal(t, camera.Animating, v.Camera.State())
	v.Tick(time.Second)
	assert.Equal(t, camera.Idle, v.Camera.State())
}

func TestStepParts(t *testing.T) {
	v := New(nil)
	v.SetModel(newModel(3))
	v.GoToStep(2)
	parts := v.StepParts()
	require.Len(t, parts, 2)
	assert.Equal(t, "3001:4", parts[0].Key())
	assert.Equal(t, "3003:1", parts[1].Key())

	v.Renderer.Settings.Size = 16
	v.Settings.Thumbnail.Size = 16
	th := v.Thumbnails(parts)
	assert.Len(t, th, 2)
	for _, url := range th {
		assert.NotEqual(t, thumbnail.Empty, url)
	}
	assert.Equal(t, 2, v.Renderer.Renders())

	v.Thumbnails(parts)
	assert.Equal(t, 2, v.Renderer.Renders())

	v.SetModel(newModel(3))
	assert.Equal(t, 0, v.Renderer.Cache().Len())
}

func TestApplySettings(t *testing.T) {
	v := New(nil)
	m := newModel(3)
	v.SetModel(m)
	v.GoToStep(2)
	v.Thumbnails(v.StepParts())
	require.Equal(t, 2, v.Renderer.Cache().Len())

	st := settings.New()
	st.Ghost.Opacity = 0.5
	st.Camera.Enabled = false
	v.ApplySettings(st)
	assert.InDelta(t, 0.5, opacityAt(t, m, 1), 1e-6)
	assert.False(t, v.Camera.Settings.Enabled)
	assert.Equal(t, 2, v.Renderer.Cache().Len())

	st2 := settings.New()
	st2.Thumbnail.Size = 64
	v.ApplySettings(st2)
	assert.Equal(t, 0, v.Renderer.Cache().Len())
	assert.Equal(t, 64, v.Renderer.Settings.Size)
}

func TestApplySettingsKeepsSession(t *testing.T) {
	v := New(nil)
	m := newModel(5)
	v.SetModel(m)
	v.GoToStep(3)
	v.SetGhost(false)
	v.SetPlaybackSpeed(4)
	require.Equal(t, float32(1), opacityAt(t, m, 1))

	st := settings.New()
	st.Thumbnail.Size = 64
	v.ApplySettings(st)
	assert.False(t, v.Ghost())
	assert.Equal(t, float32(1), opacityAt(t, m, 1))
	assert.Equal(t, float32(4), v.PlaybackSpeed())

	// settings that change them still apply
	st2 := settings.New()
	st2.Thumbnail.Size = 64
	st2.Ghost.Enabled = false
	v.ApplySettings(st2)
	st3 := settings.New()
	st3.Thumbnail.Size = 64
	st3.Playback.Speed = 2
	v.ApplySettings(st3)
	assert.True(t, v.Ghost())
	assert.InDelta(t, 0.3, opacityAt(t, m, 1), 1e-6)
	assert.Equal(t, float32(2), v.PlaybackSpeed())
}
