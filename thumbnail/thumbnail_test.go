// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thumbnail

import (
	"image/color"
	"sync"
	"testing"

	"cogentcore.org/brickview/base/iox/imagex"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/steps"
	"cogentcore.org/brickview/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPart returns a model holding one part group with a red box mesh,
// placed away from the origin under a translated parent.
func newPart() (*scene.Model, *scene.Group, *scene.Mesh) {
	m := tree.New[scene.Model]()
	m.SetPos(100, 0, 0)
	gp := tree.New[scene.Group](m)
	gp.FileName = "3001.dat"
	gp.SetBuildStep(1)
	gp.SetPos(0, 50, 0)
	ms := tree.New[scene.Mesh](gp).SetGeometry(scene.NewBox(20, 10, 20))
	ms.SetMaterials(scene.NewMaterial(color.RGBA{200, 0, 0, 255}).SetCode("4"))
	return m, gp, ms
}

func TestCache(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, "x", c.Add("a", "x"))
	assert.Equal(t, "x", c.Add("a", "y"))
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	c.Add("empty", Empty)
	v, ok = c.Get("empty")
	assert.True(t, ok)
	assert.Equal(t, Empty, v)
	assert.Equal(t, 2, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())
}

func TestRender(t *testing.T) {
	_, gp, _ := newPart()
	r := NewRenderer()
	assert.Nil(t, r.ctx)

	url := r.Render(gp, "3001:4", 32)
	require.NotEqual(t, Empty, url)
	assert.NotNil(t, r.ctx)
	assert.Equal(t, 1, r.Renders())

	img, f, err := imagex.FromDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	// the part is centered, so the middle is covered and opaque
	_, _, _, a := img.At(16, 16).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	// and the corners are background
	_, _, _, a = img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestRenderCached(t *testing.T) {
	_, gp, _ := newPart()
	r := NewRenderer()
	first := r.Render(gp, "3001:4", 32)
	assert.Equal(t, 1, r.Renders())

	// a hit never renders, whatever the part
	other := tree.New[scene.Group]()
	assert.Equal(t, first, r.Render(other, "3001:4", 32))
	assert.Equal(t, 1, r.Renders())
	assert.Equal(t, 1, r.Cache().Len())

	r.Reset()
	assert.Equal(t, 0, r.Cache().Len())
	assert.NotEqual(t, Empty, r.Render(gp, "3001:4", 32))
	assert.Equal(t, 2, r.Renders())
}

func TestRenderEmpty(t *testing.T) {
	r := NewRenderer()
	gp := tree.New[scene.Group]()
	tree.New[scene.Mesh](gp)
	assert.Equal(t, Empty, r.Render(gp, "empty:1", 32))
	assert.Equal(t, Empty, r.Render(gp, "empty:1", 32))
	assert.Equal(t, 1, r.Renders())
	v, ok := r.Cache().Get("empty:1")
	assert.True(t, ok)
	assert.Equal(t, Empty, v)
}

func TestRenderSourceUntouched(t *testing.T) {
	m, gp, ms := newPart()
	gp2 := tree.New[scene.Group](m)
	gp2.SetBuildStep(2)
	tree.New[scene.Mesh](gp2).SetGeometry(scene.NewBox(1, 1, 1)).SetMaterials(scene.NewMaterial(color.RGBA{0, 0, 255, 255}))

	steps.SetVisibility(m, 2)
	steps.ApplyGhosting(m, 2, true)
	mt := ms.Material()
	require.NotNil(t, mt)
	assert.InDelta(t, steps.GhostOpacity, mt.Opacity, 1e-6)

	steps.SetVisibility(m, 1)
	gp2.Visible = false
	r := NewRenderer()
	assert.NotEqual(t, Empty, r.Render(gp2, "3003:blue", 16))

	assert.False(t, gp2.Visible)
	assert.Same(t, m, gp.Parent.(*scene.Model))
	assert.Equal(t, 2, m.NumChildren())
	assert.Same(t, mt, ms.Material())
	assert.InDelta(t, steps.GhostOpacity, mt.Opacity, 1e-6)
	assert.True(t, mt.Transparent)
	assert.Equal(t, float32(50), gp.Pose.Pos.Y)
}

func TestIsolate(t *testing.T) {
	_, gp, ms := newPart()
	ms.Material().SetOpacity(0.3)
	gp.Visible = false

	cp := Isolate(gp)
	cb := cp.AsNode()
	assert.Nil(t, cb.Parent)
	assert.True(t, cb.Visible)
	assert.InDelta(t, 100, cb.Pose.Pos.X, 1e-4)
	assert.InDelta(t, 50, cb.Pose.Pos.Y, 1e-4)

	cms := cb.Child(0).(*scene.Mesh)
	assert.NotSame(t, ms.Material(), cms.Material())
	assert.Equal(t, float32(1), cms.Material().Opacity)
	assert.False(t, cms.Material().IsTransparent())
	assert.InDelta(t, 0.3, ms.Material().Opacity, 1e-6)
	assert.False(t, gp.Visible)
}

func TestWithContext(t *testing.T) {
	_, gp, _ := newPart()
	cx := NewContext()
	r := NewRenderer().WithContext(cx)
	r.Settings.Supersample = 3
	assert.NotEqual(t, Empty, r.Render(gp, "3001:4", 20))
	assert.Same(t, cx, r.ctx)
	assert.Equal(t, 60, cx.Surface.Size().X)
	assert.False(t, cx.Scene.HasChildren())
	assert.True(t, cx.Camera.Ortho)
}

func TestRenderConcurrent(t *testing.T) {
	_, gp, _ := newPart()
	r := NewRenderer()
	var wg sync.WaitGroup
	res := make([]string, 8)
	for i := range res {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i] = r.Render(gp, "3001:4", 16)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, r.Renders())
	for _, v := range res {
		assert.Equal(t, res[0], v)
	}
}
