// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thumbnail renders small isolated images of individual parts,
// framed from the building instruction direction, and caches them
// by part and color.
package thumbnail

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"cogentcore.org/brickview/base/errors"
	"cogentcore.org/brickview/base/iox/imagex"
	"cogentcore.org/brickview/camera"
	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/raster"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/settings"
	"cogentcore.org/brickview/tree"
	"golang.org/x/sync/singleflight"
)

// Empty is the thumbnail of a part that has no geometry.
const Empty = ""

// Context is the offscreen rendering context that is shared by all
// renders of a [Renderer]: a scene group that temporarily holds the
// part being rendered, an orthographic camera and a raster surface.
type Context struct {

	// Scene is the root that holds the part while it is rendered.
	// It is empty between renders.
	Scene *scene.Group

	// Camera is the camera used for rendering.
	Camera *camera.Camera

	// Surface is the render target.
	Surface *raster.Surface

	// Light is the direction toward the light for lit materials.
	Light math32.Vector3
}

// NewContext returns a new rendering context.
func NewContext() *Context {
	cx := &Context{}
	cx.Scene = tree.New[scene.Group]()
	cx.Scene.SetName("thumbnail")
	cx.Camera = camera.NewCamera()
	cx.Camera.Ortho = true
	cx.Camera.Aspect = 1
	cx.Surface = raster.NewSurface(1, 1)
	cx.Light = raster.DefaultLight
	return cx
}

// Renderer renders part thumbnails as image data URLs.
// Render can be called from multiple goroutines: renders are serialized
// on the shared [Context], and concurrent requests for the same key
// are collapsed into one render.
type Renderer struct {

	// Settings are the thumbnail settings.
	Settings settings.ThumbnailSettings

	// mu serializes access to ctx.
	mu  sync.Mutex
	ctx *Context

	cache   *Cache
	flight  singleflight.Group
	renders atomic.Int64
}

// NewRenderer returns a new renderer with default settings and an empty cache.
// The rendering context is made the first time it is needed.
func NewRenderer() *Renderer {
	r := &Renderer{cache: NewCache()}
	r.Settings.Defaults()
	return r
}

// WithContext sets the rendering context to use, instead of one
// made with [NewContext].
func (r *Renderer) WithContext(cx *Context) *Renderer {
	r.mu.Lock()
	r.ctx = cx
	r.mu.Unlock()
	return r
}

// Cache returns the thumbnail cache.
func (r *Renderer) Cache() *Cache {
	return r.cache
}

// Renders returns the number of thumbnails that have actually been
// rendered, as opposed to taken from the cache.
func (r *Renderer) Renders() int {
	return int(r.renders.Load())
}

// Reset clears the cache, for example when a new model is loaded.
func (r *Renderer) Reset() {
	r.cache.Reset()
}

// Render returns the thumbnail of the given part for the given key,
// which should identify the part and its color, with the given size in
// pixels (the settings size if <= 0). A cached thumbnail is returned
// as is if there is one. Otherwise the part is copied, shown fully
// opaque on its own, framed along [camera.InstructionDirection] and
// encoded as a data URL, which is cached. It returns [Empty] if the
// part has no geometry. The part itself is never modified, but it must
// not be modified by other goroutines during the call.
func (r *Renderer) Render(part scene.Node, key string, size int) string {
	if v, ok := r.cache.Get(key); ok {
		return v
	}
	v, _, _ := r.flight.Do(key, func() (any, error) {
		if v, ok := r.cache.Get(key); ok {
			return v, nil
		}
		return r.cache.Add(key, r.render(part, key, size)), nil
	})
	return v.(string)
}

// context returns the rendering context, making it if needed.
// It must be called with mu held.
func (r *Renderer) context() *Context {
	if r.ctx == nil {
		r.ctx = NewContext()
	}
	return r.ctx
}

// render does the actual rendering for [Renderer.Render].
func (r *Renderer) render(part scene.Node, key string, size int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders.Add(1)
	if size <= 0 {
		size = r.Settings.Size
	}
	cx := r.context()

	cp := Isolate(part)
	root := cx.Scene
	root.Pose.Pos = math32.Vector3{}
	root.AddChild(cp)
	defer root.DeleteChildren()

	bb := scene.BBox(root)
	maxDim := bb.MaxDim()
	if bb.IsEmpty() || maxDim <= 0 {
		slog.Debug("thumbnail: part has no geometry", "key", key)
		return Empty
	}
	root.Pose.Pos = bb.Center().Negate()

	cam := cx.Camera
	cam.Ortho = true
	cam.Aspect = 1
	cam.OrthoHalfSize = maxDim * 0.65
	cam.Near = -maxDim * 10
	cam.Far = maxDim * 10
	cam.Pose.Pos = camera.InstructionDirection.MulScalar(maxDim * 2)
	cam.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))

	ss := max(r.Settings.Supersample, 1)
	cx.Surface.Resize(size*ss, size*ss)
	vp := cam.ViewProjection()
	cx.Surface.Render(root, &vp, cx.Light)

	var img image.Image
	if ss > 1 {
		img = raster.Resample(cx.Surface.Image, size, size)
	} else {
		img = cx.Surface.Snapshot()
	}
	url := errors.Log1(imagex.DataURL(img, r.Settings.ImageFormat()))
	if url == Empty {
		return Empty
	}
	slog.Debug("thumbnail rendered", "key", key, "size", size)
	return url
}

// Isolate returns a deep copy of the given part that can be rendered on its
// own: its accumulated world transform is baked into its pose, and it and
// all of its descendants are visible and fully opaque. The materials of
// the copy are not shared with the part.
func Isolate(part scene.Node) scene.Node {
	wm := scene.WorldMatrix(part)
	cp := part.AsTree().Clone().(scene.Node)
	cp.AsNode().Pose.SetMatrix(&wm)
	cp.AsTree().WalkDown(func(n tree.Node) bool {
		sn, nb := scene.AsNode(n)
		if nb == nil {
			return tree.Break
		}
		nb.Visible = true
		if ms := sn.AsMesh(); ms != nil {
			for _, mt := range ms.Materials {
				if mt != nil {
					mt.Opacity = 1
					mt.Transparent = false
				}
			}
		}
		return tree.Continue
	})
	return cp
}
