// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"log/slog"
	"strconv"
	"time"

	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/tree"
)

// InstructionDirection is the standard building instruction viewing
// direction: an elevated three-quarter view from the front left.
var InstructionDirection = math32.Vec3(-2.3, 1, 2).Normal()

// States are the states of a [Controller].
type States int32

const (
	// Idle means that the camera is not moving.
	Idle States = iota

	// Animating means that the camera is moving toward a new framing.
	Animating
)

func (s States) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Animating:
		return "Animating"
	}
	return "States(" + strconv.Itoa(int(s)) + ")"
}

// Settings are the settings of a [Controller].
type Settings struct {

	// Enabled is whether the camera frames the model on step changes.
	Enabled bool `default:"true"`

	// Padding multiplies the radius of the visible geometry to get the
	// distance of the camera from its center.
	Padding float32 `default:"2.5"`

	// MinDistance is the smallest distance of the camera from the center.
	MinDistance float32 `default:"50"`

	// Rate is how much of the animation is done per second of ticked time.
	Rate float32 `default:"3.3"`
}

func (st *Settings) Defaults() {
	st.Enabled = true
	st.Padding = 2.5
	st.MinDistance = 50
	st.Rate = 3.3
}

// Controller animates a [Camera] to frame the visible part of a model each
// time the building step changes. It owns no timer: the host calls
// [Controller.Update] from its render loop with the elapsed time.
type Controller struct {

	// Settings are the framing and animation settings.
	Settings Settings

	// Camera is the camera that is moved.
	Camera *Camera

	state    States
	progress float32

	lastStep int
	started  bool

	startPos, endPos       math32.Vector3
	startTarget, endTarget math32.Vector3
}

// NewController returns a new controller for the given camera,
// with default settings. A nil camera makes a new default one.
func NewController(cam *Camera) *Controller {
	if cam == nil {
		cam = NewCamera()
	}
	c := &Controller{Camera: cam, progress: 1}
	c.Settings.Defaults()
	return c
}

// State returns the current state.
func (c *Controller) State() States {
	return c.state
}

// Progress returns the animation progress, from 0 to 1.
func (c *Controller) Progress() float32 {
	return c.progress
}

// Observe tells the controller about the current step. The first step
// observed is only recorded. After that, each change of step starts an
// animation that frames the visible geometry of the model, unless the
// model is nil or the controller is disabled, in which case the change is
// not recorded. It returns whether an animation was started.
func (c *Controller) Observe(model scene.Node, step int) bool {
	if !c.started {
		c.started = true
		c.lastStep = step
		return false
	}
	if step == c.lastStep || tree.IsNil(model) || !c.Settings.Enabled {
		return false
	}
	c.lastStep = step
	return c.Frame(model)
}

// Frame starts an animation from the current camera toward a framing of
// the visible geometry of the given model. If the model is nil or nothing
// is visible, it does nothing and returns false.
func (c *Controller) Frame(model scene.Node) bool {
	if tree.IsNil(model) {
		return false
	}
	bb := scene.VisibleBBox(model)
	if bb.IsEmpty() {
		return false
	}
	center := bb.Center()
	radius := bb.Size().Length() / 2
	dist := max(radius*c.Settings.Padding, c.Settings.MinDistance)

	c.startPos = c.Camera.Position()
	c.startTarget = c.Camera.Target
	c.endPos = center.Add(InstructionDirection.MulScalar(dist))
	c.endTarget = center
	c.progress = 0
	c.state = Animating
	slog.Debug("camera framing", "center", center, "distance", dist)
	return true
}

// Update advances the animation by the given elapsed time and moves the
// camera. It does nothing when the controller is idle.
func (c *Controller) Update(dt time.Duration) {
	if c.state != Animating {
		return
	}
	dt = max(dt, 0)
	c.progress = min(c.progress+float32(dt.Seconds())*c.Settings.Rate, 1)
	t := EaseOutCubic(c.progress)
	c.Camera.CamMu.Lock()
	c.Camera.Pose.Pos = c.startPos.Lerp(c.endPos, t)
	c.Camera.CamMu.Unlock()
	c.Camera.LookAt(c.startTarget.Lerp(c.endTarget, t), c.Camera.UpDir)
	if c.progress >= 1 {
		c.state = Idle
	}
}

// EaseOutCubic is the cubic ease-out curve 1-(1-t)^3.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// FramePosition returns the offset from the center of the given node's
// bounding box at which a camera looking along the given direction sees
// all of it, with the given padding factor.
func FramePosition(root scene.Node, dir math32.Vector3, padding float32) math32.Vector3 {
	return dir.MulScalar(scene.Radius(root) * padding)
}
