// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a look-at camera and a controller that
// smoothly frames the visible part of a model whenever the building
// step changes.
package camera

import (
	"sync"

	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/scene"
)

// Camera defines the properties of the camera
type Camera struct {

	// Pose is the overall orientation and direction of the camera, relative
	// to pointing at negative Z axis with up (positive Y) direction.
	Pose scene.Pose

	// CamMu is the mutex protecting camera data.
	CamMu sync.RWMutex `copier:"-"`

	// Target is the target location for the camera, where it is pointing at.
	// It defaults to the origin and is reset by a call to [Camera.LookAt].
	Target math32.Vector3

	// UpDir is the up direction for camera, which defaults to the positive Y axis,
	// and is reset by call to [Camera.LookAt].
	UpDir math32.Vector3

	// Ortho makes the camera orthographic instead of perspective, in which
	// case the view includes a box of OrthoHalfSize around the view axis,
	// between Near and Far.
	Ortho bool

	// OrthoHalfSize is half of the height of the orthographic view volume.
	OrthoHalfSize float32

	// FOV is the vertical field of view in degrees, for perspective.
	FOV float32

	// Aspect is the aspect ratio (width/height).
	Aspect float32

	// Near is the near plane distance. It can be negative for orthographic cameras.
	Near float32

	// Far is the far plane distance.
	Far float32

	// ViewMatrix is the view matrix (inverse of the Pose.Matrix).
	ViewMatrix math32.Matrix4 `display:"-"`

	// PrjnMatrix is the projection matrix, defining the camera perspective / ortho transform.
	PrjnMatrix math32.Matrix4 `display:"-"`
}

// NewCamera returns a new camera with default settings.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

func (cm *Camera) Defaults() {
	cm.FOV = 45
	cm.Aspect = 1.5
	cm.Near = .1
	cm.Far = 10000
	cm.OrthoHalfSize = 10
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to default location and orientation, looking
// at the origin from 0,0,10, with up Y axis
func (cm *Camera) DefaultPose() {
	cm.Pose.Defaults()
	cm.Pose.Pos.Set(0, 0, 10)
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// UpdateMatrix updates the view and prjn matricies
func (cm *Camera) UpdateMatrix() {
	cm.CamMu.Lock()
	defer cm.CamMu.Unlock()

	cm.Pose.UpdateMatrix()
	cm.ViewMatrix.SetInverse(&cm.Pose.Matrix)
	if cm.Ortho {
		hh := cm.OrthoHalfSize
		hw := hh * cm.Aspect
		cm.PrjnMatrix.SetOrthographic(-hw, hw, hh, -hh, cm.Near, cm.Far)
	} else {
		cm.PrjnMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
}

// ViewProjection returns the combined projection * view matrix.
func (cm *Camera) ViewProjection() math32.Matrix4 {
	cm.CamMu.RLock()
	defer cm.CamMu.RUnlock()
	var vp math32.Matrix4
	vp.MulMatrices(&cm.PrjnMatrix, &cm.ViewMatrix)
	return vp
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.CamMu.Lock()
	cm.Target = target
	if upDir.IsNil() {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	var rot math32.Matrix4
	rot.SetRotationFromLookAt(cm.Pose.Pos, target, upDir)
	cm.Pose.Quat.SetFromRotationMatrix(&rot)
	cm.CamMu.Unlock()
	cm.UpdateMatrix()
}

// LookAtTarget points the camera at current target using current up direction
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// SetPosition moves the camera to the given position, still looking at the
// current target.
func (cm *Camera) SetPosition(pos math32.Vector3) {
	cm.CamMu.Lock()
	cm.Pose.Pos = pos
	cm.CamMu.Unlock()
	cm.LookAtTarget()
}

// Position returns the current camera position.
func (cm *Camera) Position() math32.Vector3 {
	cm.CamMu.RLock()
	defer cm.CamMu.RUnlock()
	return cm.Pose.Pos
}

// ViewVector is the vector between the camera position and target
func (cm *Camera) ViewVector() math32.Vector3 {
	cm.CamMu.RLock()
	defer cm.CamMu.RUnlock()
	return cm.Pose.Pos.Sub(cm.Target)
}
