// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer provides a building instruction viewing session: it
// steps through the building steps of a model, ghosts earlier steps,
// plays steps automatically, frames the camera and renders thumbnails
// of the parts of each step.
package viewer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/brickview/camera"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/settings"
	"cogentcore.org/brickview/steps"
	"cogentcore.org/brickview/thumbnail"
)

// Viewer is a viewing session for one model at a time.
// All of its methods can be called from multiple goroutines.
type Viewer struct {

	// Settings are the settings in use. Use [Viewer.ApplySettings]
	// to change them.
	Settings *settings.Settings

	// Camera frames the visible part of the model on step changes.
	Camera *camera.Controller

	// Renderer renders the part thumbnails.
	Renderer *thumbnail.Renderer

	mu      sync.Mutex
	model   *scene.Model
	current int
	total   int

	// ghost and speed are session state: they start out from the
	// settings and only follow later settings when those change them.
	ghost bool
	speed float32

	// firstNew is the first step shown at full opacity.
	firstNew int

	playing bool
	elapsed time.Duration
}

// New returns a new viewer with the given settings, or default
// settings if they are nil.
func New(st *settings.Settings) *Viewer {
	if st == nil {
		st = settings.New()
	}
	v := &Viewer{
		Settings: st,
		Camera:   camera.NewController(nil),
		Renderer: thumbnail.NewRenderer(),
	}
	v.Camera.Settings = st.Camera
	v.Renderer.Settings = st.Thumbnail
	v.ghost = st.Ghost.Enabled
	v.speed = st.Playback.Speed
	return v
}

// SetModel sets the model to view, showing it complete at its last step.
// The number of steps is the one declared by the model, or the largest
// build step found in it. A nil model clears the viewer.
func (v *Viewer) SetModel(m *scene.Model) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model = m
	v.playing = false
	v.elapsed = 0
	v.Renderer.Reset()
	if m == nil {
		v.current, v.total, v.firstNew = 0, 0, 0
		return
	}
	v.total = m.NumBuildingSteps
	if v.total <= 0 {
		v.total = steps.NumSteps(m)
	}
	v.current = v.total
	v.firstNew = v.current
	v.applyGhosting()
	if v.Camera.Settings.Enabled {
		v.Camera.Frame(m)
	}
	slog.Info("viewer: model loaded", "name", m.Name, "steps", v.total)
}

// Model returns the current model, which may be nil.
func (v *Viewer) Model() *scene.Model {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model
}

// CurrentStep returns the current step, from 1 to [Viewer.TotalSteps],
// or 0 if there is no model with steps.
func (v *Viewer) CurrentStep() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// TotalSteps returns the number of steps of the model.
func (v *Viewer) TotalSteps() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}

// Ghost returns whether earlier steps are ghosted.
func (v *Viewer) Ghost() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ghost
}

// NextStep goes to the next step, if there is one,
// and returns whether the step changed.
func (v *Viewer) NextStep() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setStep(v.current + 1)
}

// PrevStep goes to the previous step, if there is one,
// and returns whether the step changed.
func (v *Viewer) PrevStep() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setStep(v.current - 1)
}

// GoToStep goes to the given step, clamped to the valid steps,
// and returns whether the step changed.
func (v *Viewer) GoToStep(step int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setStep(step)
}

// SetGhost sets whether earlier steps are ghosted.
func (v *Viewer) SetGhost(ghost bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ghost == ghost {
		return
	}
	v.ghost = ghost
	v.applyGhosting()
}

// setStep must be called with mu held.
func (v *Viewer) setStep(step int) bool {
	if v.model == nil || v.total <= 0 {
		return false
	}
	step = min(max(step, 1), v.total)
	if step == v.current {
		return false
	}
	prev := v.current
	v.current = step
	v.firstNew = step
	if v.Settings.Ghost.HighlightJumps && step > prev+1 {
		v.firstNew = prev + 1
	}
	v.applyGhosting()
	slog.Debug("viewer: step", "step", step, "total", v.total)
	return true
}

// applyGhosting recomputes visibility and ghosting for the current step.
// It must be called with mu held.
func (v *Viewer) applyGhosting() {
	if v.model == nil {
		return
	}
	steps.ApplyGhostingSince(v.model, v.firstNew, v.current, v.ghost, v.Settings.Ghost.Opacity)
}

// ApplySettings replaces the settings of the viewer and updates
// the camera, the thumbnails and the ghosting to match them.
// The ghost toggle and the playback speed set with [Viewer.SetGhost]
// and [Viewer.SetPlaybackSpeed] are kept unless the new settings
// change them.
func (v *Viewer) ApplySettings(st *settings.Settings) {
	if st == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if st.Thumbnail != v.Settings.Thumbnail {
		v.Renderer.Settings = st.Thumbnail
		v.Renderer.Reset()
	}
	if st.Ghost.Enabled != v.Settings.Ghost.Enabled {
		v.ghost = st.Ghost.Enabled
	}
	if st.Playback.Speed != v.Settings.Playback.Speed && st.Playback.Speed > 0 {
		v.speed = st.Playback.Speed
	}
	v.Settings = st
	v.Camera.Settings = st.Camera
	v.applyGhosting()
	st.Apply()
}

// WatchSettings applies the settings in the given file each time it
// changes, until the context is done.
func (v *Viewer) WatchSettings(ctx context.Context, filename string) error {
	return settings.Watch(ctx, filename, v.ApplySettings)
}

// Tick advances the viewer by the given elapsed time: it advances
// automatic playback, starts a camera animation if the step changed,
// and moves the camera. The host calls it from its render loop.
func (v *Viewer) Tick(dt time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.advancePlayback(dt)
	if v.model != nil {
		v.Camera.Observe(v.model, v.current)
	}
	v.Camera.Update(dt)
}

// StepParts returns the parts added at the current step.
func (v *Viewer) StepParts() []steps.Part {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.model == nil {
		return nil
	}
	return steps.Parts(v.model, v.current)
}

// Thumbnails returns the thumbnails of the given parts, keyed by
// [steps.Part.Key]. Parts without geometry have a [thumbnail.Empty] one.
func (v *Viewer) Thumbnails(parts []steps.Part) map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	res := make(map[string]string, len(parts))
	for i := range parts {
		p := &parts[i]
		if p.Node == nil {
			continue
		}
		key := p.Key()
		res[key] = v.Renderer.Render(p.Node, key, v.Settings.Thumbnail.Size)
	}
	return res
}
