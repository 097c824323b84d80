// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"log/slog"
	"time"
)

// Playing returns whether steps are being played automatically.
func (v *Viewer) Playing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

// Play starts playing steps automatically, starting over from the first
// step if the last one is shown.
func (v *Viewer) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.play()
}

// Pause stops playing steps.
func (v *Viewer) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
}

// TogglePlay plays or pauses.
func (v *Viewer) TogglePlay() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playing {
		v.playing = false
		return
	}
	v.play()
}

// Restart goes to the first step and plays from there.
func (v *Viewer) Restart() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.total <= 0 {
		return
	}
	v.setStep(1)
	v.playing = true
	v.elapsed = 0
}

// SetPlaybackSpeed sets the playback speed, where 1 is one step
// per [settings.PlaybackSettings.Interval]. Speeds <= 0 are ignored.
func (v *Viewer) SetPlaybackSpeed(speed float32) {
	if speed <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.speed = speed
}

// PlaybackSpeed returns the playback speed.
func (v *Viewer) PlaybackSpeed() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.speed
}

// play must be called with mu held.
func (v *Viewer) play() {
	if v.model == nil || v.total <= 0 {
		return
	}
	if v.current >= v.total {
		v.setStep(1)
	}
	v.playing = v.current < v.total
	v.elapsed = 0
	slog.Debug("viewer: play", "step", v.current, "speed", v.speed)
}

// advancePlayback must be called with mu held.
func (v *Viewer) advancePlayback(dt time.Duration) {
	if !v.playing {
		return
	}
	v.elapsed += max(dt, 0)
	ps := v.Settings.Playback
	ps.Speed = v.speed
	iv := ps.StepInterval()
	if iv <= 0 {
		v.playing = false
		return
	}
	for v.playing && v.elapsed >= iv {
		v.elapsed -= iv
		v.setStep(v.current + 1)
		if v.current >= v.total {
			v.playing = false
			v.elapsed = 0
		}
	}
}
