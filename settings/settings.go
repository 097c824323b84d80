// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings provides the viewer settings, which can be
// loaded from and saved to TOML or YAML files, and reloaded when
// the file changes.
package settings

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/brickview/base/iox/imagex"
	"cogentcore.org/brickview/base/iox/tomlx"
	"cogentcore.org/brickview/base/iox/yamlx"
	"cogentcore.org/brickview/camera"
	"cogentcore.org/brickview/logx"
)

// Settings are the settings of a viewer.
type Settings struct {

	// Ghost are the settings for ghosting earlier steps.
	Ghost GhostSettings

	// Camera are the settings for framing the model on step changes.
	Camera camera.Settings

	// Thumbnail are the settings for part thumbnails.
	Thumbnail ThumbnailSettings

	// Playback are the settings for automatic step playback.
	Playback PlaybackSettings

	// LogLevel is the minimum level of log messages that are shown:
	// debug, info, warn or error. It is left as is if empty. It sets
	// [logx.UserLevel], so it only filters loggers whose handler follows
	// that level, such as the one installed by [logx.SetDefaultLogger].
	LogLevel string
}

// GhostSettings are the settings for ghosting earlier steps.
type GhostSettings struct {

	// Enabled is whether parts of earlier steps are ghosted.
	Enabled bool `default:"true"`

	// Opacity is the opacity of ghosted parts.
	Opacity float32 `default:"0.3"`

	// HighlightJumps shows all of the steps added by a forward jump of
	// several steps at full opacity, instead of only the current one.
	HighlightJumps bool
}

// ThumbnailSettings are the settings for part thumbnails.
type ThumbnailSettings struct {

	// Size is the width and height of thumbnails in pixels.
	Size int `default:"128"`

	// Supersample is the factor by which thumbnails are rendered larger
	// and then scaled down, for antialiasing.
	Supersample int `default:"2"`

	// Format is the image format of thumbnails: png, bmp or tiff.
	Format string `default:"png"`
}

// PlaybackSettings are the settings for automatic step playback.
type PlaybackSettings struct {

	// Interval is the time each step is shown at speed 1.
	Interval time.Duration `default:"1500ms"`

	// Speed multiplies the playback rate.
	Speed float32 `default:"1"`
}

// New returns new settings with default values.
func New() *Settings {
	st := &Settings{}
	st.Defaults()
	return st
}

// Defaults sets all settings to their default values.
func (st *Settings) Defaults() {
	st.Ghost.Defaults()
	st.Camera.Defaults()
	st.Thumbnail.Defaults()
	st.Playback.Defaults()
	st.LogLevel = ""
}

func (gs *GhostSettings) Defaults() {
	gs.Enabled = true
	gs.Opacity = 0.3
	gs.HighlightJumps = false
}

func (ts *ThumbnailSettings) Defaults() {
	ts.Size = 128
	ts.Supersample = 2
	ts.Format = "png"
}

// ImageFormat returns the [imagex.Formats] for [ThumbnailSettings.Format],
// using PNG if it is not a supported thumbnail format.
func (ts *ThumbnailSettings) ImageFormat() imagex.Formats {
	f, err := imagex.ExtToFormat(ts.Format)
	if err != nil {
		return imagex.PNG
	}
	switch f {
	case imagex.PNG, imagex.BMP, imagex.TIFF:
		return f
	}
	return imagex.PNG
}

func (ps *PlaybackSettings) Defaults() {
	ps.Interval = 1500 * time.Millisecond
	ps.Speed = 1
}

// StepInterval returns the time between steps at the current speed.
func (ps *PlaybackSettings) StepInterval() time.Duration {
	if ps.Speed <= 0 {
		return ps.Interval
	}
	return time.Duration(float64(ps.Interval) / float64(ps.Speed))
}

// Validate clamps settings that are out of range to sensible values.
func (st *Settings) Validate() {
	st.Ghost.Opacity = min(max(st.Ghost.Opacity, 0), 1)
	st.Thumbnail.Size = max(st.Thumbnail.Size, 1)
	st.Thumbnail.Supersample = min(max(st.Thumbnail.Supersample, 1), 8)
	if st.Playback.Interval <= 0 {
		st.Playback.Interval = 1500 * time.Millisecond
	}
	if st.Playback.Speed <= 0 {
		st.Playback.Speed = 1
	}
}

// Apply applies the settings that have a global effect, which is
// currently only the [logx.UserLevel].
func (st *Settings) Apply() {
	if st.LogLevel == "" {
		return
	}
	lvl, ok := logx.LevelFromString(st.LogLevel)
	if !ok {
		slog.Warn("settings: unknown log level", "level", st.LogLevel)
	}
	logx.UserLevel.Set(lvl)
}

// Open returns settings read from the given TOML or YAML file, with
// default values for anything the file does not specify.
func Open(filename string) (*Settings, error) {
	st := New()
	var err error
	switch formatOf(filename) {
	case "toml":
		err = tomlx.Open(st, filename)
	case "yaml":
		err = yamlx.Open(st, filename)
	default:
		return nil, fmt.Errorf("settings.Open: unsupported file type %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}
	st.Validate()
	return st, nil
}

// Save writes the settings to the given TOML or YAML file.
func (st *Settings) Save(filename string) error {
	switch formatOf(filename) {
	case "toml":
		return tomlx.Save(st, filename)
	case "yaml":
		return yamlx.Save(st, filename)
	}
	return fmt.Errorf("settings.Save: unsupported file type %q", filepath.Ext(filename))
}

func formatOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}
