// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the logging level and default
// [slog] handler used by the viewer packages.
package logx

import (
	"io"
	"log/slog"
	"os"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It is a [slog.LevelVar]
// so that it can be changed after [SetDefaultLogger] has been called,
// for example when settings are reloaded.
var UserLevel = func() *slog.LevelVar {
	lv := &slog.LevelVar{}
	lv.Set(defaultUserLevel)
	return lv
}()

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LevelFromString parses a level name ("debug", "info", "warn", "error"),
// returning [slog.LevelWarn] and false if it is not recognized.
func LevelFromString(s string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, false
	}
	return l, true
}

// NewHandler returns a text [slog.Handler] writing to w
// that is filtered by [UserLevel].
func NewHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel})
}

// SetDefaultLogger sets the default [slog] logger to one
// writing to stderr and filtered by [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}
