// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	l, ok := LevelFromString("debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, l)

	l, ok = LevelFromString("ERROR")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, l)

	l, ok = LevelFromString("loud")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelWarn, l)
}

func TestHandlerFollowsUserLevel(t *testing.T) {
	prev := UserLevel.Level()
	defer UserLevel.Set(prev)

	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf))

	UserLevel.Set(slog.LevelWarn)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	UserLevel.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetDefaultLogger(t *testing.T) {
	prevLogger := slog.Default()
	prev := UserLevel.Level()
	defer func() {
		slog.SetDefault(prevLogger)
		UserLevel.Set(prev)
	}()

	SetDefaultLogger()
	ctx := context.Background()
	UserLevel.Set(slog.LevelError)
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelWarn))
	UserLevel.Set(slog.LevelDebug)
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelDebug))
}
