// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"context"
	"log/slog"
	"path/filepath"

	"cogentcore.org/brickview/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch watches the given settings file and calls fn with the newly
// opened settings each time it is written or replaced, until the
// context is canceled. The directory of the file is watched so that
// editors that replace the file by renaming are also seen. Files that
// fail to open are logged and skipped. It returns once watching has
// started, or with an error if it could not be started.
func Watch(ctx context.Context, filename string, fn func(st *Settings)) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				st, err := Open(abs)
				if errors.Log(err) != nil {
					continue
				}
				slog.Info("settings reloaded", "file", abs)
				fn(st)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return nil
}
