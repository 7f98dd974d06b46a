// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build !appengine && (darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package file

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the file has to stay quiet after a write before it's reloaded.
const settle = 10 * time.Millisecond

// Watch calls onChange with the new content each time the file is
// created or written, after its writes settle.
// It blocks until ctx is done or the watcher cannot be set up.
//
//nolint:cyclop,funlen
func (f File) Watch(ctx context.Context, onChange func([]byte)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher for %s: %w", f.path, err)
	}
	defer func() {
		if e := watcher.Close(); e != nil {
			f.logger.LogAttrs(ctx, slog.LevelWarn, "Error when closing file watcher.",
				slog.String("file", f.path), slog.Any("error", e))
		}
	}()

	// The parent directory is watched so that replacing the file
	// (e.g. by an editor or a symlink swap) is still observed.
	dir := filepath.Dir(f.path)
	if e := watcher.Add(dir); e != nil {
		return fmt.Errorf("watch dir %s: %w", dir, e)
	}
	resolved, err := f.resolve()
	if err != nil {
		return err
	}

	reload := time.NewTimer(settle)
	if !reload.Stop() {
		<-reload.C
	}
	defer reload.Stop()

	for {
		select {
		case event := <-watcher.Events:
			// A symlink swap, such as the ..data swap of a Kubernetes ConfigMap,
			// only fires events for the links, so the target is resolved again.
			if current, err := f.resolve(); err == nil && current != resolved {
				resolved = current
				reload.Reset(settle)

				continue
			}

			name := filepath.Clean(event.Name)
			if name != filepath.Clean(f.path) && name != resolved {
				continue
			}

			if event.Has(fsnotify.Remove) {
				f.logger.LogAttrs(ctx, slog.LevelWarn, "File has been removed.", slog.String("file", f.path))

				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				reload.Reset(settle)
			}

		case <-reload.C:
			content, err := f.Load(ctx)
			if err != nil {
				f.logger.LogAttrs(ctx, slog.LevelWarn, "Error when reloading file.",
					slog.String("file", f.path), slog.Any("error", err))

				continue
			}
			onChange(content)

		case err := <-watcher.Errors:
			f.logger.LogAttrs(ctx, slog.LevelWarn, "Error when watching file.",
				slog.String("file", f.path), slog.Any("error", err))

		case <-ctx.Done():
			return nil
		}
	}
}

// resolve returns the file the path points to after following symlinks.
func (f File) resolve() (string, error) {
	resolved, err := filepath.EvalSymlinks(f.path)
	if err != nil {
		return "", fmt.Errorf("eval symlink: %w", err)
	}

	return filepath.Clean(resolved), nil
}
