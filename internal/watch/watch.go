// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a callback when a file changes on disk.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/peplab/restraintq/pkg/types"
)

// defaultDebounce is the settle delay applied when the config carries
// none.
const defaultDebounce = 500 * time.Millisecond

// File watches path and calls onChange once each burst of file events
// has settled for the configured debounce interval, so editors that
// save in several steps (write, truncate, rename) trigger a single
// callback. It runs until ctx is cancelled.
//
// If onChange fails, the error is logged and watching continues; the
// caller decides up front whether the first run must succeed.
func File(ctx context.Context, path string, cfg types.WatchConfig, onChange func() error) error {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("watch: watching for changes", "path", path, "debounce", debounce)

	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only react to write or create events. Editors often save
			// via rename (atomic save), so Create matters too.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			settled = time.After(debounce)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case <-settled:
			settled = nil
			if err := onChange(); err != nil {
				slog.Error("watch: rescore failed, keeping previous output",
					"path", path, "err", err)
				continue
			}
			slog.Info("watch: rescored", "path", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}
