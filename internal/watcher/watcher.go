// Package watcher reloads the share configuration when its file changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 200 * time.Millisecond

// ReloadFunc is called once a burst of file changes has settled
type ReloadFunc func(ctx context.Context) error

// ConfigWatcher watches a single file for changes and debounces the reload
type ConfigWatcher struct {
	path     string
	reload   ReloadFunc
	log      zerolog.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// New creates a watcher for the given file. The file's directory is watched
// rather than the file itself, so atomic replaces keep being seen.
func New(path string, reload ReloadFunc, log zerolog.Logger) (*ConfigWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &ConfigWatcher{
		path:     path,
		reload:   reload,
		log:      log,
		fsw:      fsw,
		debounce: debounceDelay,
	}, nil
}

// Run processes file events until the context is done. Call it from its own
// goroutine.
func (w *ConfigWatcher) Run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	base := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.reload(ctx); err != nil {
				w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed")
				continue
			}
			w.log.Info().Str("path", w.path).Msg("config file change applied")

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// Close stops the underlying file watcher
func (w *ConfigWatcher) Close() error {
	return w.fsw.Close()
}
