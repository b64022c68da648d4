package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/speciesdiff/pkg/log"
)

// DefaultDebounce is how long the watcher waits after the last change before
// rerunning.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reruns a function whenever one of a fixed set of files changes.
type Watcher struct {
	paths    []string
	debounce time.Duration
	logger   log.Logger
}

// NewWatcher creates a watcher for the given files.
func NewWatcher(paths []string, debounce time.Duration, logger log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{paths: paths, debounce: debounce, logger: logger}
}

// Watch calls fn once, then again after every burst of write, create or
// rename events on the watched files. Errors from fn are logged and watching
// continues. Parent directories are watched so editors that replace files
// by rename are picked up. Watch returns nil when ctx is canceled.
func (w *Watcher) Watch(ctx context.Context, fn func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(w.paths))
	dirs := make(map[string]struct{})
	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	w.runOnce(ctx, fn)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, watched := targets[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("input changed", log.String("path", event.Name), log.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.runOnce(ctx, fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, fn func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	if err := fn(ctx); err != nil {
		w.logger.Error("analysis failed; waiting for next change", log.Err(err))
	}
}
