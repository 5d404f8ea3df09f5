// Package watch re-runs a callback when JavaScript sources change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leaplint/internal/discover"
)

// DefaultDebounce is the quiet period before a batch of changes is handled.
const DefaultDebounce = 100 * time.Millisecond

// Func is called with the changed files of one debounced batch, sorted.
type Func func(ctx context.Context, changed []string) error

// Watcher watches directory trees for source changes.
type Watcher struct {
	Debounce time.Duration
	Logger   *slog.Logger

	fsw *fsnotify.Watcher
}

// New creates a watcher over roots. Files among roots are watched through
// their parent directory.
func New(roots []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		Debounce: DefaultDebounce,
		Logger:   slog.New(slog.DiscardHandler),
		fsw:      fsw,
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", root, err)
		}
		if !info.IsDir() {
			root = filepath.Dir(root)
		}
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree recursively adds a directory to the watcher.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Skip node_modules and hidden directories
		if path != dir && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run dispatches debounced batches of changed sources to fn until ctx is
// done. An error from fn is logged and does not stop the loop.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.Logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !discover.IsSource(event.Name) {
				continue
			}

			pending[event.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.Debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			sort.Strings(changed)

			w.Logger.Debug("change detected", "files", len(changed))
			if err := fn(ctx, changed); err != nil {
				w.Logger.Warn("watch callback failed", "error", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watcher error", "error", err)
		}
	}
}
