package pubgen

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds a project whenever its source tree changes.
type Watcher struct {
	builder  *Builder
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	onBuild  func(*Report, error)
}

// NewWatcher creates a watcher over b's source directory.
func NewWatcher(b *Builder, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		builder:  b,
		fs:       fsWatcher,
		debounce: debounce,
		logger:   b.logger,
	}, nil
}

// OnBuild registers fn to be called after every rebuild. It must be set
// before Run.
func (w *Watcher) OnBuild(fn func(*Report, error)) {
	w.onBuild = fn
}

// Run watches until ctx is canceled. Failed rebuilds are logged and the
// watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	if err := w.addTree(w.builder.Config.SourceDir); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New directories are not watched until added.
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn("Watch new path", "path", event.Name, "error", err)
				}
			}
			w.logger.Debug("Source changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			rep, err := w.builder.Build(ctx)
			if err != nil && ctx.Err() == nil {
				w.logger.Error("Rebuild failed", "error", err)
			}
			if w.onBuild != nil {
				w.onBuild(rep, err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored reports whether path is a hidden file or lies in the output tree.
func (w *Watcher) ignored(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	out, err := filepath.Abs(w.builder.Config.OutputDir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == out || strings.HasPrefix(abs, out+string(filepath.Separator))
}
