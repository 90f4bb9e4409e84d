package player

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounceInterval = 150 * time.Millisecond

// DirWatcher wakes the player when a local volume root or one of its folders changes.
type DirWatcher struct {
	root     string
	debounce time.Duration
	logger   *zap.Logger
}

// NewDirWatcher creates a DirWatcher for the local directory root.
func NewDirWatcher(root string, logger *zap.Logger) *DirWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DirWatcher{
		root:     root,
		debounce: watchDebounceInterval,
		logger:   logger,
	}
}

// Wait returns one debounce interval after the first filesystem event under the root,
// or when ctx ends.
func (w *DirWatcher) Wait(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addWatches(watcher); err != nil {
		return err
	}

	w.logger.Debug("Watching volume", zap.String("root", w.root))

	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("Volume changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			// The first event starts the settle window; later ones do not extend it.
			if settle == nil {
				settle = time.After(w.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("Watcher error", zap.Error(err))
		case <-settle:
			return nil
		}
	}
}

// addWatches watches the root and each folder directly under it.
func (w *DirWatcher) addWatches(watcher *fsnotify.Watcher) error {
	if err := watcher.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("list %s: %w", w.root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(w.root, entry.Name())
		if err := watcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch folder", zap.String("folder", dir), zap.Error(err))
		}
	}

	return nil
}
