package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/JacobKramerDK/noteprep/internal/logger"
)

// Watcher observes a vault directory tree and invokes a callback when
// markdown notes change. Event bursts (editors often fire several
// writes per save) are coalesced through a rate limiter so one save
// triggers one re-index; overlap beyond that is absorbed by the index's
// pending-request queue.
type Watcher struct {
	vault    *Vault
	fsw      *fsnotify.Watcher
	limiter  *rate.Limiter
	onChange func()
	dirty    chan struct{}
}

// NewWatcher creates a watcher over the vault's directory tree.
// onChange is invoked from the watcher's goroutine, at most once per
// limiter interval.
func NewWatcher(vault *Vault, limiter *rate.Limiter, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		vault:    vault,
		fsw:      fsw,
		limiter:  limiter,
		onChange: onChange,
		dirty:    make(chan struct{}, 1),
	}

	if err := w.addTree(vault.Root()); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers the directory and all non-hidden subdirectories.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if name := entry.Name(); strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	go w.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handle marks the vault dirty for relevant events and registers newly
// created directories.
func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		// A newly created directory needs watching too.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				logger.Debug("Watch new path %s: %v", event.Name, err)
			}
			return
		}
	}

	if !isMarkdown(event.Name) {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	logger.Debug("Vault change: %s (%s)", event.Name, event.Op)
	select {
	case w.dirty <- struct{}{}:
	default:
		// A notification is already pending; this event rides along.
	}
}

// trigger drains dirty marks, pacing onChange through the limiter so a
// burst of events produces a single callback.
func (w *Watcher) trigger(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.dirty:
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			w.onChange()
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
