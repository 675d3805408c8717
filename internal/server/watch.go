package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce collapses the burst of events an editor produces on save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to a local case document: a single file or a
// doublestar glob.
type Watcher struct {
	source string
	glob   bool
	fsw    *fsnotify.Watcher
	log    *zap.Logger
}

// NewWatcher watches the directories that can hold files matching source.
func NewWatcher(source string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		source: filepath.Clean(source),
		glob:   strings.ContainsAny(source, "*?[{"),
		fsw:    fsw,
		log:    log,
	}

	if w.glob {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(w.source))
		err = w.addTree(filepath.FromSlash(base))
	} else {
		err = fsw.Add(filepath.Dir(w.source))
	}
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Matches reports whether path is part of the watched document.
func (w *Watcher) Matches(path string) bool {
	path = filepath.Clean(path)
	if !w.glob {
		return path == w.source
	}
	ok, err := doublestar.PathMatch(w.source, path)
	return err == nil && ok
}

// Run calls onChange after each settled burst of changes until ctx is done
// or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.glob && ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn("Watching new directory", zap.Error(err))
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.Matches(ev.Name) {
				continue
			}
			w.log.Debug("Case document changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)
			mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("Watcher error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
