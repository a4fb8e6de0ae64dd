package fileio

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ChangeKind describes what happened to a watched file
type ChangeKind string

const (
	ChangeWritten ChangeKind = "written"
	ChangeRemoved ChangeKind = "removed"
)

// Change is reported when a bound file is modified outside the editor
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports changes to a set of files. Their parent directories are
// watched so editors that save by rename are still seen.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]int
	changes chan Change
	logger  zerolog.Logger
}

// NewWatcher starts an fsnotify watcher
func NewWatcher(logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		fsw:     fsw,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]int),
		changes: make(chan Change, 16),
		logger:  logger,
	}, nil
}

// Changes delivers file changes until Run returns
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Sync replaces the watched set with paths
func (w *Watcher) Sync(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		want[abs] = struct{}{}
	}

	for p := range w.files {
		if _, ok := want[p]; !ok {
			w.unwatchLocked(p)
		}
	}
	for p := range want {
		if _, ok := w.files[p]; !ok {
			w.watchLocked(p)
		}
	}
}

// Watched returns the number of files currently watched
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

func (w *Watcher) watchLocked(path string) {
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")
			return
		}
	}
	w.dirs[dir]++
	w.files[path] = struct{}{}
}

func (w *Watcher) unwatchLocked(path string) {
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if err := w.fsw.Remove(dir); err != nil {
			w.logger.Debug().Err(err).Str("dir", dir).Msg("cannot unwatch directory")
		}
	}
}

// Run forwards events for watched files until ctx is done, then closes the
// underlying watcher and the Changes channel.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			change, ok := w.classify(event)
			if !ok {
				continue
			}
			select {
			case w.changes <- change:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return Change{}, false
	}

	w.mu.Lock()
	_, watched := w.files[abs]
	w.mu.Unlock()
	if !watched {
		return Change{}, false
	}

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return Change{Path: abs, Kind: ChangeWritten}, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Change{Path: abs, Kind: ChangeRemoved}, true
	}
	return Change{}, false
}
