// Package watcher monitors files for external modification.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that a watched file changed.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Watcher watches individual files and debounces bursts of writes into
// single events.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	paths     map[string]bool
	debounce  time.Duration

	events chan Event
	errors chan error

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a watcher over the given files. Debounce collapses
// writes that land within the window into one event.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		watched[abs] = true
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		paths:     watched,
		debounce:  debounce,
		events:    make(chan Event, 16),
		errors:    make(chan error, 4),
		done:      make(chan struct{}),
	}, nil
}

// Events returns the change event channel.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the error channel.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Start begins watching. The parent directory of each file is watched
// so atomic rename-into-place writes are seen too.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := w.fsWatcher.Add(d); err != nil {
			return err
		}
	}

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop shuts the watcher down and closes the event channel.
func (w *Watcher) Stop() {
	close(w.done)
	w.fsWatcher.Close()
	w.wg.Wait()
	close(w.events)
}

func (w *Watcher) run() {
	defer w.wg.Done()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.paths[abs] {
				continue
			}
			pending[abs] = time.Now()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)
				select {
				case w.events <- Event{Path: path, Timestamp: now}:
				case <-w.done:
					return
				}
			}
		}
	}
}
