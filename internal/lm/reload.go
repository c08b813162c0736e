package lm

import (
	"time"

	"github.com/rs/zerolog"

	"bopomofo/internal/watcher"
)

// WatchStore reloads the user-phrase model whenever another process
// writes to the store at path. onChange fires after each successful
// reload; hosts use it to re-run the current walk. The returned
// watcher must be stopped by the caller.
//
// Reloads run on the watcher goroutine. The engine itself is
// single-threaded, so hosts must marshal onChange back onto whatever
// loop drives the key handler.
func WatchStore(path string, store *Store, user *UserPhrases, onChange func(), logger zerolog.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New([]string{path}, 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}

	go func() {
		for ev := range w.Events() {
			phrases, err := store.LoadAll()
			if err != nil {
				logger.Warn().Err(err).Str("path", ev.Path).Msg("failed to reload user phrases")
				continue
			}
			user.ReplaceAll(phrases)
			logger.Debug().Str("path", ev.Path).Msg("user phrases reloaded")
			if onChange != nil {
				onChange()
			}
		}
	}()
	return w, nil
}
