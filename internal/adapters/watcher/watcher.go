// Package watcher watches loader configuration files using fsnotify.
package watcher

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports"
	"go.trai.ch/zerr"
)

const eventChannelBuffer = 16

// Watcher reports directory keys whose loader configuration file changed.
// It watches the directories themselves (not the files) so create and
// remove events for the configuration file are observed too.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	watchFile string
	logger    ports.Logger
	events    chan string

	mu     sync.Mutex
	closed bool
	keys   map[string]bool
}

var _ ports.DirWatcher = (*Watcher)(nil)

// New creates a watcher for configuration files named watchFile.
func New(watchFile string, logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		fsWatcher: fsw,
		watchFile: watchFile,
		logger:    logger,
		events:    make(chan string, eventChannelBuffer),
		keys:      make(map[string]bool),
	}
	go w.processEvents()
	return w, nil
}

// Add starts watching the loader configuration inside the directory key.
// Adding the same key twice is a no-op.
func (w *Watcher) Add(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return domain.ErrWatcherClosed
	}
	if w.keys[key] {
		return nil
	}
	if err := w.fsWatcher.Add(key); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", key)
	}
	w.keys[key] = true
	return nil
}

// Events returns the channel of affected directory keys.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	return w.fsWatcher.Close()
}

// processEvents drains both fsnotify channels. The Errors channel must be
// read too; an unread error blocks fsnotify's delivery goroutine and stalls
// all further events.
func (w *Watcher) processEvents() {
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.watchFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			select {
			case w.events <- filepath.Dir(event.Name):
			default:
				// Drop when the consumer lags; the consumer re-reads the
				// cache on its next event anyway.
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error: " + err.Error())
		}
	}
}
