package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/hexlist/internal/logging"
)

// Watcher reports when a watched file changes, debouncing rapid bursts of
// writes such as editors produce when saving.
type Watcher struct {
	watcher  *fsnotify.Watcher
	events   chan string
	debounce time.Duration

	closeOnce sync.Once
	closeCh   chan struct{}
	doneWg    sync.WaitGroup
}

// NewWatcher creates a watcher with a 100ms debounce window.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		events:   make(chan string, 16),
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	w.doneWg.Add(1)
	go w.loop()
	return w, nil
}

// Watch starts watching path for writes.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.watcher.Add(abs)
}

// Events returns the channel of changed file paths.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and closes the events channel.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.doneWg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.doneWg.Done()
	defer close(w.events)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = struct{}{}
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
			fire = timer.C

		case <-fire:
			fire = nil
			for path := range pending {
				delete(pending, path)
				select {
				case w.events <- path:
				case <-w.closeCh:
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Default().Warn("file watcher error", "err", err)
		}
	}
}
