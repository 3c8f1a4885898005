// Package watch reloads a labels file whenever it changes on disk
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/young1lin/label-layout/labels"
)

// LoadFunc reads the labels file
type LoadFunc func(path string) ([]labels.Label, error)

// WatcherInterface defines the interface for label file watchers
type WatcherInterface interface {
	Updates() <-chan []labels.Label
	Errors() <-chan error
	Close() error
}

const (
	defaultDebounce = 100 * time.Millisecond
	defaultPoll     = time.Second
)

// Watcher monitors a labels file and emits the freshly loaded list after
// each change. Load failures go to Errors and watching continues.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	load     LoadFunc
	debounce time.Duration
	poll     time.Duration

	lastMod  time.Time
	lastSize int64

	updates chan []labels.Label
	errors  chan error
	done    chan struct{}
	once    sync.Once
}

// Option tweaks a Watcher
type Option func(*Watcher)

// WithDebounce sets how long to wait after an event before reloading
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the backup polling interval
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.poll = d }
}

// New starts watching path. The directory is watched rather than the file so
// that editors which replace the file on save are still seen.
func New(path string, load LoadFunc, opts ...Option) (*Watcher, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsWatcher,
		path:     path,
		load:     load,
		debounce: defaultDebounce,
		poll:     defaultPoll,
		lastMod:  info.ModTime(),
		lastSize: info.Size(),
		updates:  make(chan []labels.Label, 4),
		errors:   make(chan error, 4),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.watch()

	return w, nil
}

// watch runs the file watching loop
func (w *Watcher) watch() {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	defer close(w.updates)
	defer close(w.errors)

	var pending <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case <-ticker.C:
			// Polling as backup for filesystems without change events
			if w.changedOnDisk() {
				w.reload()
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(w.debounce)
			}

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// changedOnDisk reports whether the file's size or mtime moved
func (w *Watcher) changedOnDisk() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return !info.ModTime().Equal(w.lastMod) || info.Size() != w.lastSize
}

// reload loads the file and publishes the result
func (w *Watcher) reload() {
	info, err := os.Stat(w.path)
	if err != nil {
		// Mid-replace; the Create event that follows triggers another reload.
		return
	}
	w.lastMod = info.ModTime()
	w.lastSize = info.Size()

	list, err := w.load(w.path)
	if err != nil {
		w.sendError(err)
		return
	}

	select {
	case w.updates <- list:
	case <-w.done:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	case <-w.done:
	}
}

// Updates returns a channel of label lists, one per detected change
func (w *Watcher) Updates() <-chan []labels.Label {
	return w.updates
}

// Errors returns a channel of load and watch errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching the file
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// TestWatcher is a helper for testing that provides direct control over channels
type TestWatcher struct {
	updates chan []labels.Label
	errors  chan error
	closed  bool
	mu      sync.Mutex
}

// NewTestWatcher creates a test watcher with controllable channels
func NewTestWatcher() *TestWatcher {
	return &TestWatcher{
		updates: make(chan []labels.Label, 10),
		errors:  make(chan error, 10),
	}
}

func (tw *TestWatcher) Updates() <-chan []labels.Label {
	return tw.updates
}

func (tw *TestWatcher) Errors() <-chan error {
	return tw.errors
}

func (tw *TestWatcher) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.closed {
		return nil
	}
	tw.closed = true
	close(tw.updates)
	close(tw.errors)
	return nil
}

// SendLabels pushes a label list as if the file had changed
func (tw *TestWatcher) SendLabels(list []labels.Label) {
	tw.updates <- list
}

// SendError pushes an error as if loading had failed
func (tw *TestWatcher) SendError(err error) {
	tw.errors <- err
}
