// Package watch implements the drop-folder watcher, the terminal analog of
// browser drag-and-drop: a new CSV appearing in the watched directory becomes
// the current selection.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"termgram/internal/logging"
)

// Watcher watches one directory for new .csv files. Rapid events on the same
// path are debounced so a file still being copied in is reported once, after
// it settles.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	files       chan string
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	log         *logging.Logger
}

// New creates a watcher for the given drop directory.
func New(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fsw,
		dir:         dir,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		files:       make(chan string, 8),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		log:         logging.Get(logging.CategoryWatch),
	}, nil
}

// Files delivers settled .csv paths. Closed when the watcher stops.
func (w *Watcher) Files() <-chan string {
	return w.files
}

// Start begins watching. Non-blocking; events are delivered on Files().
// running is only set once the run loop is actually launched, so a failed
// Start leaves the watcher stopped and a later Stop is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching drop folder: %s", w.dir)

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit. Safe to call
// repeatedly, and safe after a Start that failed before launching the loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		w.log.Error("error closing watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.files)

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error: %v", err)

		case <-debounceTicker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return
	}
	// Create covers both fresh files and moves into the folder; Write keeps
	// pushing the settle time back while the file is still copying.
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	w.log.Debug("event %s for %s", event.Op, event.Name)

	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flushSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		if _, err := os.Stat(path); err != nil {
			continue // removed again before it settled
		}
		select {
		case w.files <- path:
			w.log.Info("new report dropped: %s", path)
		default:
			w.log.Warn("dropping event for %s: queue full", path)
		}
	}
}
