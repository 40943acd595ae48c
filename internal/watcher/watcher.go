// Package watcher observes the template library for changes and drives
// regeneration in watch mode, with debouncing so bursts of editor events
// collapse into one rebuild.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conneroisu/rulekit/internal/config"
	"github.com/conneroisu/rulekit/internal/rules"
)

// ChangeEvent represents one relevant file change.
type ChangeEvent struct {
	Path    string
	Op      string
	ModTime time.Time
}

// ChangeHandler receives a debounced batch of changes.
type ChangeHandler func(events []ChangeEvent)

// LibraryWatcher watches a template library directory tree.
type LibraryWatcher struct {
	watcher  *fsnotify.Watcher
	delay    time.Duration
	handlers []ChangeHandler
	mutex    sync.Mutex
	pending  []ChangeEvent
	timer    *time.Timer
}

// DefaultDebounce groups changes arriving within this window.
const DefaultDebounce = 300 * time.Millisecond

// New creates a watcher. A non-positive delay uses the default.
func New(delay time.Duration) (*LibraryWatcher, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &LibraryWatcher{watcher: w, delay: delay}, nil
}

// AddHandler registers a handler for debounced change batches.
func (lw *LibraryWatcher) AddHandler(handler ChangeHandler) {
	lw.mutex.Lock()
	defer lw.mutex.Unlock()
	lw.handlers = append(lw.handlers, handler)
}

// AddRecursive watches root and every directory below it. New
// subdirectories created later are picked up as they appear.
func (lw *LibraryWatcher) AddRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return lw.watcher.Add(path)
		}
		return nil
	})
}

// Start runs the watch loop until the context is canceled.
func (lw *LibraryWatcher) Start(ctx context.Context) {
	go lw.loop(ctx)
}

// Close releases the underlying watcher.
func (lw *LibraryWatcher) Close() error {
	lw.mutex.Lock()
	if lw.timer != nil {
		lw.timer.Stop()
	}
	lw.mutex.Unlock()
	return lw.watcher.Close()
}

func (lw *LibraryWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			lw.handleEvent(event)
		case _, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event cycle retries.
		}
	}
}

func (lw *LibraryWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// Watch directories as they appear so nested tiers added at
		// runtime are covered.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = lw.watcher.Add(event.Name)
			return
		}
	}

	if !relevant(event.Name) {
		return
	}

	change := ChangeEvent{
		Path:    event.Name,
		Op:      event.Op.String(),
		ModTime: time.Now(),
	}

	lw.mutex.Lock()
	defer lw.mutex.Unlock()
	lw.pending = append(lw.pending, change)
	if lw.timer != nil {
		lw.timer.Stop()
	}
	lw.timer = time.AfterFunc(lw.delay, lw.flush)
}

// relevant keeps only template sources and the rules document.
func relevant(path string) bool {
	if strings.HasSuffix(path, rules.SourceExt) {
		return true
	}
	return filepath.Base(path) == config.FileName
}

func (lw *LibraryWatcher) flush() {
	lw.mutex.Lock()
	events := lw.pending
	lw.pending = nil
	handlers := make([]ChangeHandler, len(lw.handlers))
	copy(handlers, lw.handlers)
	lw.mutex.Unlock()

	if len(events) == 0 {
		return
	}
	for _, handler := range handlers {
		handler(events)
	}
}
