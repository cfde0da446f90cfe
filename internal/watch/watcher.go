// Package watch monitors a source tree for file changes and triggers a
// debounced rebuild callback. It owns the fsnotify plumbing so the compiler
// only sees start/stop lifecycle and callbacks.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet window applied to bursts of file events.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a directory tree and coalesces bursts of change events
// into single rebuild callbacks. Callbacks run on the watcher goroutine, so
// a rebuild in progress naturally serializes against the next trigger, and
// Stop only returns once no further callback can fire.
type Watcher struct {
	root      string
	onRebuild func()
	onRemove  func(path string)
	filter    func(path string) bool
	debounce  time.Duration
	logger    *slog.Logger

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// WithFilter restricts which file paths count as changes. Directories are
// always tracked regardless of the filter so traversal keeps working.
func WithFilter(filter func(path string) bool) Option {
	return func(w *Watcher) { w.filter = filter }
}

// WithRemoveHandler registers a callback invoked synchronously for every
// removed or renamed file passing the filter, before the debounced rebuild.
func WithRemoveHandler(onRemove func(path string)) Option {
	return func(w *Watcher) { w.onRemove = onRemove }
}

// New creates a watcher for the given root invoking onRebuild after changes
// settle.
func New(root string, onRebuild func(), opts ...Option) (*Watcher, error) {
	if onRebuild == nil {
		return nil, fmt.Errorf("rebuild callback is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	w := &Watcher{
		root:      absRoot,
		onRebuild: onRebuild,
		filter:    func(string) bool { return true },
		debounce:  DefaultDebounce,
		logger:    slog.Default(),
		watcher:   fsw,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins monitoring the tree. It registers every existing directory
// and spawns the event loop goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	if err := w.addTree(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	w.started = true

	w.logger.Info("Starting source watcher", "root", w.root, "debounce", w.debounce)
	go w.loop(ctx)
	return nil
}

// Stop signals the event loop to terminate and blocks until it has fully
// quiesced: after Stop returns, no rebuild callback will fire.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", "error", err)
		}
	})
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.doneChan
	}
}

// Done returns a channel closed once the event loop has exited, whether
// through Stop or through cancellation of the Start context. No rebuild
// callback fires after it closes.
func (w *Watcher) Done() <-chan struct{} { return w.doneChan }

// addTree registers dir and all its subdirectories with fsnotify.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneChan)

	var timer *time.Timer
	var timerC <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.handle(event) {
				continue
			}
			schedule()
		case <-timerC:
			timerC = nil
			timer = nil
			w.onRebuild()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// handle processes one event, returning true when a rebuild should be
// scheduled.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod || event.Op == 0 {
		return false
	}

	// New directories must be registered before any event inside them can
	// be observed; mkdir -p may create a whole subtree at once.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "dir", event.Name, "error", err)
			}
			return true
		}
	}

	if !w.filter(event.Name) {
		return false
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.logger.Debug("Source removed", "file", event.Name)
		if w.onRemove != nil {
			w.onRemove(event.Name)
		}
		return true
	}

	w.logger.Debug("Source changed", "file", event.Name, "op", event.Op.String())
	return true
}
