package compiler

import (
	"context"
	"strings"

	terrors "git.home.luguber.info/inful/tonegen/internal/errors"
	"git.home.luguber.info/inful/tonegen/internal/watch"
)

// WatchHandle identifies one running watch session. It is returned by
// StartWatch and required by StopWatch.
type WatchHandle struct {
	root    string
	watcher *watch.Watcher
}

// Root returns the watched source root.
func (h *WatchHandle) Root() string { return h.root }

// StartWatch begins watching the source root, recompiling on detected
// changes. At most one watch session may be active per compiler.
func (c *Compiler) StartWatch(ctx context.Context) (*WatchHandle, error) {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.watchHandle != nil {
		// A session whose context was cancelled leaves its handle behind;
		// treat it as stopped so a fresh session can start.
		select {
		case <-c.watchHandle.watcher.Done():
			c.watchHandle.watcher.Stop()
			c.watchHandle = nil
		default:
			return nil, terrors.WatchError("watch already running").WithContext("root", c.from)
		}
	}

	opts := []watch.Option{
		watch.WithLogger(c.logger),
		watch.WithFilter(IsToneName),
		watch.WithRemoveHandler(c.onWatchRemove),
	}
	if c.watchDebounce > 0 {
		opts = append(opts, watch.WithDebounce(c.watchDebounce))
	}
	w, err := watch.New(c.from, c.onWatchRebuild, opts...)
	if err != nil {
		return nil, terrors.WrapError(err, terrors.CategoryWatch, "failed to create watcher")
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, terrors.WrapError(err, terrors.CategoryWatch, "failed to start watcher")
	}

	c.watchHandle = &WatchHandle{root: c.from, watcher: w}
	return c.watchHandle, nil
}

// StopWatch terminates the session and blocks until the background watcher
// has fully quiesced: after it returns, no rebuild callback can fire.
// Stopping a session whose context was already cancelled is fine; stopping
// while no session is active is an invalid call.
func (c *Compiler) StopWatch(h *WatchHandle) error {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.watchHandle == nil {
		return terrors.WatchError("watch is not running")
	}
	if h == nil || h != c.watchHandle {
		return terrors.WatchError("unknown watch handle")
	}

	h.watcher.Stop()
	c.watchHandle = nil
	c.logger.Info("Stopped source watcher", "root", c.from)
	return nil
}

func (c *Compiler) onWatchRebuild() {
	c.observer.WatchTriggered()
	if _, err := c.CompileAll(); err != nil {
		c.logger.Error("Watch-triggered compilation failed", "error", err)
	}
}

// onWatchRemove narrowly invalidates the output of a removed template when
// the path is marker-relative; otherwise the next batch's reconciliation
// covers it.
func (c *Compiler) onWatchRemove(path string) {
	if !strings.Contains(path, c.viewsMarker) {
		return
	}
	if err := c.RemoveJavaVersionOf(path); err != nil {
		c.logger.Warn("Failed to invalidate removed template", "file", path, "error", err)
	}
}
