// Package compiler is the incremental build engine: it discovers template
// sources beneath a root, keeps the mirrored output tree in sync, compiles
// each unit in isolation, and aggregates per-batch results. Watch mode
// re-triggers the same batch path on source-tree changes.
package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	terrors "git.home.luguber.info/inful/tonegen/internal/errors"
)

// Renderer turns template content into the body of the generated type. The
// template grammar is a collaborator; the compiler only consumes this
// contract.
type Renderer interface {
	Render(content, typeName string) (string, error)
}

// Compiler orchestrates discovery, reconciliation, per-unit compilation,
// and watch mode over one source/output tree pair. The batch path is
// single-flight: at most one pass mutates the output tree at a time.
type Compiler struct {
	from      string
	to        string
	imports   []string
	listeners []Listener

	renderer  Renderer
	persister Persister
	observer  Observer
	logger    *slog.Logger

	subPrefix     string
	viewsMarker   string
	watchDebounce time.Duration

	// runMu serializes every output-tree-mutating pass (batch, single
	// unit, clear, invalidation, watch rebuilds).
	runMu sync.Mutex

	watchMu     sync.Mutex
	watchHandle *WatchHandle
}

// BatchResult is the ephemeral outcome of one full compile pass.
type BatchResult struct {
	// ID identifies the batch in logs.
	ID string
	// Errors holds one entry per failed unit, in discovery order.
	Errors []*CompilationError
	// Elapsed is the wall-clock duration of the whole pass.
	Elapsed time.Duration
	// Compiled counts successfully compiled units.
	Compiled int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithImports appends import declarations added to every generated source.
func WithImports(imports ...string) Option {
	return func(c *Compiler) { c.imports = append(c.imports, imports...) }
}

// WithListeners appends compilation listeners, notified in registration order.
func WithListeners(listeners ...Listener) Option {
	return func(c *Compiler) { c.listeners = append(c.listeners, listeners...) }
}

// WithRenderer replaces the template renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Compiler) { c.renderer = r }
}

// WithPersister replaces the artifact persister.
func WithPersister(p Persister) Option {
	return func(c *Compiler) { c.persister = p }
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Compiler) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOutputSubPrefix overrides the sub-directory under the output root that
// receives generated sources.
func WithOutputSubPrefix(prefix string) Option {
	return func(c *Compiler) {
		if prefix != "" {
			c.subPrefix = prefix
		}
	}
}

// WithViewsMarker overrides the path segment identifying the views root for
// single-file invalidation.
func WithViewsMarker(marker string) Option {
	return func(c *Compiler) {
		if marker != "" {
			c.viewsMarker = marker
		}
	}
}

// WithWatchDebounce overrides the watch-mode quiet window.
func WithWatchDebounce(d time.Duration) Option {
	return func(c *Compiler) {
		if d > 0 {
			c.watchDebounce = d
		}
	}
}

// New creates a compiler for the given source and output roots, creating
// both directories when missing.
func New(from, to string, opts ...Option) (*Compiler, error) {
	absFrom, err := filepath.Abs(from)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root: %w", err)
	}
	absTo, err := filepath.Abs(to)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output root: %w", err)
	}

	c := &Compiler{
		from:        absFrom,
		to:          absTo,
		observer:    NoopObserver{},
		logger:      slog.Default(),
		subPrefix:   "templates",
		viewsMarker: filepath.Join("src", "main", "views"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.persister == nil {
		c.persister = JavaPersister{SubPrefix: c.subPrefix}
	}
	if c.renderer == nil {
		return nil, terrors.New(terrors.CategoryConfig, terrors.SeverityFatal, "a renderer is required")
	}

	if err := os.MkdirAll(c.from, 0o755); err != nil {
		return nil, terrors.WrapError(err, terrors.CategoryFileSystem, "failed to create source root")
	}
	if err := os.MkdirAll(c.to, 0o755); err != nil {
		return nil, terrors.WrapError(err, terrors.CategoryFileSystem, "failed to create output root")
	}
	return c, nil
}

// SourceRoot returns the absolute source root.
func (c *Compiler) SourceRoot() string { return c.from }

// OutputRoot returns the absolute output root.
func (c *Compiler) OutputRoot() string { return c.to }

// CompileAll runs one full batch: discover sources, delete orphaned
// outputs, then compile every unit in discovery order, isolating per-unit
// failures. It only returns an error for a discovery-level failure; unit
// failures are collected in the result.
func (c *Compiler) CompileAll() (*BatchResult, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	return c.compileBatch()
}

func (c *Compiler) compileBatch() (*BatchResult, error) {
	batchID := uuid.NewString()
	log := c.logger.With("batch_id", batchID)

	tones, err := c.tonesAt(c.from)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.Info("Compiling templates", "count", len(tones), "source", c.from)

	// Stale outputs must not linger even if a later unit fails.
	if err := c.deleteOrphanedOutputs(tones); err != nil {
		return nil, err
	}

	var errs []*CompilationError
	for _, tone := range tones {
		if cerr := c.compileOne(tone); cerr != nil {
			errs = append(errs, cerr)
		}
	}

	res := &BatchResult{
		ID:       batchID,
		Errors:   errs,
		Elapsed:  time.Since(start),
		Compiled: len(tones) - len(errs),
	}
	if len(errs) > 0 {
		log.Error("Precompilation failed", "errors", len(errs))
	}
	log.Info("Finished compiling", "elapsed", res.Elapsed, "compiled", res.Compiled)
	c.observer.BatchFinished(res)
	return res, nil
}

// CompileAllOrError runs CompileAll and fails when any unit failed,
// carrying the full failure list.
func (c *Compiler) CompileAllOrError() error {
	res, err := c.CompileAll()
	if err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		return &BatchError{Errors: res.Errors}
	}
	return nil
}

// Clear notifies listeners, then removes the output tree. Deletion is
// best-effort cleanup: failures are logged, never raised, and a later
// CompileAll re-derives a consistent state from the source tree.
func (c *Compiler) Clear() {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.logger.Info("Clearing compilation path", "dir", c.to)
	c.notifyCleared()
	c.observer.Cleared()
	if err := os.RemoveAll(c.to); err != nil {
		c.logger.Error("Unable to clear output folder", "dir", c.to, "error", err)
	}
}

// RemoveJavaVersionOf deletes the single output artifact for one removed
// source path, located relative to the views marker segment. It does not
// remove subclasses a user may have created. A path without the marker or
// the template suffix is a caller error and fails loudly.
func (c *Compiler) RemoveJavaVersionOf(path string) error {
	idx := strings.Index(path, c.viewsMarker)
	if idx < 0 {
		return terrors.ValidationError("path does not contain the views marker").
			WithContext("path", path).
			WithContext("marker", c.viewsMarker)
	}
	rel := strings.TrimLeft(path[idx+len(c.viewsMarker):], "/\\")
	if !strings.Contains(rel, ToneSuffix) {
		return terrors.ValidationError("path is not a template").WithContext("path", path)
	}

	c.runMu.Lock()
	defer c.runMu.Unlock()

	target := filepath.Join(c.to, c.subPrefix, filepath.FromSlash(stripToneSuffix(filepath.ToSlash(rel))+JavaSuffix))
	if err := os.Remove(target); err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("Failed to delete output", "file", target, "error", err)
		}
		return nil
	}
	c.logger.Debug("Deleted output", "file", target)
	return nil
}
