// Package daemon runs a long-lived watch session over one source tree: an
// initial full compilation, filesystem-triggered rebuilds, and an optional
// periodic full resync as a safety net against missed file events.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/tonegen/internal/compiler"
)

// Daemon owns one compiler's watch lifecycle.
type Daemon struct {
	compiler *compiler.Compiler
	resync   time.Duration
	logger   *slog.Logger
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithResync enables a periodic full rebuild at the given interval.
func WithResync(interval time.Duration) Option {
	return func(d *Daemon) { d.resync = interval }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Daemon) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a daemon around an existing compiler.
func New(c *compiler.Compiler, opts ...Option) *Daemon {
	d := &Daemon{
		compiler: c,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run compiles everything once, then watches until the context is
// cancelled. It returns once the watcher has fully quiesced.
func (d *Daemon) Run(ctx context.Context) error {
	res, err := d.compiler.CompileAll()
	if err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		d.logger.Warn("Initial compilation finished with errors", "errors", len(res.Errors))
	}

	handle, err := d.compiler.StartWatch(ctx)
	if err != nil {
		return err
	}

	var scheduler gocron.Scheduler
	if d.resync > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			_ = d.compiler.StopWatch(handle)
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(d.resync),
			gocron.NewTask(d.resyncJob),
			gocron.WithName("full-resync"),
		)
		if err != nil {
			_ = d.compiler.StopWatch(handle)
			return fmt.Errorf("failed to schedule resync job: %w", err)
		}
		scheduler.Start()
		d.logger.Info("Scheduled periodic resync", "interval", d.resync)
	}

	d.logger.Info("Watching for template changes", "root", d.compiler.SourceRoot())
	<-ctx.Done()

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			d.logger.Error("Error shutting down scheduler", "error", err)
		}
	}
	return d.compiler.StopWatch(handle)
}

// resyncJob is invoked by gocron to run a scheduled full rebuild.
func (d *Daemon) resyncJob() {
	d.logger.Debug("Running scheduled full resync")
	if _, err := d.compiler.CompileAll(); err != nil {
		d.logger.Error("Scheduled resync failed", "error", err)
	}
}
