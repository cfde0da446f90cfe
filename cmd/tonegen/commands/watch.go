package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/tonegen/internal/daemon"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct{}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	c, cfg, err := NewCompiler(root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := daemon.New(c, daemon.WithResync(cfg.Watch.Resync.Std()))
	return d.Run(ctx)
}
