package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/tonegen/internal/compiler"
	"git.home.luguber.info/inful/tonegen/internal/config"
	"git.home.luguber.info/inful/tonegen/internal/metrics"
	"git.home.luguber.info/inful/tonegen/internal/render"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Source  string `short:"s" help:"Source root containing .tone templates" default:"src/main/views"`
	Output  string `short:"o" help:"Output root for generated sources" default:"target/views"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build BuildCmd `cmd:"" help:"Compile every template once"`
	Watch WatchCmd `cmd:"" help:"Compile everything, then watch the source tree and recompile on changes"`
	Clear ClearCmd `cmd:"" help:"Wipe the output tree"`
	Init  InitCmd  `cmd:"" help:"Write a starter tone.yaml to the source root"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// NewCompiler wires a compiler from global flags and the project's tone.yaml.
func NewCompiler(root *CLI) (*compiler.Compiler, *config.Project, error) {
	cfg, err := config.Load(root.Source)
	if err != nil {
		return nil, nil, err
	}

	listeners, err := cfg.ListenersOr(nil)
	if err != nil {
		return nil, nil, err
	}

	opts := []compiler.Option{
		compiler.WithRenderer(render.JavaClassRenderer{Extends: cfg.Render.Extends}),
		compiler.WithImports(cfg.Imports...),
		compiler.WithListeners(listeners...),
		compiler.WithOutputSubPrefix(cfg.Output.SubPrefix),
		compiler.WithViewsMarker(cfg.Output.ViewsMarker),
		compiler.WithWatchDebounce(cfg.Watch.Debounce.Std()),
	}
	if cfg.Metrics.Enabled {
		recorder := metrics.NewPrometheusRecorder(nil)
		opts = append(opts, compiler.WithObserver(compiler.NewRecorderObserver(recorder)))
	}

	c, err := compiler.New(root.Source, root.Output, opts...)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}
