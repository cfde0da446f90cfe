package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/tonegen/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing tone.yaml"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := filepath.Join(root.Source, config.FileName)
	if _, err := os.Stat(path); err == nil && !i.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(root.Source, 0o755); err != nil {
		return fmt.Errorf("failed to create source root: %w", err)
	}
	if err := config.Default().Write(root.Source); err != nil {
		return err
	}
	slog.Info("Wrote project configuration", "file", path)
	return nil
}
