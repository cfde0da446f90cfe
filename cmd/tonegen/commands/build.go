package commands

import (
	"log/slog"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Strict bool `help:"Fail the build when any template fails to compile"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	c, _, err := NewCompiler(root)
	if err != nil {
		return err
	}

	if b.Strict {
		return c.CompileAllOrError()
	}

	res, err := c.CompileAll()
	if err != nil {
		return err
	}
	for _, unit := range res.Errors {
		slog.Error("Template failed", "file", unit.File, "error", unit.Err)
	}
	return nil
}
