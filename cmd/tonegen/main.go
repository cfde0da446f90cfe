package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tonegen/cmd/tonegen/commands"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("tonegen"),
		kong.Description("Incremental precompiler turning .tone view templates into generated Java sources."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
