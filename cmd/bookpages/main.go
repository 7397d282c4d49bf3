package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookpages/cmd/bookpages/commands"
	"git.home.luguber.info/inful/bookpages/internal/version"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("bookpages"),
		kong.Description("Deterministic static site builder for numbered markdown books."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Builder + " " + version.Version},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}))
}
