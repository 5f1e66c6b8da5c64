package main

import (
	"log/slog"

	"git.home.luguber.info/inful/siteroutes/cmd/siteroutes/commands"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("siteroutes"),
		kong.Description("Compile docs and blog content into a route table and sidebars."),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	serrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
