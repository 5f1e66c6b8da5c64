package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/siteroutes/internal/artifact"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/routes"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Path     string `arg:"" help:"URL path to resolve"`
	Artifact string `short:"a" help:"Artifact directory (defaults to output.directory)"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	dir, err := artifactDir(r.Artifact, root)
	if err != nil {
		return err
	}
	loaded, err := artifact.Read(dir)
	if err != nil {
		return serrors.ArtifactReadFailed(dir, err)
	}
	printChain(g, loaded.Table.Match(r.Path))
	return nil
}

// printChain writes one line per route of the layout chain, outermost first.
func printChain(g *Global, chain []*routes.Route) {
	out := g.out()
	for depth, rt := range chain {
		line := fmt.Sprintf("%s%s  component=%s hash=%s", strings.Repeat("  ", depth), rt.Path, rt.Component, rt.ContentHash)
		if rt.SidebarID != "" {
			line += " sidebar=" + rt.SidebarID
		}
		fmt.Fprintln(out, line)
	}
}

// artifactDir picks the explicit directory, or the configured output
// directory.
func artifactDir(explicit string, root *CLI) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return "", err
	}
	configureLogging(cfg, root.Verbose)
	return cfg.Output.Directory, nil
}
