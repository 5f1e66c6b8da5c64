package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/siteroutes/internal/artifact"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	ID       string `arg:"" optional:"" help:"Sidebar id to print (all when omitted)"`
	Artifact string `short:"a" help:"Artifact directory (defaults to output.directory)"`
}

func (s *SidebarCmd) Run(g *Global, root *CLI) error {
	dir, err := artifactDir(s.Artifact, root)
	if err != nil {
		return err
	}
	loaded, err := artifact.Read(dir)
	if err != nil {
		return serrors.ArtifactReadFailed(dir, err)
	}

	out := g.out()
	found := false
	for _, sb := range loaded.Sidebars.Sidebars {
		if s.ID != "" && sb.ID != s.ID {
			continue
		}
		found = true
		fmt.Fprintf(out, "%s\n", sb.ID)
		printNodes(out, sb.Items, 1)
	}
	if s.ID != "" && !found {
		return serrors.ValidationFailed("sidebar", fmt.Sprintf("unknown sidebar %q", s.ID))
	}
	return nil
}

func printNodes(w io.Writer, nodes []*sidebar.Node, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", depth), n.Label, n.Href)
		printNodes(w, n.Items, depth+1)
	}
}
