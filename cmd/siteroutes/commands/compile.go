package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/artifact"
	"git.home.luguber.info/inful/siteroutes/internal/compiler"
	"git.home.luguber.info/inful/siteroutes/internal/config"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
	"git.home.luguber.info/inful/siteroutes/internal/metrics"
	"git.home.luguber.info/inful/siteroutes/internal/observability"
	"git.home.luguber.info/inful/siteroutes/internal/routestore"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
	prom "github.com/prometheus/client_golang/prometheus"
)

// CompileCmd implements the 'compile' command.
type CompileCmd struct {
	Content     string        `help:"Content root directory (overrides content.root)"`
	Output      string        `short:"o" help:"Artifact output directory (overrides output.directory)"`
	Format      string        `short:"f" help:"Artifact format: json or yaml (overrides output.format)"`
	SQLite      string        `name:"sqlite" help:"Also export the route table to this SQLite database"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics in textfile format"`
	Timeout     time.Duration `help:"Abort the run after this duration (0 disables)" default:"0s"`
}

func (c *CompileCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}
	configureLogging(cfg, root.Verbose)
	return RunCompile(context.Background(), g, cfg, c.Timeout)
}

// apply layers flag overrides onto cfg.
func (c *CompileCmd) apply(cfg *config.Config) error {
	if c.Content != "" {
		cfg.Content.Root = c.Content
	}
	if c.Output != "" {
		cfg.Output.Directory = c.Output
	}
	if c.Format != "" {
		f := config.NormalizeArtifactFormat(c.Format)
		if f == "" {
			return serrors.ValidationFailed("format", fmt.Sprintf("unsupported artifact format %q", c.Format))
		}
		cfg.Output.Format = f
	}
	if c.SQLite != "" {
		cfg.Output.SQLite = c.SQLite
	}
	if c.MetricsFile != "" {
		cfg.Output.MetricsFile = c.MetricsFile
	}
	return nil
}

// RunCompile loads, compiles and publishes one build.
func RunCompile(ctx context.Context, g *Global, cfg *config.Config, timeout time.Duration) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx = observability.WithBuildID(ctx, observability.NewBuildID())

	reg := prom.NewRegistry()
	if cfg.Output.MetricsFile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(reg, cfg.Output.MetricsFile); werr != nil {
				observability.WarnContext(ctx, "Failed to write metrics file",
					logfields.Path(cfg.Output.MetricsFile), logfields.Error(werr))
			}
		}()
	}

	res, err := compiler.New().
		WithRecorder(metrics.NewPrometheusRecorder(reg)).
		LoadAndCompile(ctx, cfg)
	if err != nil {
		return err
	}

	m, err := artifact.Write(cfg.Output.Directory, artifact.Format(cfg.Output.Format), artifact.Bundle{
		BuildID:  res.BuildID,
		Table:    res.Table,
		Sidebars: publishedSidebars(res),
	})
	if err != nil {
		return serrors.ArtifactWriteFailed(cfg.Output.Directory, err)
	}
	observability.InfoContext(ctx, "Artifacts written",
		logfields.Path(cfg.Output.Directory), slog.Int("files", len(m.Files)))

	changed := -1
	if cfg.Output.SQLite != "" {
		if changed, err = exportStore(ctx, cfg.Output.SQLite, res); err != nil {
			return err
		}
	}

	out := g.out()
	fmt.Fprintf(out, "Build %s: %d routes (%d docs, %d posts)\n", res.BuildID, res.Table.Len(), res.Docs, res.Posts)
	fmt.Fprintf(out, "Artifacts: %s\n", cfg.Output.Directory)
	if changed >= 0 {
		fmt.Fprintf(out, "Changed routes since previous build: %d\n", changed)
	}
	return nil
}

// exportStore saves the build and returns how many routes changed since the
// previously stored build, or -1 when there was none.
func exportStore(ctx context.Context, path string, res *compiler.Result) (int, error) {
	store, err := routestore.Open(path)
	if err != nil {
		return 0, serrors.StoreFailed("open", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Warn("Failed to close route store", logfields.Error(cerr))
		}
	}()

	prev, err := store.LatestBuild(ctx)
	if errors.Is(err, routestore.ErrNotFound) {
		prev = ""
	} else if err != nil {
		return 0, serrors.StoreFailed("latest", err)
	}

	if err := store.SaveBuild(ctx, res.BuildID, res.Table, publishedSidebars(res)); err != nil {
		return 0, serrors.StoreFailed("save", err)
	}
	if prev == "" {
		return -1, nil
	}

	changed, err := store.ChangedPaths(ctx, prev, res.BuildID)
	if err != nil {
		return 0, serrors.StoreFailed("diff", err)
	}
	for _, p := range changed {
		observability.DebugContext(ctx, "Route changed", logfields.Path(p))
	}
	return len(changed), nil
}

// publishedSidebars drops the empty default sidebar of a site without docs.
func publishedSidebars(res *compiler.Result) []*sidebar.Sidebar {
	if res.Docs == 0 {
		return nil
	}
	return res.Sidebars.Sidebars
}
