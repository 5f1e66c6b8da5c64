// Package compiler runs the compilation stages in order and publishes the
// complete result only when every stage succeeds.
package compiler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/index"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
	"git.home.luguber.info/inful/siteroutes/internal/metrics"
	"git.home.luguber.info/inful/siteroutes/internal/observability"
	"git.home.luguber.info/inful/siteroutes/internal/routes"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
	"git.home.luguber.info/inful/siteroutes/internal/tree"
)

// Stage names used for logs, metrics and error context.
const (
	StageValidate = "validate"
	StageTree     = "tree"
	StageIndex    = "index"
	StageListings = "listings"
	StageSidebar  = "sidebar"
	StageRoutes   = "routes"
)

// Options configure one compilation.
type Options struct {
	Tree   tree.Options
	Routes routes.Options
	Pages  []routes.StaticPage
	// SkipBlog leaves out every blog route. An enabled blog with no posts
	// still emits its listing routes.
	SkipBlog bool
}

// Result is the published output of a successful compilation.
type Result struct {
	BuildID  string
	Docs     int
	Posts    int
	Tree     *tree.CategoryNode
	Index    *index.Index
	Listings *routes.Listings
	Sidebars *sidebar.Projection
	Table    *routes.Table
	Duration time.Duration
}

// Compiler orchestrates the stages. The zero value is not usable; call New.
type Compiler struct {
	recorder metrics.Recorder
}

// New creates a Compiler that records nothing.
func New() *Compiler {
	return &Compiler{recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (c *Compiler) WithRecorder(r metrics.Recorder) *Compiler {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	c.recorder = r
	return c
}

// Compile runs every stage over items. The context carries the build id for
// logging; a build id is generated when it has none. On any failure no
// partial result is returned.
func (c *Compiler) Compile(ctx context.Context, items []*content.Item, opts Options) (*Result, error) {
	start := time.Now()
	buildID := observability.GetContext(ctx).BuildID
	if buildID == "" {
		buildID = observability.NewBuildID()
		ctx = observability.WithBuildID(ctx, buildID)
	}

	res, err := c.run(ctx, items, opts)
	d := time.Since(start)
	c.recorder.ObserveCompileDuration(d)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.recorder.IncCompileOutcome(metrics.CompileOutcomeCanceled)
		} else {
			c.recorder.IncCompileOutcome(metrics.CompileOutcomeFailed)
		}
		return nil, err
	}

	res.BuildID = buildID
	res.Duration = d
	c.recorder.IncCompileOutcome(metrics.CompileOutcomeSuccess)
	c.recorder.SetRoutes(res.Table.Len())
	pages := 0
	if !opts.SkipBlog {
		pages = res.Listings.PageCount()
	}
	c.recorder.SetListingPages(pages)
	observability.InfoContext(ctx, "Compilation completed",
		slog.Int("routes", res.Table.Len()),
		slog.Int("docs", res.Docs),
		slog.Int("posts", res.Posts),
		logfields.DurationMS(float64(d.Microseconds())/1000))
	return res, nil
}

func (c *Compiler) run(ctx context.Context, items []*content.Item, opts Options) (*Result, error) {
	var res Result
	var docs, posts []*content.Item

	routeOpts := opts.Routes
	if routeOpts.DocsBasePath == "" {
		routeOpts.DocsBasePath = routes.DefaultDocsBasePath
	}

	stages := []struct {
		name string
		fn   func() error
	}{
		{StageValidate, func() error {
			if err := content.Validate(items); err != nil {
				return err
			}
			docs, posts = content.ByCollection(items)
			res.Docs, res.Posts = len(docs), len(posts)
			c.recorder.SetItems(string(content.CollectionDocs), res.Docs)
			c.recorder.SetItems(string(content.CollectionBlog), res.Posts)
			return nil
		}},
		{StageTree, func() (err error) {
			res.Tree, err = tree.Build(docs, opts.Tree)
			return err
		}},
		{StageIndex, func() (err error) {
			res.Index, err = index.Build(posts)
			return err
		}},
		{StageListings, func() (err error) {
			res.Listings, err = routes.BuildListings(res.Index, routeOpts)
			return err
		}},
		{StageSidebar, func() error {
			res.Sidebars = sidebar.Project(res.Tree, routes.Normalize(routeOpts.DocsBasePath))
			return nil
		}},
		{StageRoutes, func() (err error) {
			in := routes.Input{
				Docs:     res.Tree,
				Blog:     res.Index,
				Listings: res.Listings,
				Sidebars: res.Sidebars,
				Pages:    opts.Pages,
			}
			if opts.SkipBlog {
				in.Blog, in.Listings = nil, nil
			}
			res.Table, err = routes.Compile(in, routeOpts)
			return err
		}},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, serrors.CompileFailed(st.name, err)
		}
		if err := c.stage(ctx, st.name, st.fn); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

func (c *Compiler) stage(ctx context.Context, name string, fn func() error) error {
	_, span := observability.StartStageSpan(ctx, name)
	err := fn()
	span.RecordError(err)
	c.recorder.ObserveStageDuration(name, span.End())
	if err != nil {
		c.recorder.IncStageResult(name, metrics.ResultFailed)
		return serrors.CompileFailed(name, err)
	}
	c.recorder.IncStageResult(name, metrics.ResultSuccess)
	return nil
}
