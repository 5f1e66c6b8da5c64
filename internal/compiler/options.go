package compiler

import (
	"context"
	"maps"
	"slices"

	"git.home.luguber.info/inful/siteroutes/internal/config"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/loader"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
	"git.home.luguber.info/inful/siteroutes/internal/metrics"
	"git.home.luguber.info/inful/siteroutes/internal/observability"
	"git.home.luguber.info/inful/siteroutes/internal/routes"
	"git.home.luguber.info/inful/siteroutes/internal/tree"
)

// OptionsFromConfig maps a configuration onto compile options. order holds
// the lists read from _category_.yml files; configured lists for the same
// key come first, followed by any loader entries they do not repeat.
func OptionsFromConfig(cfg *config.Config, order tree.Options) Options {
	opts := Options{
		SkipBlog: cfg.Content.BlogDir == "",
		Tree: tree.Options{
			CategoryOrder:  mergeOrder(cfg.Docs.CategoryOrder, order.CategoryOrder),
			ItemOrder:      mergeOrder(cfg.Docs.ItemOrder, order.ItemOrder),
			DefaultSidebar: cfg.Docs.DefaultSidebar,
			Sidebars:       maps.Clone(cfg.Docs.Sidebars),
		},
		Routes: routes.Options{
			DocsBasePath:   cfg.Docs.BasePath,
			BlogBasePath:   cfg.Blog.BasePath,
			PageSize:       cfg.Blog.PageSize,
			TagPageSize:    cfg.Blog.TagPageSize,
			AuthorPageSize: cfg.Blog.AuthorPageSize,
			HashLength:     cfg.Routes.HashLength,
			Archive:        cfg.Blog.ArchiveEnabled(),
		},
	}
	for _, p := range cfg.Pages {
		opts.Pages = append(opts.Pages, routes.StaticPage{
			Path:      p.Path,
			Component: routes.ComponentRef(p.Component),
		})
	}
	return opts
}

func mergeOrder(configured, loaded map[string][]string) map[string][]string {
	out := make(map[string][]string, len(configured)+len(loaded))
	for k, v := range loaded {
		out[k] = slices.Clone(v)
	}
	for k, v := range configured {
		merged := slices.Clone(v)
		for _, name := range out[k] {
			if !slices.Contains(merged, name) {
				merged = append(merged, name)
			}
		}
		out[k] = merged
	}
	return out
}

// LoadAndCompile reads the content directory named by cfg and compiles it.
func (c *Compiler) LoadAndCompile(ctx context.Context, cfg *config.Config) (*Result, error) {
	if observability.GetContext(ctx).BuildID == "" {
		ctx = observability.WithBuildID(ctx, observability.NewBuildID())
	}

	_, span := observability.StartStageSpan(ctx, "load")
	loaded, err := loader.Load(loader.Options{
		Root:          cfg.Content.Root,
		DocsDir:       cfg.Content.DocsDir,
		BlogDir:       cfg.Content.BlogDir,
		AuthorsFile:   cfg.Content.AuthorsFile,
		HashLength:    cfg.Routes.HashLength,
		IncludeDrafts: cfg.Content.IncludeDrafts,
	})
	span.RecordError(err)
	c.recorder.ObserveStageDuration("load", span.End())
	if err != nil {
		c.recorder.IncCompileOutcome(metrics.CompileOutcomeFailed)
		return nil, serrors.ContentLoadFailed(cfg.Content.Root, err)
	}
	if loaded.Drafts > 0 {
		observability.InfoContext(ctx, "Skipped draft posts", logfields.Count(loaded.Drafts))
	}

	return c.Compile(ctx, loaded.Items, OptionsFromConfig(cfg, loaded.Order))
}
