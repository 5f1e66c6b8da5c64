package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	"git.home.luguber.info/inful/siteroutes/internal/index"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
	"git.home.luguber.info/inful/siteroutes/internal/paginate"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
	"git.home.luguber.info/inful/siteroutes/internal/tree"
)

// ErrUnknownSidebar is returned when a docs route is bound to a sidebar id
// the projection does not define.
var ErrUnknownSidebar = errors.New("docs route bound to unknown sidebar")

const (
	DefaultDocsBasePath = "/docs"
	DefaultBlogBasePath = "/blog"
	DefaultPageSize     = 10
)

// StaticPage is a configured standalone route such as /about.
type StaticPage struct {
	Path      string
	Component ComponentRef
}

// Input is everything one compilation consumes. Nil Docs or Blog skip that
// collection; nil Listings are derived from Blog. A non-nil Blog always emits
// its listing routes, even with no posts, so /blog resolves on an empty blog.
type Input struct {
	Docs     *tree.CategoryNode
	Blog     *index.Index
	Listings *Listings
	Sidebars *sidebar.Projection
	Pages    []StaticPage
}

// Options control route layout and hashing. Zero values select defaults.
type Options struct {
	DocsBasePath   string
	BlogBasePath   string
	PageSize       int
	TagPageSize    int
	AuthorPageSize int
	HashLength     int
	Archive        bool
}

func (o Options) withDefaults() Options {
	if o.DocsBasePath == "" {
		o.DocsBasePath = DefaultDocsBasePath
	}
	if o.BlogBasePath == "" {
		o.BlogBasePath = DefaultBlogBasePath
	}
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if o.TagPageSize == 0 {
		o.TagPageSize = o.PageSize
	}
	if o.AuthorPageSize == 0 {
		o.AuthorPageSize = o.PageSize
	}
	if o.HashLength <= 0 {
		o.HashLength = content.DefaultHashLength
	}
	return o
}

// Compile emits the complete route table. Top-level order is static pages,
// blog routes, the nested docs tree, then the catch-all. Any path emitted
// twice fails the whole compilation and no table is returned.
func Compile(in Input, opts Options) (*Table, error) {
	opts = opts.withDefaults()
	c := &compiler{opts: opts, sidebars: in.Sidebars}

	var out []*Route
	for _, p := range in.Pages {
		out = append(out, &Route{
			Path:        Normalize(p.Path),
			Component:   p.Component,
			ContentHash: c.hash(Normalize(p.Path), string(p.Component)),
			Exact:       true,
		})
	}

	if in.Blog != nil {
		listings := in.Listings
		if listings == nil {
			var err error
			if listings, err = BuildListings(in.Blog, opts); err != nil {
				return nil, err
			}
		}
		out = append(out, c.blog(in.Blog, listings)...)
	}

	if in.Docs != nil && in.Docs.CountItems() > 0 {
		docs, err := c.docs(in.Docs, Normalize(opts.DocsBasePath))
		if err != nil {
			return nil, err
		}
		docs.Component = ComponentDocsRoot
		out = append(out, docs)
	}

	out = append(out, &Route{
		Path:        CatchAllPath,
		Component:   ComponentNotFound,
		ContentHash: c.hash(CatchAllPath),
	})

	t, err := NewTable(out)
	if err != nil {
		return nil, err
	}
	slog.Debug("Compiled route table", logfields.Count(t.Len()))
	return t, nil
}

type compiler struct {
	opts     Options
	sidebars *sidebar.Projection
}

func (c *compiler) hash(parts ...string) string {
	return content.ShortHash([]byte(strings.Join(parts, "\n")), c.opts.HashLength)
}

func (c *compiler) itemHash(it *content.Item) string {
	if it.ContentHash != "" {
		return it.ContentHash
	}
	return c.hash(string(it.Collection), it.Slug)
}

func (c *compiler) sidebarID(n *tree.CategoryNode) (string, error) {
	if c.sidebars == nil || n.SidebarID == "" {
		return n.SidebarID, nil
	}
	if c.sidebars.Sidebar(n.SidebarID) == nil {
		return "", fmt.Errorf("%w: %q at %s", ErrUnknownSidebar, n.SidebarID, n.Key())
	}
	return n.SidebarID, nil
}

// docs emits the layout route for n with its items and sub-categories
// nested below it.
func (c *compiler) docs(n *tree.CategoryNode, base string) (*Route, error) {
	sb, err := c.sidebarID(n)
	if err != nil {
		return nil, err
	}
	r := &Route{
		Path:      Normalize(n.URLPath(base)),
		Component: ComponentDocCategory,
		SidebarID: sb,
	}
	members := make([]string, 0, len(n.Items)+len(n.Children))
	for _, it := range n.Items {
		members = append(members, it.Slug)
		r.Children = append(r.Children, &Route{
			Path:        Normalize(n.ItemURLPath(base, it)),
			Component:   ComponentDocPage,
			ContentHash: c.itemHash(it),
			Exact:       true,
			SidebarID:   sb,
			Slug:        it.Slug,
		})
	}
	for _, child := range n.Children {
		members = append(members, child.Slug+"/")
		cr, err := c.docs(child, base)
		if err != nil {
			return nil, err
		}
		r.Children = append(r.Children, cr)
	}
	r.ContentHash = c.hash(members...)
	return r, nil
}

func (c *compiler) blog(ix *index.Index, l *Listings) []*Route {
	base := Normalize(c.opts.BlogBasePath)
	var out []*Route

	out = append(out, c.listingRoutes(ComponentBlogList, "blog", "", l.Blog)...)
	for _, p := range ix.Chronology {
		out = append(out, &Route{
			Path:        PostPath(base, p.Slug),
			Component:   ComponentBlogPost,
			ContentHash: c.itemHash(p),
			Exact:       true,
			Slug:        p.Slug,
		})
	}

	out = append(out, c.entryList(ComponentBlogTagsList, TagsPath(base), ix.Tags))
	for _, e := range l.Tags {
		out = append(out, c.listingRoutes(ComponentBlogTagPosts, string(index.KindTag), e.Entry.Key, e.Pages)...)
	}
	out = append(out, c.entryList(ComponentBlogAuthorsList, AuthorsPath(base), ix.Authors))
	for _, e := range l.Authors {
		out = append(out, c.listingRoutes(ComponentBlogAuthorPosts, string(index.KindAuthor), e.Entry.Key, e.Pages)...)
	}

	if c.opts.Archive {
		var parts []string
		for _, g := range ix.Archive {
			parts = append(parts, strconv.Itoa(g.Year))
			for _, p := range g.Posts {
				parts = append(parts, p.Slug)
			}
		}
		out = append(out, &Route{
			Path:        ArchivePath(base),
			Component:   ComponentBlogArchive,
			ContentHash: c.hash(parts...),
			Exact:       true,
		})
	}
	return out
}

// entryList emits a list page whose hash covers only the entry keys, so a
// change in one entry's membership leaves it untouched.
func (c *compiler) entryList(comp ComponentRef, p string, entries []*index.Entry) *Route {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return &Route{Path: p, Component: comp, ContentHash: c.hash(keys...), Exact: true}
}

func (c *compiler) listingRoutes(comp ComponentRef, kind, key string, pages []paginate.Page[*content.Item]) []*Route {
	out := make([]*Route, 0, len(pages))
	for _, pg := range pages {
		slugs := make([]string, len(pg.Items))
		for i, it := range pg.Items {
			slugs[i] = it.Slug
		}
		out = append(out, &Route{
			Path:        Normalize(pg.Path),
			Component:   comp,
			ContentHash: c.hash(slugs...),
			Exact:       true,
			Listing: &Listing{
				Kind:       kind,
				Key:        key,
				Page:       pg.Number,
				TotalPages: pg.Total,
				HasPrev:    pg.HasPrev,
				HasNext:    pg.HasNext,
				PrevPath:   pg.PrevPath,
				NextPath:   pg.NextPath,
				Slugs:      slugs,
			},
		})
	}
	return out
}
