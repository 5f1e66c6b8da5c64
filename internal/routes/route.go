// Package routes compiles the category tree, the blog index and its
// paginated listings into one validated route table.
package routes

import (
	"path"
	"strings"
)

// ComponentRef is an opaque handle resolved by the page renderer. The
// compiler never depends on rendering code, only on these names.
type ComponentRef string

const (
	ComponentDocsRoot        ComponentRef = "docs-root"
	ComponentDocCategory     ComponentRef = "doc-category"
	ComponentDocPage         ComponentRef = "doc-page"
	ComponentBlogList        ComponentRef = "blog-list"
	ComponentBlogPost        ComponentRef = "blog-post"
	ComponentBlogTagsList    ComponentRef = "blog-tags-list"
	ComponentBlogTagPosts    ComponentRef = "blog-tag-posts"
	ComponentBlogAuthorsList ComponentRef = "blog-authors-list"
	ComponentBlogAuthorPosts ComponentRef = "blog-author-posts"
	ComponentBlogArchive     ComponentRef = "blog-archive"
	ComponentNotFound        ComponentRef = "not-found"
)

// CatchAllPath is the path of the fallback route.
const CatchAllPath = "*"

// Listing describes one page of a generated listing route.
type Listing struct {
	Kind       string   `json:"kind" yaml:"kind"` // blog, tag, author
	Key        string   `json:"key,omitempty" yaml:"key,omitempty"`
	Page       int      `json:"page" yaml:"page"`
	TotalPages int      `json:"total_pages" yaml:"total_pages"`
	HasPrev    bool     `json:"has_prev" yaml:"has_prev"`
	HasNext    bool     `json:"has_next" yaml:"has_next"`
	PrevPath   string   `json:"prev_path,omitempty" yaml:"prev_path,omitempty"`
	NextPath   string   `json:"next_path,omitempty" yaml:"next_path,omitempty"`
	Slugs      []string `json:"slugs" yaml:"slugs"`
}

// Route is one resolvable path. Docs routes nest so a parent's layout can
// wrap every descendant; all other routes are leaves.
type Route struct {
	Path        string       `json:"path" yaml:"path"`
	Component   ComponentRef `json:"component" yaml:"component"`
	ContentHash string       `json:"hash" yaml:"hash"`
	Exact       bool         `json:"exact,omitempty" yaml:"exact,omitempty"`
	SidebarID   string       `json:"sidebar,omitempty" yaml:"sidebar,omitempty"`
	Slug        string       `json:"slug,omitempty" yaml:"slug,omitempty"`
	Listing     *Listing     `json:"listing,omitempty" yaml:"listing,omitempty"`
	Children    []*Route     `json:"routes,omitempty" yaml:"routes,omitempty"`
}

// describe names the route's origin for collision reports.
func (r *Route) describe() string {
	switch {
	case r.Slug != "":
		return string(r.Component) + " " + `"` + r.Slug + `"`
	case r.Listing != nil && r.Listing.Key != "":
		return string(r.Component) + " " + `"` + r.Listing.Key + `"`
	default:
		return string(r.Component)
	}
}

// Normalize cleans a route path: leading slash, no duplicate or trailing
// slashes, dot segments resolved. The catch-all path is returned unchanged.
func Normalize(p string) string {
	if p == CatchAllPath {
		return p
	}
	if p == "" {
		return "/"
	}
	return path.Clean("/" + strings.TrimSpace(p))
}
