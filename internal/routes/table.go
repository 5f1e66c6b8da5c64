package routes

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
)

// ErrMissingCatchAll is returned when a route list does not end with the
// catch-all route.
var ErrMissingCatchAll = errors.New("route table must end with the catch-all route")

// Table is a validated route tree plus a flat index for O(1) lookup.
type Table struct {
	routes   []*Route
	byPath   map[string]*Route
	catchAll *Route
}

// NewTable indexes a route tree. Every path must be unique across the whole
// tree and the last top-level route must be the catch-all.
func NewTable(routes []*Route) (*Table, error) {
	if len(routes) == 0 || routes[len(routes)-1].Path != CatchAllPath {
		return nil, ErrMissingCatchAll
	}
	t := &Table{
		routes:   routes,
		byPath:   make(map[string]*Route),
		catchAll: routes[len(routes)-1],
	}
	err := walk(routes, 0, func(r *Route, _ int) error {
		if prev, dup := t.byPath[r.Path]; dup {
			return &serrors.PathCollisionError{Path: r.Path, Existing: prev.describe(), Incoming: r.describe()}
		}
		t.byPath[r.Path] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Routes returns the top-level routes in emission order.
func (t *Table) Routes() []*Route {
	return t.routes
}

// Len returns the number of routes, nested ones and the catch-all included.
func (t *Table) Len() int {
	return len(t.byPath)
}

// CatchAll returns the fallback route.
func (t *Table) CatchAll() *Route {
	return t.catchAll
}

// Lookup returns the route registered at exactly path.
func (t *Table) Lookup(p string) (*Route, bool) {
	r, ok := t.byPath[Normalize(p)]
	return r, ok
}

// Resolve returns the route for path, falling back to the catch-all when no
// route matches exactly.
func (t *Table) Resolve(p string) *Route {
	if r, ok := t.Lookup(p); ok {
		return r
	}
	return t.catchAll
}

// Match returns the layout chain for path: the nested routes from the
// outermost layout down to the exact match. Each level descends into the
// child whose path is the longest prefix of path. Unmatched paths return
// only the catch-all.
func (t *Table) Match(p string) []*Route {
	p = Normalize(p)
	var chain []*Route
	level := t.routes
	for {
		var best *Route
		for _, r := range level {
			if r.Path == p {
				return append(chain, r)
			}
			if len(r.Children) > 0 && hasPathPrefix(p, r.Path) && (best == nil || len(r.Path) > len(best.Path)) {
				best = r
			}
		}
		if best == nil {
			return []*Route{t.catchAll}
		}
		chain = append(chain, best)
		level = best.Children
	}
}

func hasPathPrefix(p, prefix string) bool {
	if prefix == "/" {
		return strings.HasPrefix(p, "/")
	}
	return strings.HasPrefix(p, prefix+"/")
}

// Paths returns every registered path in lexical order.
func (t *Table) Paths() []string {
	out := make([]string, 0, len(t.byPath))
	for p := range t.byPath {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Walk visits every route depth-first in emission order.
func (t *Table) Walk(fn func(r *Route, depth int) error) error {
	return walk(t.routes, 0, fn)
}

func walk(routes []*Route, depth int, fn func(*Route, int) error) error {
	for _, r := range routes {
		if err := fn(r, depth); err != nil {
			return err
		}
		if err := walk(r.Children, depth+1, fn); err != nil {
			return fmt.Errorf("%s: %w", r.Path, err)
		}
	}
	return nil
}
