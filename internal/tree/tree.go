// Package tree assembles doc items into the nested category hierarchy that
// both the route compiler and the sidebar projector consume.
package tree

import (
	"log/slog"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
)

// DefaultSidebarID binds subtrees that no sidebar option claims.
const DefaultSidebarID = "docsSidebar"

// CategoryNode is one node of the docs hierarchy. The root has an empty Name
// and Path. Nodes are read-only once Build returns.
type CategoryNode struct {
	Name      string
	Path      []string // category names from the root to this node
	Slug      string   // URL segment; empty for the root
	SlugPath  []string // URL segments from the root to this node
	Children  []*CategoryNode
	Items     []*content.Item
	SidebarID string
}

// Key is the "/"-joined category path used by ordering options.
func (n *CategoryNode) Key() string {
	return content.JoinPath(n.Path)
}

// URLPath returns the node's route path below the docs base path.
func (n *CategoryNode) URLPath(base string) string {
	base = strings.TrimSuffix(base, "/")
	if len(n.SlugPath) == 0 {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + strings.Join(n.SlugPath, "/")
}

// ItemURLPath returns the route path of an item held directly by n.
func (n *CategoryNode) ItemURLPath(base string, it *content.Item) string {
	return strings.TrimSuffix(n.URLPath(base), "/") + "/" + it.Slug
}

// IsRoot reports whether n is the tree root.
func (n *CategoryNode) IsRoot() bool {
	return len(n.Path) == 0
}

// Walk visits n and its descendants depth-first in order.
func (n *CategoryNode) Walk(fn func(*CategoryNode) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// CountNodes returns the number of category nodes including n.
func (n *CategoryNode) CountNodes() int {
	total := 1
	for _, c := range n.Children {
		total += c.CountNodes()
	}
	return total
}

// CountItems returns the number of items under n.
func (n *CategoryNode) CountItems() int {
	total := len(n.Items)
	for _, c := range n.Children {
		total += c.CountItems()
	}
	return total
}

// Find returns the descendant addressed by category names, or nil.
func (n *CategoryNode) Find(path ...string) *CategoryNode {
	cur := n
	for _, name := range path {
		var next *CategoryNode
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Options control ordering and sidebar binding. Order maps are keyed by the
// parent's "/"-joined category path; "" addresses the root.
type Options struct {
	CategoryOrder  map[string][]string // child category names
	ItemOrder      map[string][]string // item slugs
	DefaultSidebar string
	Sidebars       map[string]string // top-level category name -> sidebar id
}

// Build assembles docs items into a category tree. Items from other
// collections are ignored.
func Build(items []*content.Item, opts Options) (*CategoryNode, error) {
	b := newBuilder()
	seen := make(map[string]*content.Item)
	for _, it := range items {
		if it.Collection != content.CollectionDocs {
			continue
		}
		if prev, dup := seen[it.Slug]; dup {
			return nil, &serrors.DuplicateSlugError{
				Collection: string(content.CollectionDocs),
				Slug:       it.Slug,
				First:      prev.Ref(),
				Second:     it.Ref(),
			}
		}
		seen[it.Slug] = it
		if err := b.add(it); err != nil {
			return nil, err
		}
	}

	sidebar := opts.DefaultSidebar
	if sidebar == "" {
		sidebar = DefaultSidebarID
	}
	root := b.root.freeze(nil, nil, sidebar, opts)
	slog.Debug("Category tree built",
		logfields.Count(root.CountNodes()),
		slog.Int("items", root.CountItems()))
	return root, nil
}

// buildNode is the mutable form used while items are added.
type buildNode struct {
	name     string
	children []*buildNode
	byName   map[string]*buildNode
	byFold   map[string]string
	items    []*content.Item
}

type builder struct {
	root *buildNode
}

func newBuilder() *builder {
	return &builder{root: newBuildNode("")}
}

func newBuildNode(name string) *buildNode {
	return &buildNode{
		name:   name,
		byName: make(map[string]*buildNode),
		byFold: make(map[string]string),
	}
}

func (b *builder) add(it *content.Item) error {
	cur := b.root
	for i, name := range it.CategoryPath {
		child, err := cur.child(name, it.CategoryPath[:i])
		if err != nil {
			return err
		}
		cur = child
	}
	cur.items = append(cur.items, it)
	return nil
}

// child returns the child called name, creating it on first encounter.
// Merging is exact and case-sensitive; a name that only folds to an existing
// sibling is rejected.
func (n *buildNode) child(name string, parent []string) (*buildNode, error) {
	if c, ok := n.byName[name]; ok {
		return c, nil
	}
	key := content.FoldKey(name)
	if existing, ok := n.byFold[key]; ok {
		return nil, &serrors.OrphanCategoryError{
			Parent:   append([]string(nil), parent...),
			Name:     name,
			Existing: existing,
		}
	}
	c := newBuildNode(name)
	n.byName[name] = c
	n.byFold[key] = name
	n.children = append(n.children, c)
	return c, nil
}

func (n *buildNode) freeze(parent, parentSlugs []string, sidebar string, opts Options) *CategoryNode {
	var path, slugPath []string
	slug := categorySlug(n.name)
	if n.name != "" {
		path = append(append([]string(nil), parent...), n.name)
		slugPath = append(append([]string(nil), parentSlugs...), slug)
		if len(parent) == 0 {
			if id, ok := opts.Sidebars[n.name]; ok && id != "" {
				sidebar = id
			}
		}
	}
	key := content.JoinPath(path)

	out := &CategoryNode{
		Name:      n.name,
		Path:      path,
		Slug:      slug,
		SlugPath:  slugPath,
		SidebarID: sidebar,
	}

	children := ordered(n.children, func(c *buildNode) string { return c.name }, opts.CategoryOrder[key], key)
	for _, c := range children {
		out.Children = append(out.Children, c.freeze(path, slugPath, sidebar, opts))
	}
	out.Items = ordered(n.items, func(it *content.Item) string { return it.Slug }, opts.ItemOrder[key], key)
	return out
}

func categorySlug(name string) string {
	if name == "" {
		return ""
	}
	if s := content.Slugify(name); s != "" {
		return s
	}
	return url.PathEscape(name)
}

// ordered returns list with the entries named by order first, in that order,
// followed by the remaining entries in their original (first-seen) order.
func ordered[T any](list []T, name func(T) string, order []string, key string) []T {
	if len(order) == 0 {
		return append([]T(nil), list...)
	}
	index := make(map[string]int, len(list))
	for i, v := range list {
		index[name(v)] = i
	}
	used := make([]bool, len(list))
	out := make([]T, 0, len(list))
	for _, want := range order {
		i, ok := index[want]
		if !ok {
			slog.Debug("Ignoring unknown order entry", logfields.Category(key), slog.String("entry", want))
			continue
		}
		if used[i] {
			continue
		}
		used[i] = true
		out = append(out, list[i])
	}
	for i, v := range list {
		if !used[i] {
			out = append(out, v)
		}
	}
	return out
}
