// Package sidebar projects the docs category tree into navigation trees.
//
// The projection is derived from the same tree the route compiler walks and
// uses the same URL helpers, so every link points at a compiled route.
package sidebar

import (
	"git.home.luguber.info/inful/siteroutes/internal/tree"
)

// Kind distinguishes category nodes from doc links.
type Kind string

const (
	KindCategory Kind = "category"
	KindDoc      Kind = "doc"
)

// Node is one entry of a sidebar tree. Category nodes list their docs
// first, then their sub-categories, each group in tree order.
type Node struct {
	Kind  Kind    `json:"type" yaml:"type"`
	Label string  `json:"label" yaml:"label"`
	Href  string  `json:"href" yaml:"href"`
	DocID string  `json:"doc_id,omitempty" yaml:"doc_id,omitempty"`
	Items []*Node `json:"items,omitempty" yaml:"items,omitempty"`
}

// Categories returns the category children of n in order.
func (n *Node) Categories() []*Node {
	var out []*Node
	for _, c := range n.Items {
		if c.Kind == KindCategory {
			out = append(out, c)
		}
	}
	return out
}

// Sidebar is a named navigation tree.
type Sidebar struct {
	ID    string  `json:"id" yaml:"id"`
	Items []*Node `json:"items" yaml:"items"`
}

// Projection is the complete navigation view of one category tree.
type Projection struct {
	// Root mirrors the category tree node for node.
	Root *Node
	// Sidebars groups the root's entries by sidebar id, first-seen order.
	// Entries are shared with Root.
	Sidebars []*Sidebar

	bindings map[string]string
}

// Project derives the navigation trees for root. docsBase is the route base
// path of the docs collection.
func Project(root *tree.CategoryNode, docsBase string) *Projection {
	p := &Projection{bindings: make(map[string]string)}
	p.Root = p.project(root, docsBase)

	byID := make(map[string]*Sidebar)
	get := func(id string) *Sidebar {
		sb, ok := byID[id]
		if !ok {
			sb = &Sidebar{ID: id, Items: []*Node{}}
			byID[id] = sb
			p.Sidebars = append(p.Sidebars, sb)
		}
		return sb
	}
	add := func(id string, n *Node) {
		sb := get(id)
		sb.Items = append(sb.Items, n)
	}
	// The docs root route binds to the root's sidebar, so it always exists.
	get(root.SidebarID)
	for i := range root.Items {
		add(root.SidebarID, p.Root.Items[i])
	}
	offset := len(root.Items)
	for i, c := range root.Children {
		add(c.SidebarID, p.Root.Items[offset+i])
	}
	return p
}

func (p *Projection) project(n *tree.CategoryNode, base string) *Node {
	path := n.URLPath(base)
	p.bindings[path] = n.SidebarID

	out := &Node{Kind: KindCategory, Label: n.Name, Href: path}
	out.Items = make([]*Node, 0, len(n.Items)+len(n.Children))
	for _, it := range n.Items {
		href := n.ItemURLPath(base, it)
		p.bindings[href] = n.SidebarID
		label := it.Title
		if label == "" {
			label = it.Slug
		}
		out.Items = append(out.Items, &Node{Kind: KindDoc, Label: label, Href: href, DocID: it.Slug})
	}
	for _, c := range n.Children {
		out.Items = append(out.Items, p.project(c, base))
	}
	return out
}

// SidebarFor returns the sidebar id bound to a docs route path.
func (p *Projection) SidebarFor(path string) (string, bool) {
	id, ok := p.bindings[path]
	return id, ok
}

// Sidebar returns the sidebar with the given id, or nil.
func (p *Projection) Sidebar(id string) *Sidebar {
	for _, sb := range p.Sidebars {
		if sb.ID == id {
			return sb
		}
	}
	return nil
}

// IDs lists sidebar ids in first-seen order.
func (p *Projection) IDs() []string {
	out := make([]string, len(p.Sidebars))
	for i, sb := range p.Sidebars {
		out[i] = sb.ID
	}
	return out
}
