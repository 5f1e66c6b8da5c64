// Package content holds the normalized representation of one doc page or blog
// post, the input to every compilation stage.
package content

import (
	"strings"
	"time"
)

// Collection names the content collection an item belongs to. Slugs are
// unique within a collection.
type Collection string

const (
	CollectionDocs Collection = "docs"
	CollectionBlog Collection = "blog"
)

// Author is a blog author referenced by posts.
type Author struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Item is one addressable unit of content.
type Item struct {
	Collection   Collection
	Slug         string
	Title        string
	CategoryPath []string  // root to immediate parent; empty for top-level items
	Date         time.Time // zero for docs
	Tags         []string  // set semantics, first-seen order
	Author       *Author
	ContentHash  string
	SourcePath   string // informational, used in error reports
}

// Ref describes the item for error messages and logs.
func (i *Item) Ref() string {
	if i.SourcePath != "" {
		return i.SourcePath
	}
	return string(i.Collection) + ":" + i.Slug
}

// CategoryKey joins the category path into the key used by ordering options.
func (i *Item) CategoryKey() string {
	return JoinPath(i.CategoryPath)
}

// JoinPath joins category names with "/"; the root is "".
func JoinPath(path []string) string {
	return strings.Join(path, "/")
}

// ByCollection splits items into docs and blog posts, keeping input order.
func ByCollection(items []*Item) (docs []*Item, posts []*Item) {
	for _, it := range items {
		switch it.Collection {
		case CollectionBlog:
			posts = append(posts, it)
		default:
			docs = append(docs, it)
		}
	}
	return docs, posts
}
