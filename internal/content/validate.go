package content

import (
	"fmt"
	"strings"
)

// InvalidItemError reports an item that violates the content model.
type InvalidItemError struct {
	Ref    string
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid content item %s: %s", e.Ref, e.Reason)
}

// Validate checks the per-item invariants: non-empty slug, non-empty category
// path segments, a date on every blog post and a non-empty author id.
// Slug uniqueness is checked by the tree and index builders, which own it.
func Validate(items []*Item) error {
	for _, it := range items {
		if it == nil {
			return &InvalidItemError{Ref: "<nil>", Reason: "nil item"}
		}
		if strings.TrimSpace(it.Slug) == "" {
			return &InvalidItemError{Ref: it.Ref(), Reason: "empty slug"}
		}
		if strings.Contains(it.Slug, "/") {
			return &InvalidItemError{Ref: it.Ref(), Reason: fmt.Sprintf("slug %q contains '/'", it.Slug)}
		}
		if it.Slug == "." || it.Slug == ".." {
			return &InvalidItemError{Ref: it.Ref(), Reason: fmt.Sprintf("slug %q is a dot segment", it.Slug)}
		}
		for i, seg := range it.CategoryPath {
			if strings.TrimSpace(seg) == "" {
				return &InvalidItemError{Ref: it.Ref(), Reason: fmt.Sprintf("empty category path segment at index %d", i)}
			}
		}
		switch it.Collection {
		case CollectionBlog:
			if it.Date.IsZero() {
				return &InvalidItemError{Ref: it.Ref(), Reason: "blog post without date"}
			}
			if it.Author != nil && strings.TrimSpace(it.Author.ID) == "" {
				return &InvalidItemError{Ref: it.Ref(), Reason: "author without id"}
			}
		case CollectionDocs:
		default:
			return &InvalidItemError{Ref: it.Ref(), Reason: fmt.Sprintf("unknown collection %q", it.Collection)}
		}
	}
	return nil
}
