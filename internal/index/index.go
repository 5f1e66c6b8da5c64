// Package index groups blog posts into per-tag and per-author entries.
package index

import (
	"cmp"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
	"github.com/RoaringBitmap/roaring"
)

// Kind distinguishes tag entries from author entries.
type Kind string

const (
	KindTag    Kind = "tag"
	KindAuthor Kind = "author"
)

// Entry is a virtual grouping of posts sharing a tag or an author.
// Members are ordered by date descending, ties broken by slug ascending.
type Entry struct {
	Kind    Kind
	Key     string // tag string or author id
	Slug    string // URL segment
	Label   string
	Author  *content.Author // author entries only
	Members []*content.Item
}

// Slugs returns the member slugs in order.
func (e *Entry) Slugs() []string {
	out := make([]string, len(e.Members))
	for i, m := range e.Members {
		out[i] = m.Slug
	}
	return out
}

// YearGroup is one year of the blog archive.
type YearGroup struct {
	Year  int
	Posts []*content.Item
}

// Index is the cross-reference view of the blog collection.
type Index struct {
	Chronology []*content.Item // all posts, newest first
	Tags       []*Entry        // ordered by key
	Authors    []*Entry        // ordered by author id
	Archive    []YearGroup     // newest year first
}

// Tag returns the entry for key, or nil.
func (ix *Index) Tag(key string) *Entry {
	return find(ix.Tags, key)
}

// Author returns the entry for the author id, or nil.
func (ix *Index) Author(id string) *Entry {
	return find(ix.Authors, id)
}

func find(entries []*Entry, key string) *Entry {
	i, ok := slices.BinarySearchFunc(entries, key, func(e *Entry, k string) int {
		return strings.Compare(e.Key, k)
	})
	if !ok {
		return nil
	}
	return entries[i]
}

// ComparePosts orders posts newest first with slug as the tie-breaker.
func ComparePosts(a, b *content.Item) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

// Build computes the index from scratch. Non-blog items are ignored. Posts
// are numbered by their position in the chronology and every entry keeps a
// bitmap of those ordinals, so iterating a bitmap yields members already
// sorted and free of duplicates.
func Build(posts []*content.Item) (*Index, error) {
	chron := make([]*content.Item, 0, len(posts))
	seen := make(map[string]*content.Item, len(posts))
	for _, p := range posts {
		if p.Collection != content.CollectionBlog {
			continue
		}
		if prev, dup := seen[p.Slug]; dup {
			return nil, &serrors.DuplicateSlugError{
				Collection: string(content.CollectionBlog),
				Slug:       p.Slug,
				First:      prev.Ref(),
				Second:     p.Ref(),
			}
		}
		seen[p.Slug] = p
		chron = append(chron, p)
	}
	slices.SortStableFunc(chron, ComparePosts)

	tagSets := make(map[string]*roaring.Bitmap)
	authorSets := make(map[string]*roaring.Bitmap)
	authors := make(map[string]*content.Author)
	for i, p := range chron {
		ord := uint32(i)
		for _, tag := range content.NormalizeTags(p.Tags) {
			bitmapFor(tagSets, tag).Add(ord)
		}
		if p.Author != nil {
			bitmapFor(authorSets, p.Author.ID).Add(ord)
			if _, ok := authors[p.Author.ID]; !ok {
				authors[p.Author.ID] = p.Author
			}
		}
	}

	ix := &Index{
		Chronology: chron,
		Tags:       entries(KindTag, tagSets, chron, nil),
		Authors:    entries(KindAuthor, authorSets, chron, authors),
		Archive:    archive(chron),
	}
	slog.Debug("Blog index built",
		logfields.Count(len(chron)),
		slog.Int("tags", len(ix.Tags)),
		slog.Int("authors", len(ix.Authors)))
	return ix, nil
}

func bitmapFor(sets map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	bm, ok := sets[key]
	if !ok {
		bm = roaring.New()
		sets[key] = bm
	}
	return bm
}

func entries(kind Kind, sets map[string]*roaring.Bitmap, chron []*content.Item, authors map[string]*content.Author) []*Entry {
	out := make([]*Entry, 0, len(sets))
	for key, bm := range sets {
		e := &Entry{
			Kind:    kind,
			Key:     key,
			Slug:    segment(kind, key),
			Label:   key,
			Members: make([]*content.Item, 0, bm.GetCardinality()),
		}
		if kind == KindAuthor {
			e.Author = authors[key]
			if e.Author != nil && e.Author.Name != "" {
				e.Label = e.Author.Name
			}
		}
		it := bm.Iterator()
		for it.HasNext() {
			e.Members = append(e.Members, chron[it.Next()])
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entry) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// segment derives the URL segment of an entry. Tags are slugified; author
// ids are used verbatim (escaped) since they are declared identifiers.
func segment(kind Kind, key string) string {
	if kind == KindTag {
		if s := content.Slugify(key); s != "" {
			return s
		}
	}
	return url.PathEscape(key)
}

func archive(chron []*content.Item) []YearGroup {
	var out []YearGroup
	for _, p := range chron {
		y := p.Date.Year()
		if n := len(out); n == 0 || out[n-1].Year != y {
			out = append(out, YearGroup{Year: y})
		}
		last := &out[len(out)-1]
		last.Posts = append(last.Posts, p)
	}
	return out
}
