package routes

import (
	"git.home.luguber.info/inful/siteroutes/internal/content"
	"git.home.luguber.info/inful/siteroutes/internal/index"
	"git.home.luguber.info/inful/siteroutes/internal/paginate"
)

// EntryPages is the paginated listing of one tag or author entry.
type EntryPages struct {
	Entry *index.Entry
	Base  string
	Pages []paginate.Page[*content.Item]
}

// Listings holds every paginated blog listing in emission order.
type Listings struct {
	Blog    []paginate.Page[*content.Item]
	Tags    []EntryPages
	Authors []EntryPages
}

// PageCount returns the number of listing pages across all listings.
func (l *Listings) PageCount() int {
	n := len(l.Blog)
	for _, e := range l.Tags {
		n += len(e.Pages)
	}
	for _, e := range l.Authors {
		n += len(e.Pages)
	}
	return n
}

// BuildListings paginates the chronology and every tag and author entry of ix.
func BuildListings(ix *index.Index, opts Options) (*Listings, error) {
	opts = opts.withDefaults()
	blogBase := Normalize(opts.BlogBasePath)

	blog, err := paginate.Paginate(ix.Chronology, opts.PageSize, blogBase)
	if err != nil {
		return nil, err
	}
	tags, err := entryPages(ix.Tags, TagsPath(blogBase), opts.TagPageSize)
	if err != nil {
		return nil, err
	}
	authors, err := entryPages(ix.Authors, AuthorsPath(blogBase), opts.AuthorPageSize)
	if err != nil {
		return nil, err
	}
	return &Listings{Blog: blog, Tags: tags, Authors: authors}, nil
}

func entryPages(entries []*index.Entry, parent string, size int) ([]EntryPages, error) {
	out := make([]EntryPages, 0, len(entries))
	for _, e := range entries {
		base := parent + "/" + e.Slug
		pages, err := paginate.Paginate(e.Members, size, base)
		if err != nil {
			return nil, err
		}
		out = append(out, EntryPages{Entry: e, Base: base, Pages: pages})
	}
	return out, nil
}

// TagsPath is the tags list page below the blog base path.
func TagsPath(blogBase string) string {
	return Normalize(blogBase + "/tags")
}

// AuthorsPath is the authors list page below the blog base path.
func AuthorsPath(blogBase string) string {
	return Normalize(blogBase + "/authors")
}

// ArchivePath is the archive page below the blog base path.
func ArchivePath(blogBase string) string {
	return Normalize(blogBase + "/archive")
}

// PostPath is the route of one blog post.
func PostPath(blogBase, slug string) string {
	return Normalize(blogBase + "/" + slug)
}
