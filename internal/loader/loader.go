// Package loader reads a content directory into items and the ordering
// options derived from its category files.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"git.home.luguber.info/inful/siteroutes/internal/frontmatter"
	"git.home.luguber.info/inful/siteroutes/internal/logfields"
	"git.home.luguber.info/inful/siteroutes/internal/markdown"
	"git.home.luguber.info/inful/siteroutes/internal/tree"
	mapset "github.com/deckarep/golang-set/v2"
)

// Options locate the collections below a content root.
type Options struct {
	Root          string
	DocsDir       string // relative to Root; "" disables docs
	BlogDir       string // relative to Root; "" disables the blog
	AuthorsFile   string // relative to BlogDir
	HashLength    int
	IncludeDrafts bool
}

// Result is everything read from disk.
type Result struct {
	Items []*content.Item
	// Order holds the category and item order lists from _category_.yml
	// files, keyed like tree.Options.
	Order   tree.Options
	Authors map[string]*content.Author
	Drafts  int
}

var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// Load walks the docs and blog directories. Files and directories whose
// names start with "." or "_" are skipped. Directory entries are visited in
// lexical order so repeated loads see items in the same order.
func Load(opts Options) (*Result, error) {
	res := &Result{
		Order: tree.Options{
			CategoryOrder: make(map[string][]string),
			ItemOrder:     make(map[string][]string),
		},
		Authors: map[string]*content.Author{},
	}
	l := &loader{opts: opts, res: res}

	if opts.DocsDir != "" {
		dir := filepath.Join(opts.Root, opts.DocsDir)
		if ok, err := isDir(dir); err != nil {
			return nil, err
		} else if ok {
			meta, err := readCategory(dir)
			if err != nil {
				return nil, err
			}
			if err := l.walkDocs(dir, nil, meta); err != nil {
				return nil, err
			}
		} else {
			slog.Debug("Docs directory not found", logfields.Path(dir))
		}
	}

	if opts.BlogDir != "" {
		dir := filepath.Join(opts.Root, opts.BlogDir)
		if ok, err := isDir(dir); err != nil {
			return nil, err
		} else if ok {
			if opts.AuthorsFile != "" {
				authors, err := readAuthors(filepath.Join(dir, opts.AuthorsFile))
				if err != nil {
					return nil, err
				}
				res.Authors = authors
			}
			if err := l.walkBlog(dir); err != nil {
				return nil, err
			}
		} else {
			slog.Debug("Blog directory not found", logfields.Path(dir))
		}
	}

	docs, posts := content.ByCollection(res.Items)
	slog.Info("Content loaded",
		logfields.Path(opts.Root),
		slog.Int("docs", len(docs)),
		slog.Int("posts", len(posts)),
		slog.Int("drafts_skipped", res.Drafts))
	return res, nil
}

type loader struct {
	opts Options
	res  *Result
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
	return info.IsDir(), nil
}

func skipped(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// walkDocs loads dir as the category addressed by catPath. meta is dir's own
// category file.
func (l *loader) walkDocs(dir string, catPath []string, meta categoryMeta) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadFailed, dir, err)
	}

	labels := make(map[string]string) // dir name or label -> label
	dirByName := make(map[string]string)
	type sub struct {
		dir  string
		name string
		meta categoryMeta
	}
	var subs []sub
	for _, e := range entries {
		if skipped(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			m, err := readCategory(path)
			if err != nil {
				return err
			}
			name := m.Label
			if name == "" {
				name = content.Label(e.Name())
			}
			// Distinct directories must not collapse into one category.
			if prev, dup := dirByName[name]; dup {
				return &serrors.OrphanCategoryError{
					Parent:   slices.Clone(catPath),
					Name:     e.Name(),
					Existing: prev,
				}
			}
			dirByName[name] = e.Name()
			labels[e.Name()] = name
			labels[name] = name
			subs = append(subs, sub{dir: path, name: name, meta: m})
			continue
		}
		if !isMarkdown(e.Name()) {
			continue
		}
		if err := l.loadDoc(path, e.Name(), catPath); err != nil {
			return err
		}
	}

	key := content.JoinPath(catPath)
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, entry := range meta.Order {
		if !seen.Add(entry) {
			continue
		}
		if name, ok := labels[entry]; ok {
			l.res.Order.CategoryOrder[key] = append(l.res.Order.CategoryOrder[key], name)
			continue
		}
		l.res.Order.ItemOrder[key] = append(l.res.Order.ItemOrder[key], entry)
	}

	for _, s := range subs {
		if err := l.walkDocs(s.dir, append(slices.Clone(catPath), s.name), s.meta); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadDoc(path, name string, catPath []string) error {
	src, err := l.read(path)
	if err != nil {
		return err
	}
	slug := src.fields.Slug
	if slug == "" {
		slug = slugFromStem(stem(name))
	}
	l.res.Items = append(l.res.Items, &content.Item{
		Collection:   content.CollectionDocs,
		Slug:         slug,
		Title:        src.title(stem(name)),
		CategoryPath: slices.Clone(catPath),
		ContentHash:  src.hash,
		SourcePath:   l.rel(path),
	})
	return nil
}

// walkBlog loads every post below dir. A post is either a Markdown file or a
// directory holding index.md, named "YYYY-MM-DD-slug" when the date is not
// given in frontmatter.
func (l *loader) walkBlog(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
		}
		if path == dir {
			return nil
		}
		if skipped(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}
		name := stem(d.Name())
		if strings.EqualFold(name, "index") && filepath.Dir(path) != dir {
			name = filepath.Base(filepath.Dir(path))
		}
		return l.loadPost(path, name)
	})
}

func (l *loader) loadPost(path, name string) error {
	src, err := l.read(path)
	if err != nil {
		return err
	}
	if src.fields.Draft && !l.opts.IncludeDrafts {
		l.res.Drafts++
		slog.Debug("Skipping draft", logfields.File(l.rel(path)))
		return nil
	}

	var date time.Time
	rest := name
	if m := datePrefix.FindStringSubmatch(name); m != nil {
		if d, err := time.Parse(time.DateOnly, m[1]); err == nil {
			date = d
			rest = m[2]
		}
	}
	if src.fields.Date != nil {
		date = src.fields.Date.UTC()
	}

	slug := src.fields.Slug
	if slug == "" {
		slug = slugFromStem(rest)
	}

	it := &content.Item{
		Collection:  content.CollectionBlog,
		Slug:        slug,
		Title:       src.title(rest),
		Date:        date,
		Tags:        content.NormalizeTags(src.fields.Tags),
		ContentHash: src.hash,
		SourcePath:  l.rel(path),
	}
	if ids := src.fields.AuthorIDs(); len(ids) > 0 {
		it.Author = l.author(ids[0], it)
		if len(ids) > 1 {
			slog.Debug("Post lists several authors; indexing the first",
				logfields.File(it.SourcePath), logfields.Author(ids[0]))
		}
	}
	l.res.Items = append(l.res.Items, it)
	return nil
}

// author resolves id against the authors file. Undeclared ids are kept as
// bare authors so the post still joins an author listing.
func (l *loader) author(id string, it *content.Item) *content.Author {
	if a, ok := l.res.Authors[id]; ok {
		return a
	}
	slog.Warn("Post references undeclared author", logfields.File(it.SourcePath), logfields.Author(id))
	a := &content.Author{ID: id, Name: id}
	l.res.Authors[id] = a
	return a
}

func slugFromStem(s string) string {
	if slug := content.Slugify(s); slug != "" {
		return slug
	}
	return s
}

func (l *loader) rel(path string) string {
	if r, err := filepath.Rel(l.opts.Root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

type source struct {
	fields frontmatter.Fields
	body   []byte
	hash   string
}

func (s *source) title(fallback string) string {
	if s.fields.Title != "" {
		return s.fields.Title
	}
	if h := markdown.FirstHeading(s.body); h != "" {
		return h
	}
	return content.Label(fallback)
}

func (l *loader) read(path string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
	fm, body, _, err := frontmatter.Split(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	fields, err := frontmatter.Decode(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	raw, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	canonical, err := frontmatter.Canonical(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	return &source{
		fields: fields,
		body:   body,
		hash:   content.Fingerprint(string(canonical), string(body), l.opts.HashLength),
	}, nil
}
