package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, data string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func defaultOptions(root string) Options {
	return Options{Root: root, DocsDir: "docs", BlogDir: "blog", AuthorsFile: "authors.yml"}
}

func bySlug(items []*content.Item) map[string]*content.Item {
	out := make(map[string]*content.Item, len(items))
	for _, it := range items {
		out[it.Slug] = it
	}
	return out
}

func TestLoad_Docs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/intro.md", "---\ntitle: Welcome\n---\nHello\n")
	writeFile(t, root, "docs/python-docs/_category_.yml", "label: Python\norder: [user-guide, language_reference, setup]\n")
	writeFile(t, root, "docs/python-docs/setup.md", "# Installing Python\n")
	writeFile(t, root, "docs/python-docs/language_reference/dict.md", "---\nslug: dictionaries\n---\n")
	writeFile(t, root, "docs/python-docs/user-guide/_category_.yml", "label: Guide\n")
	writeFile(t, root, "docs/python-docs/user-guide/Getting Started.md", "text\n")
	writeFile(t, root, "docs/_drafts/skip.md", "# skipped\n")
	writeFile(t, root, "docs/.hidden.md", "# skipped\n")
	writeFile(t, root, "docs/image.png", "png")

	res, err := Load(defaultOptions(root))
	require.NoError(t, err)

	items := bySlug(res.Items)
	require.Len(t, items, 4)

	assert.Equal(t, "Welcome", items["intro"].Title)
	assert.Empty(t, items["intro"].CategoryPath)
	assert.Equal(t, "docs/intro.md", items["intro"].SourcePath)
	assert.Len(t, items["intro"].ContentHash, content.DefaultHashLength)

	assert.Equal(t, "Installing Python", items["setup"].Title)
	assert.Equal(t, []string{"Python"}, items["setup"].CategoryPath)

	dict := items["dictionaries"]
	require.NotNil(t, dict)
	assert.Equal(t, []string{"Python", "Language Reference"}, dict.CategoryPath)
	assert.Equal(t, "Dict", dict.Title)

	gs := items["getting-started"]
	require.NotNil(t, gs)
	assert.Equal(t, []string{"Python", "Guide"}, gs.CategoryPath)

	assert.Equal(t, []string{"Guide", "Language Reference"}, res.Order.CategoryOrder["Python"])
	assert.Equal(t, []string{"setup"}, res.Order.ItemOrder["Python"])
}

func TestLoad_Blog(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/authors.yml", "wolf:\n  name: Aaron Wolf\n  title: Maintainer\n  image_url: https://example.com/wolf.png\n")
	writeFile(t, root, "blog/2021-08-26-welcome/index.md", "---\nauthors: [wolf]\ntags: [hello, docusaurus, hello]\n---\n# Welcome\n")
	writeFile(t, root, "blog/2019-05-28-first-blog-post.md", "---\ntitle: First Post\nauthors: stranger\n---\n")
	writeFile(t, root, "blog/undated.md", "---\ndate: 2020-01-02\nslug: custom\n---\n")
	writeFile(t, root, "blog/wip.md", "---\ndraft: true\ndate: 2020-01-02\n---\n")

	res, err := Load(defaultOptions(root))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Drafts)

	items := bySlug(res.Items)
	require.Len(t, items, 3)

	welcome := items["welcome"]
	require.NotNil(t, welcome)
	assert.Equal(t, "Welcome", welcome.Title)
	assert.True(t, welcome.Date.Equal(time.Date(2021, 8, 26, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"hello", "docusaurus"}, welcome.Tags)
	require.NotNil(t, welcome.Author)
	assert.Equal(t, "Aaron Wolf", welcome.Author.Name)
	assert.Equal(t, "https://example.com/wolf.png", welcome.Author.ImageURL)

	first := items["first-blog-post"]
	require.NotNil(t, first)
	assert.Equal(t, "First Post", first.Title)
	assert.Equal(t, 2019, first.Date.Year())
	require.NotNil(t, first.Author)
	assert.Equal(t, "stranger", first.Author.ID)
	assert.Contains(t, res.Authors, "stranger")

	custom := items["custom"]
	require.NotNil(t, custom)
	assert.True(t, custom.Date.Equal(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, custom.Author)
}

func TestLoad_IncludeDrafts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/2020-01-02-wip.md", "---\ndraft: true\n---\n")

	opts := defaultOptions(root)
	opts.IncludeDrafts = true
	res, err := Load(opts)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 0, res.Drafts)
}

func TestLoad_MissingDirectoriesYieldNothing(t *testing.T) {
	res, err := Load(defaultOptions(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Authors)
}

func TestLoad_HashIgnoresFrontmatterKeyOrder(t *testing.T) {
	a := t.TempDir()
	writeFile(t, a, "docs/x.md", "---\ntitle: X\ntags: [a]\n---\nbody\n")
	b := t.TempDir()
	writeFile(t, b, "docs/x.md", "---\ntags:\n  - a\ntitle: X\n---\nbody\n")
	c := t.TempDir()
	writeFile(t, c, "docs/x.md", "---\ntitle: X\ntags: [a]\n---\nother body\n")

	ra, err := Load(defaultOptions(a))
	require.NoError(t, err)
	rb, err := Load(defaultOptions(b))
	require.NoError(t, err)
	rc, err := Load(defaultOptions(c))
	require.NoError(t, err)

	assert.Equal(t, ra.Items[0].ContentHash, rb.Items[0].ContentHash)
	assert.NotEqual(t, ra.Items[0].ContentHash, rc.Items[0].ContentHash)
}

func TestLoad_ParseErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/bad.md", "---\ntitle: x\n")
	_, err := Load(defaultOptions(root))
	require.ErrorIs(t, err, ErrParseFailed)

	root = t.TempDir()
	writeFile(t, root, "docs/a/_category_.yml", "label: [unclosed\n")
	_, err = Load(defaultOptions(root))
	require.ErrorIs(t, err, ErrParseFailed)

	root = t.TempDir()
	writeFile(t, root, "blog/authors.yml", "- not a map\n")
	_, err = Load(defaultOptions(root))
	require.ErrorIs(t, err, ErrParseFailed)
}

func TestLoad_SiblingDirectoriesWithSameCategoryName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/object-oriented/a.md", "# A\n")
	writeFile(t, root, "docs/object_oriented/b.md", "# B\n")

	_, err := Load(defaultOptions(root))
	require.ErrorIs(t, err, serrors.ErrOrphanCategory)

	var orphan *serrors.OrphanCategoryError
	require.ErrorAs(t, err, &orphan)
	assert.Equal(t, "object_oriented", orphan.Name)
	assert.Equal(t, "object-oriented", orphan.Existing)
	assert.Empty(t, orphan.Parent)

	// A label from _category_.yml collides the same way.
	root = t.TempDir()
	writeFile(t, root, "docs/guide/a.md", "# A\n")
	writeFile(t, root, "docs/tutorial/_category_.yml", "label: Guide\n")
	writeFile(t, root, "docs/tutorial/b.md", "# B\n")

	_, err = Load(defaultOptions(root))
	require.ErrorIs(t, err, serrors.ErrOrphanCategory)
}
