package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	"git.home.luguber.info/inful/siteroutes/internal/index"
	"git.home.luguber.info/inful/siteroutes/internal/routes"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
	"git.home.luguber.info/inful/siteroutes/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle(t *testing.T) Bundle {
	t.Helper()
	items := []*content.Item{
		{Collection: content.CollectionDocs, Slug: "intro", Title: "Intro"},
		{Collection: content.CollectionDocs, Slug: "dict", Title: "Dict", CategoryPath: []string{"Python"}},
		{Collection: content.CollectionBlog, Slug: "hello", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Tags: []string{"news"}},
	}
	docs, posts := content.ByCollection(items)
	root, err := tree.Build(docs, tree.Options{})
	require.NoError(t, err)
	ix, err := index.Build(posts)
	require.NoError(t, err)
	proj := sidebar.Project(root, routes.DefaultDocsBasePath)
	table, err := routes.Compile(routes.Input{Docs: root, Blog: ix, Sidebars: proj}, routes.Options{Archive: true})
	require.NoError(t, err)
	return Bundle{BuildID: "build-1", Table: table, Sidebars: proj.Sidebars}
}

func paths(table *routes.Table) map[string]string {
	out := make(map[string]string)
	_ = table.Walk(func(r *routes.Route, _ int) error {
		out[r.Path] = r.ContentHash
		return nil
	})
	return out
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			b := sampleBundle(t)

			m, err := Write(dir, format, b)
			require.NoError(t, err)
			assert.Equal(t, "build-1", m.BuildID)
			assert.Equal(t, b.Table.Len(), m.Routes)
			assert.Equal(t, []string{"docsSidebar"}, m.Sidebars)
			assert.Contains(t, m.Files, "routes"+format.Ext())
			assert.FileExists(t, filepath.Join(dir, ManifestFile))

			loaded, err := Read(dir)
			require.NoError(t, err)
			assert.Equal(t, format, loaded.Manifest.Format)
			assert.Equal(t, paths(b.Table), paths(loaded.Table))

			r, ok := loaded.Table.Lookup("/blog/tags/news")
			require.True(t, ok)
			require.NotNil(t, r.Listing)
			assert.Equal(t, []string{"hello"}, r.Listing.Slugs)

			d, ok := loaded.Table.Lookup("/docs/python/dict")
			require.True(t, ok)
			assert.Equal(t, "docsSidebar", d.SidebarID)

			require.Len(t, loaded.Sidebars.Sidebars, 1)
			assert.Len(t, loaded.Sidebars.Sidebars[0].Items, 2)
		})
	}
}

func TestWrite_IsDeterministicApartFromManifest(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	_, err := Write(a, FormatJSON, sampleBundle(t))
	require.NoError(t, err)
	_, err = Write(b, FormatJSON, sampleBundle(t))
	require.NoError(t, err)

	for _, name := range []string{"routes.json", "sidebars.json"} {
		da, err := os.ReadFile(filepath.Join(a, name))
		require.NoError(t, err)
		db, err := os.ReadFile(filepath.Join(b, name))
		require.NoError(t, err)
		assert.Equal(t, string(da), string(db), name)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, FormatYAML, sampleBundle(t))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"manifest.json", "routes.yaml", "sidebars.yaml"}, names)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(t.TempDir())
	require.ErrorIs(t, err, ErrNoArtifacts)

	dir := t.TempDir()
	_, err = Write(dir, FormatJSON, sampleBundle(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "routes.json"), []byte(`{"routes":[]}`), 0o600))
	_, err = Read(dir)
	require.ErrorIs(t, err, ErrDigestMismatch)
}

func TestFormat_Unsupported(t *testing.T) {
	_, err := Format("xml").marshal(struct{}{})
	require.Error(t, err)
}
