package routes

import (
	"testing"

	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"docs", "/docs"},
		{"/docs/", "/docs"},
		{"//blog//tags/", "/blog/tags"},
		{"/docs/./a/../b", "/docs/b"},
		{"*", "*"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNewTable_RequiresCatchAllLast(t *testing.T) {
	_, err := NewTable(nil)
	require.ErrorIs(t, err, ErrMissingCatchAll)

	_, err = NewTable([]*Route{{Path: CatchAllPath}, {Path: "/a"}})
	require.ErrorIs(t, err, ErrMissingCatchAll)
}

func TestNewTable_RejectsNestedDuplicates(t *testing.T) {
	routes := []*Route{
		{Path: "/docs/a", Component: ComponentDocPage, Slug: "a"},
		{Path: "/docs", Component: ComponentDocsRoot, Children: []*Route{
			{Path: "/docs/a", Component: ComponentDocCategory},
		}},
		{Path: CatchAllPath},
	}
	_, err := NewTable(routes)
	var pc *serrors.PathCollisionError
	require.ErrorAs(t, err, &pc)
	assert.Equal(t, "/docs/a", pc.Path)
	assert.Equal(t, `doc-page "a"`, pc.Existing)
	assert.Equal(t, "doc-category", pc.Incoming)
}

func sampleTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]*Route{
		{Path: "/about", Component: "page", Exact: true},
		{Path: "/blog", Component: ComponentBlogList, Exact: true},
		{Path: "/docs", Component: ComponentDocsRoot, Children: []*Route{
			{Path: "/docs/intro", Component: ComponentDocPage, Exact: true},
			{Path: "/docs/python", Component: ComponentDocCategory, Children: []*Route{
				{Path: "/docs/python/dict", Component: ComponentDocPage, Exact: true},
			}},
			{Path: "/docs/python-extra", Component: ComponentDocCategory},
		}},
		{Path: CatchAllPath, Component: ComponentNotFound},
	})
	require.NoError(t, err)
	return table
}

func chainPaths(rs []*Route) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Path
	}
	return out
}

func TestTable_LookupAndResolve(t *testing.T) {
	table := sampleTable(t)
	assert.Equal(t, 8, table.Len())

	r, ok := table.Lookup("/docs/python/dict/")
	require.True(t, ok)
	assert.Equal(t, ComponentDocPage, r.Component)

	_, ok = table.Lookup("/missing")
	assert.False(t, ok)
	assert.Equal(t, ComponentNotFound, table.Resolve("/missing").Component)
	assert.Equal(t, ComponentBlogList, table.Resolve("blog").Component)
}

func TestTable_Match(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, []string{"/docs", "/docs/python", "/docs/python/dict"}, chainPaths(table.Match("/docs/python/dict")))
	assert.Equal(t, []string{"/docs", "/docs/intro"}, chainPaths(table.Match("/docs/intro")))
	assert.Equal(t, []string{"/docs"}, chainPaths(table.Match("/docs")))
	assert.Equal(t, []string{"/about"}, chainPaths(table.Match("/about")))
	assert.Equal(t, []string{"*"}, chainPaths(table.Match("/docs/python/missing")))
	assert.Equal(t, []string{"*"}, chainPaths(table.Match("/docsx")))
}

func TestTable_PathsSortedAndWalkDepth(t *testing.T) {
	table := sampleTable(t)
	assert.Equal(t, []string{
		"*", "/about", "/blog", "/docs", "/docs/intro", "/docs/python", "/docs/python-extra", "/docs/python/dict",
	}, table.Paths())

	depths := make(map[string]int)
	require.NoError(t, table.Walk(func(r *Route, depth int) error {
		depths[r.Path] = depth
		return nil
	}))
	assert.Equal(t, 0, depths["/docs"])
	assert.Equal(t, 1, depths["/docs/python"])
	assert.Equal(t, 2, depths["/docs/python/dict"])
}
