package content

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Python Documentation", "python-documentation"},
		{"Types, Variables & Conditionals", "types-variables-conditionals"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Crème Brûlée", "creme-brulee"},
		{"already-a-slug", "already-a-slug"},
		{"page", "page"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("Python"), FoldKey("python"))
	assert.Equal(t, FoldKey("Object  Oriented"), FoldKey("object oriented"))
	assert.NotEqual(t, FoldKey("Python"), FoldKey("Pythons"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Object Oriented Programming", Label("object_oriented-programming"))
	assert.Equal(t, "Functions", Label("functions"))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"python", "linux"}, NormalizeTags([]string{" python", "linux", "python", ""}))
	assert.Nil(t, NormalizeTags(nil))
}

func TestShortHash(t *testing.T) {
	a := ShortHash([]byte("intro\nsetup\n"), 8)
	b := ShortHash([]byte("intro\nsetup\n"), 8)
	c := ShortHash([]byte("setup\nintro\n"), 8)

	assert.Len(t, a, 8)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, ShortHash([]byte("x"), 0), DefaultHashLength)
	assert.Len(t, ShortHash([]byte("x"), 100), 64)
}

func TestFingerprint_StableForUnchangedContent(t *testing.T) {
	first := Fingerprint("title: Intro\n", "# Intro\n\nHello\n", 8)
	second := Fingerprint("title: Intro\n", "# Intro\n\nHello\n", 8)
	changed := Fingerprint("title: Intro\n", "# Intro\n\nHello, world\n", 8)

	assert.Len(t, first, 8)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, changed)
}

func TestValidate(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ok := []*Item{
		{Collection: CollectionDocs, Slug: "intro", CategoryPath: []string{"Python"}},
		{Collection: CollectionBlog, Slug: "hello", Date: date, Author: &Author{ID: "wolf"}},
	}
	require.NoError(t, Validate(ok))

	cases := map[string]*Item{
		"empty slug":         {Collection: CollectionDocs, Slug: " "},
		"slash in slug":      {Collection: CollectionDocs, Slug: "a/b"},
		"dot slug":           {Collection: CollectionDocs, Slug: "."},
		"dot-dot slug":       {Collection: CollectionDocs, Slug: ".."},
		"nil item":           nil,
		"empty segment":      {Collection: CollectionDocs, Slug: "x", CategoryPath: []string{"Python", ""}},
		"post without date":  {Collection: CollectionBlog, Slug: "y"},
		"author without id":  {Collection: CollectionBlog, Slug: "z", Date: date, Author: &Author{Name: "Anon"}},
		"unknown collection": {Collection: "wiki", Slug: "w"},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate([]*Item{item})
			var invalid *InvalidItemError
			require.True(t, errors.As(err, &invalid))
		})
	}
}

func TestByCollection(t *testing.T) {
	d := &Item{Collection: CollectionDocs, Slug: "a"}
	p := &Item{Collection: CollectionBlog, Slug: "b"}
	docs, posts := ByCollection([]*Item{p, d})
	assert.Equal(t, []*Item{d}, docs)
	assert.Equal(t, []*Item{p}, posts)
}
