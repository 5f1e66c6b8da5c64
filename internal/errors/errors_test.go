package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestSiteError_WithContext(t *testing.T) {
	err := New(CategoryCompile, SeverityFatal, "compile failed").
		WithContext("stage", "routes").
		WithContext("path", "/blog/tags")

	require.NotNil(t, err.Context)
	assert.Equal(t, "routes", err.Context["stage"])
	assert.Equal(t, "/blog/tags", err.Context["path"])
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	wrapped := fmt.Errorf("outer: %w", CompileFailed("tree", stdErrors.New("boom")))

	assert.True(t, IsCategory(configErr, CategoryConfig))
	assert.False(t, IsCategory(configErr, CategoryCompile))
	assert.True(t, IsCategory(wrapped, CategoryCompile))
	assert.False(t, IsCategory(fmt.Errorf("standard error"), CategoryConfig))
}

func TestGetCategory(t *testing.T) {
	assert.Equal(t, CategoryStore, GetCategory(StoreFailed("open", stdErrors.New("locked"))))
	assert.Equal(t, CategoryInternal, GetCategory(stdErrors.New("plain")))
}

func TestCompileFailed_KeepsDomainErrorReachable(t *testing.T) {
	cause := &DuplicateSlugError{Collection: "docs", Slug: "intro", First: "a.md", Second: "b.md"}
	err := CompileFailed("tree", cause)

	var dup *DuplicateSlugError
	require.True(t, stdErrors.As(err, &dup))
	assert.Equal(t, "intro", dup.Slug)
	assert.True(t, stdErrors.Is(err, ErrDuplicateSlug))
	assert.False(t, stdErrors.Is(err, ErrPathCollision))
}

func TestDomainErrors_Messages(t *testing.T) {
	collision := &PathCollisionError{Path: "/blog/tags", Existing: "tag list", Incoming: "blog post \"tags\""}
	assert.Contains(t, collision.Error(), "/blog/tags")
	assert.True(t, stdErrors.Is(collision, ErrPathCollision))

	orphan := &OrphanCategoryError{Parent: []string{"Coding"}, Name: "python", Existing: "Python"}
	assert.Contains(t, orphan.Error(), `"python"`)
	assert.Contains(t, orphan.Error(), `"Coding"`)
	assert.True(t, stdErrors.Is(orphan, ErrOrphanCategory))

	rootOrphan := &OrphanCategoryError{Name: "Docs ", Existing: "Docs"}
	assert.Contains(t, rootOrphan.Error(), `under "/"`)
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 7, a.ExitCodeFor(ConfigNotFound("config.yaml")))
	assert.Equal(t, 2, a.ExitCodeFor(ValidationFailed("blog.page_size", "must be >= 1")))
	assert.Equal(t, 9, a.ExitCodeFor(ContentLoadFailed("content", stdErrors.New("x"))))
	assert.Equal(t, 11, a.ExitCodeFor(CompileFailed("routes", stdErrors.New("x"))))
	assert.Equal(t, 10, a.ExitCodeFor(InternalError("bug", nil)))
	assert.Equal(t, 1, a.ExitCodeFor(stdErrors.New("plain")))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	compileErr := CompileFailed("routes", &PathCollisionError{Path: "/blog/archive", Existing: "archive", Incoming: "post"})
	assert.Contains(t, quiet.FormatError(compileErr), "/blog/archive")
	assert.Equal(t, "configuration file not found", quiet.FormatError(ConfigNotFound("x.yaml")))
	assert.Equal(t, compileErr.Error(), verbose.FormatError(compileErr))
	assert.Equal(t, "Error: plain", quiet.FormatError(stdErrors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}
