package config

import (
	"os"
	"path/filepath"
	"testing"

	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "siteroutes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, Version, cfg.Version)
	assert.Equal(t, "/docs", cfg.Docs.BasePath)
	assert.Equal(t, "docsSidebar", cfg.Docs.DefaultSidebar)
	assert.Equal(t, "/blog", cfg.Blog.BasePath)
	assert.Equal(t, 10, cfg.Blog.PageSize)
	assert.Equal(t, 10, cfg.Blog.TagPageSize)
	assert.Equal(t, 10, cfg.Blog.AuthorPageSize)
	assert.True(t, cfg.Blog.ArchiveEnabled())
	assert.Equal(t, 8, cfg.Routes.HashLength)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, "authors.yml", cfg.Content.AuthorsFile)
}

func TestParse_NormalizesEnumerationsAndPaths(t *testing.T) {
	cfg, err := Parse([]byte(`
docs:
  base_path: "guide/"
blog:
  base_path: /news/
  page_size: 5
  archive: false
pages:
  - path: " /about "
output:
  format: YML
logging:
  level: DEBUG
  format: loud
`))
	require.NoError(t, err)

	assert.Equal(t, "/guide", cfg.Docs.BasePath)
	assert.Equal(t, "/news", cfg.Blog.BasePath)
	assert.Equal(t, 5, cfg.Blog.TagPageSize)
	assert.False(t, cfg.Blog.ArchiveEnabled())
	assert.Equal(t, "/about", cfg.Pages[0].Path)
	assert.Equal(t, "page", cfg.Pages[0].Component)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative page size", "blog: {page_size: -1}", "blog.page_size"},
		{"hash too short", "routes: {hash_length: 2}", "routes.hash_length"},
		{"same base paths", "docs: {base_path: /x}\nblog: {base_path: /x}", "must differ"},
		{"relative page", "pages: [{path: about}]", "must start with /"},
		{"duplicate page", "pages: [{path: /a}, {path: /a}]", "duplicate path"},
		{"bad format", "output: {format: xml}", "output.format"},
		{"empty sidebar id", "docs: {sidebars: {Python: ' '}}", "sidebar id"},
		{"version", "version: '9'", "unsupported configuration version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ExpandsEnvFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEROUTES_TEST_PAGE_SIZE=3\n"), 0o600))
	t.Setenv("SITEROUTES_TEST_OUT", "out")
	path := writeConfig(t, dir, "blog:\n  page_size: ${SITEROUTES_TEST_PAGE_SIZE}\noutput:\n  directory: ${SITEROUTES_TEST_OUT}\n")
	t.Cleanup(func() { _ = os.Unsetenv("SITEROUTES_TEST_PAGE_SIZE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Blog.PageSize)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Output.Directory)
	assert.Equal(t, dir, cfg.Content.Root)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEROUTES_TEST_HASH=12\n"), 0o600))
	t.Setenv("SITEROUTES_TEST_HASH", "16")
	path := writeConfig(t, dir, "routes:\n  hash_length: ${SITEROUTES_TEST_HASH}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Routes.HashLength)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryConfig))

	path := writeConfig(t, t.TempDir(), "blog: [not, a, map]\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryConfig))
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "siteroutes.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Pages, 3)
	assert.Equal(t, "pythonSidebar", cfg.Docs.Sidebars["Python"])

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}

func TestLogLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
	assert.Equal(t, "INFO", LogLevel("").SlogLevel().String())
	assert.Equal(t, "ERROR", LogLevelError.SlogLevel().String())
}
