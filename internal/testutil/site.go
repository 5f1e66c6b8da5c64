// Package testutil builds content fixtures and asserts on written files.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Site is a content directory under a test temp dir.
type Site struct {
	t    *testing.T
	Root string
}

// NewSite creates an empty content root.
func NewSite(t *testing.T) *Site {
	t.Helper()
	return &Site{t: t, Root: t.TempDir()}
}

// File writes data at rel below the root, creating parent directories.
func (s *Site) File(rel, data string) *Site {
	s.t.Helper()
	WriteFile(s.t, filepath.Join(s.Root, filepath.FromSlash(rel)), data)
	return s
}

// Doc writes a page below docs/.
func (s *Site) Doc(rel, data string) *Site {
	s.t.Helper()
	return s.File("docs/"+rel, data)
}

// Post writes a post below blog/.
func (s *Site) Post(rel, data string) *Site {
	s.t.Helper()
	return s.File("blog/"+rel, data)
}

// Sample writes a small site: three docs across two categories, an authors
// file and one tagged post.
func Sample(t *testing.T) *Site {
	t.Helper()
	return NewSite(t).
		Doc("intro.md", "# Introduction\n").
		Doc("python/setup.md", "---\ntitle: Setup\n---\n").
		Doc("javascript/closures.md", "# Closures\n").
		Post("authors.yml", "wolf:\n  name: Aaron Wolf\n").
		Post("2024-05-01-hello.md", "---\nauthors: wolf\ntags: [python]\n---\nhi\n")
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

// FileAssertions checks file system state below a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// Exists fails the test when rel does not exist.
func (fa *FileAssertions) Exists(rel string) *FileAssertions {
	fa.t.Helper()
	full := filepath.Join(fa.baseDir, rel)
	if _, err := os.Stat(full); err != nil {
		fa.t.Errorf("Expected file to exist: %s (%v)", full, err)
	}
	return fa
}

// Missing fails the test when rel exists.
func (fa *FileAssertions) Missing(rel string) *FileAssertions {
	fa.t.Helper()
	full := filepath.Join(fa.baseDir, rel)
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		fa.t.Errorf("Expected file to be absent: %s", full)
	}
	return fa
}

// Contains fails the test when rel does not contain want.
func (fa *FileAssertions) Contains(rel, want string) *FileAssertions {
	fa.t.Helper()
	full := filepath.Join(fa.baseDir, rel)
	data, err := os.ReadFile(full) // #nosec G304 -- test helper, paths are controlled by test code
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", full, err)
		return fa
	}
	if !strings.Contains(string(data), want) {
		fa.t.Errorf("Expected %s to contain %q\nActual content:\n%s", rel, want, data)
	}
	return fa
}
