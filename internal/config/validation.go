package config

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ValidateConfig checks a defaulted configuration. All problems are reported
// together.
func ValidateConfig(c *Config) error {
	var errs []error

	if c.Docs.BasePath == c.Blog.BasePath {
		errs = append(errs, fmt.Errorf("docs.base_path and blog.base_path must differ (both %q)", c.Docs.BasePath))
	}
	for name, id := range c.Docs.Sidebars {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("docs.sidebars[%q]: sidebar id must not be empty", name))
		}
	}

	sizes := []struct {
		field string
		value int
	}{
		{"blog.page_size", c.Blog.PageSize},
		{"blog.tag_page_size", c.Blog.TagPageSize},
		{"blog.author_page_size", c.Blog.AuthorPageSize},
	}
	for _, s := range sizes {
		if s.value < 1 {
			errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", s.field, s.value))
		}
	}

	if c.Routes.HashLength < 4 || c.Routes.HashLength > 64 {
		errs = append(errs, fmt.Errorf("routes.hash_length must be between 4 and 64, got %d", c.Routes.HashLength))
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	for i, p := range c.Pages {
		switch {
		case p.Path == "":
			errs = append(errs, fmt.Errorf("pages[%d]: path is required", i))
		case !strings.HasPrefix(p.Path, "/"):
			errs = append(errs, fmt.Errorf("pages[%d]: path %q must start with /", i, p.Path))
		case !seen.Add(p.Path):
			errs = append(errs, fmt.Errorf("pages[%d]: duplicate path %q", i, p.Path))
		}
	}

	if _, err := artifactFormatNormalizer.parse("output.format", string(c.Output.Format)); err != nil {
		errs = append(errs, err)
	}
	if c.Content.DocsDir == c.Content.BlogDir {
		errs = append(errs, fmt.Errorf("content.docs_dir and content.blog_dir must differ (both %q)", c.Content.DocsDir))
	}
	return errors.Join(errs...)
}
