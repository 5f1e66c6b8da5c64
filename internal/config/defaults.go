package config

const (
	defaultDocsBasePath  = "/docs"
	defaultBlogBasePath  = "/blog"
	defaultSidebar       = "docsSidebar"
	defaultPageSize      = 10
	defaultHashLength    = 8
	defaultOutputDir     = "build"
	defaultAuthorsFile   = "authors.yml"
	defaultPageComponent = "page"
)

// applyDefaults fills every unset field. It runs after normalization so
// canonical values drive the defaults.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = Version
	}

	if c.Content.Root == "" {
		c.Content.Root = "."
	}
	if c.Content.DocsDir == "" {
		c.Content.DocsDir = "docs"
	}
	if c.Content.BlogDir == "" {
		c.Content.BlogDir = "blog"
	}
	if c.Content.AuthorsFile == "" {
		c.Content.AuthorsFile = defaultAuthorsFile
	}

	if c.Docs.BasePath == "" {
		c.Docs.BasePath = defaultDocsBasePath
	}
	if c.Docs.DefaultSidebar == "" {
		c.Docs.DefaultSidebar = defaultSidebar
	}

	if c.Blog.BasePath == "" {
		c.Blog.BasePath = defaultBlogBasePath
	}
	if c.Blog.PageSize == 0 {
		c.Blog.PageSize = defaultPageSize
	}
	if c.Blog.TagPageSize == 0 {
		c.Blog.TagPageSize = c.Blog.PageSize
	}
	if c.Blog.AuthorPageSize == 0 {
		c.Blog.AuthorPageSize = c.Blog.PageSize
	}

	for i := range c.Pages {
		if c.Pages[i].Component == "" {
			c.Pages[i].Component = defaultPageComponent
		}
	}

	if c.Routes.HashLength == 0 {
		c.Routes.HashLength = defaultHashLength
	}

	if c.Output.Directory == "" {
		c.Output.Directory = defaultOutputDir
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}

	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
