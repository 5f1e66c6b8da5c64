// Package config loads the siteroutes YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	serrors "git.home.luguber.info/inful/siteroutes/internal/errors"
	"gopkg.in/yaml.v3"
)

// Version is the configuration format this build understands.
const Version = "1"

// Config is the complete siteroutes configuration.
type Config struct {
	Version string        `yaml:"version"`
	Content ContentConfig `yaml:"content"`
	Docs    DocsConfig    `yaml:"docs"`
	Blog    BlogConfig    `yaml:"blog"`
	Pages   []PageConfig  `yaml:"pages,omitempty"`
	Routes  RoutesConfig  `yaml:"routes"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig locates the content collections. Relative paths are resolved
// against the directory holding the configuration file.
type ContentConfig struct {
	Root          string `yaml:"root"`
	DocsDir       string `yaml:"docs_dir"`
	BlogDir       string `yaml:"blog_dir"`
	AuthorsFile   string `yaml:"authors_file"` // relative to blog_dir
	IncludeDrafts bool   `yaml:"include_drafts,omitempty"`
}

// DocsConfig shapes the docs route tree and its sidebars.
type DocsConfig struct {
	BasePath       string `yaml:"base_path"`
	DefaultSidebar string `yaml:"default_sidebar"`
	// Sidebars binds top-level category names to sidebar ids.
	Sidebars map[string]string `yaml:"sidebars,omitempty"`
	// CategoryOrder and ItemOrder are keyed by the "/"-joined parent
	// category path; "" addresses the root. They extend _category_.yml lists.
	CategoryOrder map[string][]string `yaml:"category_order,omitempty"`
	ItemOrder     map[string][]string `yaml:"item_order,omitempty"`
}

// BlogConfig shapes the blog listings.
type BlogConfig struct {
	BasePath       string `yaml:"base_path"`
	PageSize       int    `yaml:"page_size"`
	TagPageSize    int    `yaml:"tag_page_size,omitempty"`
	AuthorPageSize int    `yaml:"author_page_size,omitempty"`
	Archive        *bool  `yaml:"archive,omitempty"`
}

// ArchiveEnabled reports whether the archive page is emitted (default true).
func (b BlogConfig) ArchiveEnabled() bool {
	return b.Archive == nil || *b.Archive
}

// PageConfig declares a standalone route.
type PageConfig struct {
	Path      string `yaml:"path"`
	Component string `yaml:"component"`
}

// RoutesConfig controls route hashing.
type RoutesConfig struct {
	HashLength int `yaml:"hash_length"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: Version}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, normalizes, defaults and validates a configuration
// file. ${VAR} references are expanded after .env files next to the
// configuration have been loaded.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if loaded, err := loadEnvFiles(dir); err != nil {
		slog.Warn("Failed to load environment file", slog.String("error", err.Error()))
	} else if len(loaded) > 0 {
		slog.Debug("Loaded environment files", slog.Any("files", loaded))
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, serrors.ConfigNotFound(path)
	}
	if err != nil {
		return nil, serrors.ConfigInvalid(path, err)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, serrors.ConfigInvalid(path, err)
	}
	cfg.resolvePaths(dir)
	return cfg, nil
}

// Parse decodes configuration YAML (already expanded) and runs the
// normalize, default and validate passes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version != "" && cfg.Version != Version {
		return nil, fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, Version)
	}
	for _, w := range NormalizeConfig(&cfg).Warnings {
		slog.Warn("Config normalization", slog.String("detail", w))
	}
	applyDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Content.Root = resolve(c.Content.Root)
	c.Output.Directory = resolve(c.Output.Directory)
	c.Output.SQLite = resolve(c.Output.SQLite)
	c.Output.MetricsFile = resolve(c.Output.MetricsFile)
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	archive := true
	example := Config{
		Version: Version,
		Content: ContentConfig{
			Root:        ".",
			DocsDir:     "docs",
			BlogDir:     "blog",
			AuthorsFile: "authors.yml",
		},
		Docs: DocsConfig{
			BasePath:       "/docs",
			DefaultSidebar: "docsSidebar",
			Sidebars:       map[string]string{"Python": "pythonSidebar"},
			CategoryOrder:  map[string][]string{"": {"Python", "JavaScript"}},
		},
		Blog: BlogConfig{
			BasePath: "/blog",
			PageSize: 10,
			Archive:  &archive,
		},
		Pages: []PageConfig{
			{Path: "/about", Component: "page-about"},
			{Path: "/contact", Component: "page-contact"},
			{Path: "/home", Component: "page-home"},
		},
		Routes: RoutesConfig{HashLength: 8},
		Output: OutputConfig{
			Directory:   "./build",
			Format:      FormatJSON,
			SQLite:      "${SITEROUTES_SQLITE}",
			MetricsFile: "",
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
