package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/siteroutes/internal/config"
	"github.com/alecthomas/kong"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "siteroutes.yaml"

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; nil means stdout.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"siteroutes.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Compile CompileCmd `cmd:"" help:"Compile content into route and sidebar artifacts"`
	Resolve ResolveCmd `cmd:"" help:"Resolve a path against compiled artifacts"`
	Sidebar SidebarCmd `cmd:"" help:"Print compiled sidebars"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; it installs a text logger on stderr
// until a configuration selects level and format.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, config.LogFormatText))
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// configureLogging applies the configured level and format. --verbose keeps
// debug logging regardless of the configured level.
func configureLogging(cfg *config.Config, verbose bool) {
	level := cfg.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, cfg.Logging.Format))
}

// loadConfig reads the configuration file. A missing file at the default path
// falls back to defaults so a bare content directory compiles.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath {
		slog.Debug("No configuration file, using defaults", slog.String("path", path))
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
