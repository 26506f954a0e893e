package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

// Global carries the output streams and logger shared by every command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI is the whole command line: one SOURCE, an optional TARGET and flags.
// There are no subcommands, so no directory name is ever read as one.
type CLI struct {
	Source string `arg:"" name:"source" help:"Site source directory" type:"path"`
	Target string `arg:"" name:"target" optional:"" help:"Output directory (default: SOURCE/build)" type:"path"`

	List        bool             `short:"l" help:"List the documents a build would publish without writing anything"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format (text or json)" placeholder:"FORMAT"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics for the build to this file" type:"path" placeholder:"PATH"`
	Manifest    string           `help:"Write a YAML build manifest to this file (outside the output directory)" type:"path" placeholder:"PATH"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// Run builds the site, or lists what would be built when --list is set.
func (c *CLI) Run(g *Global) error {
	if c.List {
		return c.runList(g)
	}
	return c.runBuild(g)
}

// AfterApply runs after flag parsing; set up logging from flags and environment.
func (c *CLI) AfterApply(g *Global) error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel))
	format := config.NormalizeLogFormat(firstNonEmpty(c.LogFormat, os.Getenv(config.EnvLogFormat)))
	c.setupLogging(g, level, format)
	return nil
}

// applyLogConfig re-applies logging once the site configuration is known.
// Command line flags win over configured values.
func (c *CLI) applyLogConfig(g *Global, cfg config.Site) {
	format := cfg.Log.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	c.setupLogging(g, cfg.Log.Level, format)
}

func (c *CLI) setupLogging(g *Global, level config.LogLevel, format config.LogFormat) {
	slogLevel := level.SlogLevel()
	if c.Verbose {
		slogLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(g.Stderr, opts)
	}

	g.Logger = slog.New(handler)
	slog.SetDefault(g.Logger)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
