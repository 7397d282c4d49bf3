// Package commands wires the CLI subcommands.
package commands

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookpages/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"bookpages.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the static site from the book directory"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Discover DiscoverCmd `cmd:"" help:"List the sections and pages that would be built"`
	Preview  PreviewCmd  `cmd:"" help:"Serve the site locally and rebuild on changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	config.SetupLogging(level, config.LogFormatText)
	return nil
}

// loadConfig loads the configuration and reapplies logging settings from it.
// The --verbose flag always wins over the configured level.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	level := config.NormalizeLogLevel(cfg.Logging.Level)
	if root.Verbose {
		level = config.LogLevelDebug
	}
	config.SetupLogging(level, config.NormalizeLogFormat(cfg.Logging.Format))
	return cfg, nil
}
