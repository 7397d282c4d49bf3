// Package config loads and validates the bookpages configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Book is the path to the source directory (required).
	Book     string        `yaml:"book"`
	Site     SiteConfig    `yaml:"site"`
	Output   OutputConfig  `yaml:"output"`
	Template string        `yaml:"template"`
	Logging  LoggingConfig `yaml:"logging"`
}

// SiteConfig holds presentation settings surfaced on the home page and in links.
type SiteConfig struct {
	Title     string `yaml:"title"`
	Tagline   string `yaml:"tagline,omitempty"`
	AssetBase string `yaml:"asset_base,omitempty"` // URL prefix the site is hosted under, e.g. /repo-name
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	BaseDirectory   string `yaml:"base_directory,omitempty"` // site root; pages/assets/index.html live under it
	Directory       string `yaml:"directory"`                // rendered pages directory name
	AssetsDirectory string `yaml:"assets_directory"`         // manifest, partials and media directory name
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// PagesDir returns the directory rendered pages are written to.
func (c *Config) PagesDir() string {
	return filepath.Join(c.Output.BaseDirectory, c.Output.Directory)
}

// AssetsDir returns the directory holding the manifest, partials and media.
func (c *Config) AssetsDir() string {
	return filepath.Join(c.Output.BaseDirectory, c.Output.AssetsDirectory)
}

// HomePath returns where the generated home page is written.
func (c *Config) HomePath() string {
	return filepath.Join(c.Output.BaseDirectory, "index.html")
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 - path comes from the CLI
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Documentation Site"
	}
	if c.Site.Tagline == "" {
		c.Site.Tagline = "Sections generated from the book."
	}
	// A trailing slash would double up in every generated URL.
	c.Site.AssetBase = strings.TrimRight(c.Site.AssetBase, "/")
	if c.Output.BaseDirectory == "" {
		c.Output.BaseDirectory = "."
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "pages"
	}
	if c.Output.AssetsDirectory == "" {
		c.Output.AssetsDirectory = "assets"
	}
	if c.Template == "" {
		c.Template = filepath.Join("templates", "section.html")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = string(LogLevelInfo)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = string(LogFormatText)
	}
}

// Validate reports fatal configuration problems. The book directory itself is
// checked at build time so discover/build share one error path.
func (c *Config) Validate() error {
	if c.Book == "" {
		return fmt.Errorf("config: book source path is required")
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Book: "./book",
		Site: SiteConfig{
			Title:     "My Book",
			Tagline:   "Sections generated from the book.",
			AssetBase: "",
		},
		Output: OutputConfig{
			BaseDirectory:   ".",
			Directory:       "pages",
			AssetsDirectory: "assets",
		},
		Template: "templates/section.html",
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil { // #nosec G306 - config is not a secret
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
