// Package config loads the immutable site configuration threaded through every
// build component. Conventions (directory names, template names, delineators)
// have defaults and may be overridden by an optional sitebuilder.yaml in the
// source directory and by SITEBUILDER_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// FileName is the optional per-site configuration file looked up in the source directory.
const FileName = "sitebuilder.yaml"

// EnvFileName is the optional dotenv file looked up in the source directory.
const EnvFileName = ".env"

// Site is the resolved configuration for one build. It is passed by value and
// never mutated after Load returns.
type Site struct {
	SourceDir string          `yaml:"-"`
	OutputDir string          `yaml:"-"`
	Content   ContentConfig   `yaml:"content"`
	Templates TemplatesConfig `yaml:"templates"`
	Parsing   ParsingConfig   `yaml:"parsing"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Log       LoggingConfig   `yaml:"log"`
}

// ContentConfig names the directories making up the source layout.
type ContentConfig struct {
	Directory       string   `yaml:"directory"`
	DraftsDirectory string   `yaml:"drafts_directory"`
	AssetsDirectory string   `yaml:"assets_directory"`
	OutputDirectory string   `yaml:"output_directory"` // default output dir name under the source
	Extensions      []string `yaml:"extensions"`
	AboutSlug       string   `yaml:"about_slug"`
}

// TemplatesConfig names the page templates.
type TemplatesConfig struct {
	Directory string `yaml:"directory"`
	Article   string `yaml:"article"`
	Homepage  string `yaml:"homepage"`
	About     string `yaml:"about"`
}

// ParsingConfig holds the document front matter separators.
type ParsingConfig struct {
	ContentDelineator string `yaml:"content_delineator"`
	FieldSeparator    string `yaml:"field_separator"`
	KeyValueSeparator string `yaml:"key_value_separator"`
}

// MarkdownConfig toggles renderer extensions.
type MarkdownConfig struct {
	Emoji          bool   `yaml:"emoji"`
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlight_style"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load resolves the configuration for sourceDir. An empty outputDir defaults to
// <sourceDir>/<content.output_directory>.
func Load(sourceDir, outputDir string) (Site, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return Site{}, ferrors.UsageError("source directory not found").
			WithContext("path", sourceDir).
			WithCause(err).
			Build()
	}
	if !info.IsDir() {
		return Site{}, ferrors.UsageError("source is not a directory").
			WithContext("path", sourceDir).
			Build()
	}

	if err := loadEnvFile(filepath.Join(sourceDir, EnvFileName)); err != nil {
		return Site{}, ferrors.ConfigError("failed to load env file").
			WithContext("path", filepath.Join(sourceDir, EnvFileName)).
			WithCause(err).
			Build()
	}

	cfg := Defaults()
	cfgPath := filepath.Join(sourceDir, FileName)
	if err := cfg.readFile(cfgPath); err != nil {
		return Site{}, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	cfg.SourceDir = filepath.Clean(sourceDir)
	if outputDir == "" {
		outputDir = filepath.Join(cfg.SourceDir, cfg.Content.OutputDirectory)
	}
	cfg.OutputDir = filepath.Clean(outputDir)

	if err := Validate(cfg); err != nil {
		return Site{}, err
	}
	return cfg, nil
}

// readFile merges an optional YAML file over the current values. Unknown keys are rejected.
func (s *Site) readFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the conventional config file in the source dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No site configuration file, using defaults", logfields.Path(path))
			return nil
		}
		return ferrors.ConfigError("failed to read config file").
			WithContext("path", path).
			WithCause(err).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.ConfigError("failed to parse config file").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	slog.Debug("Loaded site configuration", logfields.Path(path))
	return nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding the process environment.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Debug("Loaded environment variables", logfields.Path(path))
	return nil
}

// ContentRoot is the directory scanned for documents.
func (s Site) ContentRoot() string {
	return filepath.Join(s.SourceDir, s.Content.Directory)
}

// AssetsRoot is the directory copied verbatim into the output.
func (s Site) AssetsRoot() string {
	return filepath.Join(s.SourceDir, s.Content.AssetsDirectory)
}

// TemplatePath resolves a template file name against the templates directory.
func (s Site) TemplatePath(name string) string {
	return filepath.Join(s.SourceDir, s.Templates.Directory, name)
}
