// Package config provides configuration management for the site generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingRoot       = errors.New("articles.root is required")
	ErrMissingDocument   = errors.New("articles.document is required")
	ErrMissingTemplate   = errors.New("templates.homepage and templates.article are required")
	ErrMissingMarker     = errors.New("templates.marker is required")
	ErrMarkerHasNewline  = errors.New("templates.marker must be a single line")
	ErrMissingOutput     = errors.New("output.homepage and output.article are required")
	ErrOutputNotFileName = errors.New("output.article must be a file name, not a path")
	ErrInvalidWorkers    = errors.New("render.workers must be at least 1")
	ErrUnknownExtension  = errors.New("markdown.extensions contains an unknown extension")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// KnownExtensions lists the markdown extension names the renderer understands.
var KnownExtensions = []string{
	"gfm", "table", "tables", "strikethrough", "linkify", "autolink",
	"tasklist", "definition", "footnote", "typographer",
}

// Config represents the complete generator configuration.
type Config struct {
	Articles  ArticlesConfig  `yaml:"articles"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Homepage  HomepageConfig  `yaml:"homepage"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Logging   LoggingConfig   `yaml:"logging"`
	Render    RenderConfig    `yaml:"render"`
}

// ArticlesConfig describes the input tree.
type ArticlesConfig struct {
	Root     string `yaml:"root"`
	Document string `yaml:"document"`
}

// TemplatesConfig names the two template files, relative to the articles root.
type TemplatesConfig struct {
	Homepage string `yaml:"homepage"`
	Article  string `yaml:"article"`
	Marker   string `yaml:"marker"`
}

// OutputConfig names the generated files.
type OutputConfig struct {
	Homepage string `yaml:"homepage"`
	Article  string `yaml:"article"`
}

// HomepageConfig controls the homepage entry list.
type HomepageConfig struct {
	LinkPrefix string `yaml:"link_prefix"`
	EscapeHTML bool   `yaml:"escape_html"`
}

// MarkdownConfig controls the markdown converter.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	UnsafeHTML bool     `yaml:"unsafe_html"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RenderConfig controls article page rendering.
type RenderConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Articles: ArticlesConfig{
			Root:     "../articles",
			Document: "index.md",
		},
		Templates: TemplatesConfig{
			Homepage: "template-homepage.html",
			Article:  "template-article.html",
			Marker:   "<!--INSERT-->",
		},
		Output: OutputConfig{
			Homepage: "index.html",
			Article:  "index.html",
		},
		Homepage: HomepageConfig{
			LinkPrefix: "/articles/",
		},
		Markdown: MarkdownConfig{
			UnsafeHTML: true,
		},
		Logging: LoggingConfig{Level: "info"},
		Render:  RenderConfig{Workers: 1},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Articles.Root == "" {
		return ErrMissingRoot
	}

	if c.Articles.Document == "" {
		return ErrMissingDocument
	}

	if c.Templates.Homepage == "" || c.Templates.Article == "" {
		return ErrMissingTemplate
	}

	if c.Templates.Marker == "" {
		return ErrMissingMarker
	}

	if strings.ContainsAny(c.Templates.Marker, "\r\n") {
		return ErrMarkerHasNewline
	}

	if c.Output.Homepage == "" || c.Output.Article == "" {
		return ErrMissingOutput
	}

	if strings.ContainsAny(c.Output.Article, `/\`) {
		return fmt.Errorf("%w: %q", ErrOutputNotFileName, c.Output.Article)
	}

	if c.Render.Workers < 1 {
		return ErrInvalidWorkers
	}

	for _, ext := range c.Markdown.Extensions {
		if !isKnownExtension(ext) {
			return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

func isKnownExtension(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, known := range KnownExtensions {
		if key == known {
			return true
		}
	}

	return false
}

// HomepageTemplatePath returns the homepage template location.
func (c *Config) HomepageTemplatePath() string {
	return filepath.Join(c.Articles.Root, c.Templates.Homepage)
}

// ArticleTemplatePath returns the article template location.
func (c *Config) ArticleTemplatePath() string {
	return filepath.Join(c.Articles.Root, c.Templates.Article)
}

// HomepageOutputPath returns where the homepage is written.
func (c *Config) HomepageOutputPath() string {
	return filepath.Join(c.Articles.Root, c.Output.Homepage)
}

// ArticleOutputPath follows structure: {root}/{directory}/{output.article}.
func (c *Config) ArticleOutputPath(directory string) string {
	return filepath.Join(c.Articles.Root, directory, c.Output.Article)
}

// DocumentPath follows structure: {root}/{directory}/{articles.document}.
func (c *Config) DocumentPath(directory string) string {
	return filepath.Join(c.Articles.Root, directory, c.Articles.Document)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Root: %s, Document: %s, Workers: %d}",
		c.Articles.Root,
		c.Articles.Document,
		c.Render.Workers,
	)
}
