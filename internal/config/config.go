// Package config loads and validates the YAML configuration of the md2html
// command: engine options, predefined links and document settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Engine names accepted by markdown.engine.
const (
	EngineClassic    = "classic"
	EngineCommonMark = "commonmark"
)

// Tab width bounds for markdown.tabWidth.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Field length limits.
const (
	MaxPathLength   = 4096 // Filesystem paths
	MaxURLLength    = 2048 // Browser limit
	MaxTitleLength  = 200  // Document and link titles
	MaxLinkIDLength = 200  // Link reference ids
	MaxStyleLength  = 50   // Chroma and stylesheet names
)

// Config holds all configuration for HTML generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Links     []Link          `yaml:"links"`
	Document  DocumentConfig  `yaml:"document"`
	Highlight HighlightConfig `yaml:"highlight"`
	Assets    AssetsConfig    `yaml:"assets"`
	Timeout   string          `yaml:"timeout"` // Per-document conversion timeout, e.g. "30s"
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// MarkdownConfig defines conversion engine options.
type MarkdownConfig struct {
	Engine     string `yaml:"engine"`     // "classic" or "commonmark" (default: "classic")
	TabWidth   int    `yaml:"tabWidth"`   // 1-16 (default: 4)
	HTML4      bool   `yaml:"html4"`      // Void elements end with ">" instead of " />"
	NoMarkup   bool   `yaml:"noMarkup"`   // Escape raw HTML instead of passing it through
	NoEntities bool   `yaml:"noEntities"` // Encode every "&", entities included
}

// Link is a predefined link reference, usable as [id] in every document.
type Link struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Title string `yaml:"title"` // Optional
}

// DocumentConfig defines standalone document options.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"` // Wrap output in an HTML5 document
	Title      string `yaml:"title"`      // Empty = first header, else "Document"
	CSS        string `yaml:"css"`        // Path to a stylesheet embedded in <head>
	Style      string `yaml:"style"`      // Named stylesheet, used when CSS is empty
}

// HighlightConfig defines code block highlighting options.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // Chroma style name (default: "github")
}

// AssetsConfig defines where named stylesheets are looked up.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory of {name}.css files (empty = built-in only)
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Markdown.Engine) {
	case "", EngineClassic, EngineCommonMark:
		// valid
	default:
		return fmt.Errorf("%w: markdown.engine %q (must be %s or %s)",
			ErrInvalidValue, c.Markdown.Engine, EngineClassic, EngineCommonMark)
	}
	if c.Markdown.TabWidth != 0 && (c.Markdown.TabWidth < MinTabWidth || c.Markdown.TabWidth > MaxTabWidth) {
		return fmt.Errorf("%w: markdown.tabWidth must be between %d and %d, got %d",
			ErrInvalidValue, MinTabWidth, MaxTabWidth, c.Markdown.TabWidth)
	}

	seen := make(map[string]bool, len(c.Links))
	for i, link := range c.Links {
		if strings.TrimSpace(link.ID) == "" {
			return fmt.Errorf("%w: links[%d].id is required", ErrInvalidValue, i)
		}
		if link.URL == "" {
			return fmt.Errorf("%w: links[%d].url is required", ErrInvalidValue, i)
		}
		id := strings.ToLower(link.ID)
		if seen[id] {
			return fmt.Errorf("%w: links[%d].id %q is defined twice", ErrInvalidValue, i, link.ID)
		}
		seen[id] = true

		if err := validateFieldLength(fmt.Sprintf("links[%d].id", i), link.ID, MaxLinkIDLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("links[%d].url", i), link.URL, MaxURLLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("links[%d].title", i), link.Title, MaxTitleLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.css", c.Document.CSS, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.style", c.Document.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file:
// the classic engine with a 4-space tab, fragments only, no highlighting.
func DefaultConfig() *Config {
	return &Config{
		Markdown: MarkdownConfig{Engine: EngineClassic, TabWidth: 4},
	}
}

// LinkMaps splits the predefined links into the URL and title maps the
// engine takes. Links without a title have no title entry.
func (c *Config) LinkMaps() (urls, titles map[string]string) {
	if len(c.Links) == 0 {
		return nil, nil
	}
	urls = make(map[string]string, len(c.Links))
	titles = make(map[string]string)
	for _, link := range c.Links {
		urls[link.ID] = link.URL
		if link.Title != "" {
			titles[link.ID] = link.Title
		}
	}
	return urls, titles
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the files resolveConfigPath tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2html", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory, then the user config directory
// (~/.config/go-md2html/), each with .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
