package md2html

import (
	"maps"
	"strings"
	"time"
)

// Engine names.
const (
	// EngineClassic is the original Markdown dialect.
	EngineClassic = "classic"
	// EngineCommonMark is the CommonMark dialect with GFM extensions.
	EngineCommonMark = "commonmark"
)

// Engines lists the supported engine names.
func Engines() []string {
	return []string{EngineClassic, EngineCommonMark}
}

// Tab width bounds.
const (
	MinTabWidth     = 1
	MaxTabWidth     = 16
	DefaultTabWidth = 4
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown source (required)

	// SourceDir is the directory of the Markdown file. With OutputDir set to
	// a different directory, relative img src and a href paths are rebased
	// so they still resolve from the output location.
	SourceDir string
	OutputDir string

	Standalone bool   // wrap the fragment in a complete HTML5 document
	Title      string // document title; defaults to the first header
	CSS        string // extra CSS for standalone documents
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML  []byte // HTML fragment, or the complete document when standalone
	Title string // resolved title of a standalone document
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout          time.Duration
	engine           string
	tabWidth         int
	html4            bool
	noMarkup         bool
	noEntities       bool
	predefinedURLs   map[string]string
	predefinedTitles map[string]string
	highlight        bool
	highlightStyle   string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTabWidth sets the indentation unit used for tab expansion, code
// blocks and list nesting.
// Panics if n is outside [MinTabWidth, MaxTabWidth].
func WithTabWidth(n int) Option {
	if n < MinTabWidth || n > MaxTabWidth {
		panic("md2html: WithTabWidth width out of range")
	}
	return func(c *Converter) {
		c.cfg.tabWidth = n
	}
}

// WithXHTML selects "<br />" style void elements when enabled (the default)
// and HTML4 "<br>" style otherwise.
func WithXHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.html4 = !enabled
	}
}

// WithoutMarkup escapes raw HTML in the input instead of passing it through.
func WithoutMarkup() Option {
	return func(c *Converter) {
		c.cfg.noMarkup = true
	}
}

// WithoutEntities encodes every ampersand, including those that start a
// character reference.
func WithoutEntities() Option {
	return func(c *Converter) {
		c.cfg.noEntities = true
	}
}

// WithPredefinedLinks seeds every conversion with link references.
// Keys are reference ids, matched case-insensitively. titles may be nil.
func WithPredefinedLinks(urls, titles map[string]string) Option {
	return func(c *Converter) {
		c.cfg.predefinedURLs = maps.Clone(urls)
		c.cfg.predefinedTitles = maps.Clone(titles)
	}
}

// WithEngine selects the Markdown dialect by name (EngineClassic or
// EngineCommonMark). Unknown names make NewConverter fail.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithHighlighting enables syntax highlighting of code blocks with the
// named chroma style. An empty style selects the default.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}
