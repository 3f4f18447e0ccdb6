package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // MD2HTML_CONFIG: config file name or path
	Engine         string        // MD2HTML_ENGINE: classic, commonmark
	TabWidth       int           // MD2HTML_TAB_WIDTH: spaces per indentation level
	HighlightStyle string        // MD2HTML_HIGHLIGHT_STYLE: enables highlighting
	Style          string        // MD2HTML_STYLE: named stylesheet
	AssetPath      string        // MD2HTML_ASSET_PATH: stylesheet directory
	Timeout        time.Duration // MD2HTML_TIMEOUT: per-document timeout
	InputDir       string        // MD2HTML_INPUT_DIR: default input directory
	OutputDir      string        // MD2HTML_OUTPUT_DIR: default output directory
	Workers        int           // MD2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":          true,
	"MD2HTML_ENGINE":          true,
	"MD2HTML_TAB_WIDTH":       true,
	"MD2HTML_HIGHLIGHT_STYLE": true,
	"MD2HTML_STYLE":           true,
	"MD2HTML_ASSET_PATH":      true,
	"MD2HTML_TIMEOUT":         true,
	"MD2HTML_INPUT_DIR":       true,
	"MD2HTML_OUTPUT_DIR":      true,
	"MD2HTML_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MD2HTML_CONFIG"),
		Engine:         os.Getenv("MD2HTML_ENGINE"),
		HighlightStyle: os.Getenv("MD2HTML_HIGHLIGHT_STYLE"),
		Style:          os.Getenv("MD2HTML_STYLE"),
		AssetPath:      os.Getenv("MD2HTML_ASSET_PATH"),
		InputDir:       os.Getenv("MD2HTML_INPUT_DIR"),
		OutputDir:      os.Getenv("MD2HTML_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if width := os.Getenv("MD2HTML_TAB_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil && w > 0 {
			cfg.TabWidth = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
// Helps catch typos like MD2HTML_ENGIN instead of MD2HTML_ENGINE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2HTML_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on the file configuration.
// Precedence is flags > environment > config file > defaults; flags are
// merged afterwards. Timeout and workers are resolved separately.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Markdown.Engine = env.Engine
	}
	if env.TabWidth != 0 {
		cfg.Markdown.TabWidth = env.TabWidth
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Style = env.HighlightStyle
		cfg.Highlight.Enabled = true
	}
	if env.Style != "" {
		cfg.Document.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
