package main

// Notes:
// - loadEnvConfig: we test every MD2HTML_* variable and that malformed or
//   non-positive numbers and durations are ignored.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set variables override the file config and
//   unset ones leave it alone.
// - Tests use t.Setenv() which prevents t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MD2HTML_CONFIG", "/path/to/site.yaml")
		t.Setenv("MD2HTML_ENGINE", "commonmark")
		t.Setenv("MD2HTML_TAB_WIDTH", "2")
		t.Setenv("MD2HTML_HIGHLIGHT_STYLE", "dracula")
		t.Setenv("MD2HTML_STYLE", "minimal")
		t.Setenv("MD2HTML_ASSET_PATH", "./styles")
		t.Setenv("MD2HTML_TIMEOUT", "2m")
		t.Setenv("MD2HTML_INPUT_DIR", "./docs")
		t.Setenv("MD2HTML_OUTPUT_DIR", "./public")
		t.Setenv("MD2HTML_WORKERS", "4")

		got := loadEnvConfig()
		want := envConfig{
			ConfigPath:     "/path/to/site.yaml",
			Engine:         "commonmark",
			TabWidth:       2,
			HighlightStyle: "dracula",
			Style:          "minimal",
			AssetPath:      "./styles",
			Timeout:        2 * time.Minute,
			InputDir:       "./docs",
			OutputDir:      "./public",
			Workers:        4,
		}
		if *got != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
		}
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		t.Setenv("MD2HTML_TIMEOUT", "soon")
		t.Setenv("MD2HTML_WORKERS", "many")
		t.Setenv("MD2HTML_TAB_WIDTH", "wide")

		got := loadEnvConfig()
		if got.Timeout != 0 || got.Workers != 0 || got.TabWidth != 0 {
			t.Errorf("loadEnvConfig() = %+v, want zero timeout, workers and tab width", *got)
		}
	})

	t.Run("non-positive numbers are ignored", func(t *testing.T) {
		t.Setenv("MD2HTML_TIMEOUT", "-5s")
		t.Setenv("MD2HTML_WORKERS", "0")
		t.Setenv("MD2HTML_TAB_WIDTH", "-1")

		got := loadEnvConfig()
		if got.Timeout != 0 || got.Workers != 0 || got.TabWidth != 0 {
			t.Errorf("loadEnvConfig() = %+v, want zero timeout, workers and tab width", *got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2HTML_ENGIN", "classic")
	t.Setenv("MD2HTML_ENGINE", "classic")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "unknown environment variable MD2HTML_ENGIN ") {
		t.Errorf("warnings = %q, want MD2HTML_ENGIN flagged", out)
	}
	if strings.Contains(out, "MD2HTML_ENGINE") {
		t.Errorf("warnings = %q, known variable MD2HTML_ENGINE should not warn", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Run("set values override", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Input.DefaultDir = "from-file"

		applyEnvConfig(&envConfig{
			Engine:         "commonmark",
			TabWidth:       8,
			HighlightStyle: "monokai",
			Style:          "minimal",
			AssetPath:      "styles",
			InputDir:       "docs",
			OutputDir:      "public",
		}, cfg)

		if cfg.Markdown.Engine != "commonmark" || cfg.Markdown.TabWidth != 8 {
			t.Errorf("Markdown = %+v, want commonmark with tab width 8", cfg.Markdown)
		}
		if !cfg.Highlight.Enabled || cfg.Highlight.Style != "monokai" {
			t.Errorf("Highlight = %+v, want enabled monokai", cfg.Highlight)
		}
		if cfg.Document.Style != "minimal" || cfg.Assets.BasePath != "styles" {
			t.Errorf("style = %q, %q, want minimal, styles", cfg.Document.Style, cfg.Assets.BasePath)
		}
		if cfg.Input.DefaultDir != "docs" || cfg.Output.DefaultDir != "public" {
			t.Errorf("dirs = %q, %q, want docs, public", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = "from-file"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Markdown.Engine != config.EngineClassic || cfg.Markdown.TabWidth != 4 {
			t.Errorf("Markdown = %+v, want defaults", cfg.Markdown)
		}
		if cfg.Highlight.Enabled {
			t.Error("Highlight.Enabled = true, want false")
		}
		if cfg.Output.DefaultDir != "from-file" {
			t.Errorf("Output.DefaultDir = %q, want from-file", cfg.Output.DefaultDir)
		}
	})
}
