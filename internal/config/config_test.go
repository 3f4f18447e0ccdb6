package config

// Notes:
// - Name resolution tests use t.Chdir and t.Setenv, so they do not run in parallel
// - os.UserConfigDir honors XDG_CONFIG_HOME on Unix; the user-directory test
//   is skipped elsewhere

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Built-in Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Markdown.Engine != EngineClassic {
		t.Errorf("Markdown.Engine = %q, want %q", cfg.Markdown.Engine, EngineClassic)
	}
	if cfg.Markdown.TabWidth != 4 {
		t.Errorf("Markdown.TabWidth = %d, want 4", cfg.Markdown.TabWidth)
	}
	if cfg.Document.Standalone {
		t.Error("Document.Standalone = true, want false")
	}
	if cfg.Highlight.Enabled {
		t.Error("Highlight.Enabled = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Value and Length Checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		wantMsg string
	}{
		{
			name: "full valid config",
			cfg: Config{
				Markdown:  MarkdownConfig{Engine: EngineCommonMark, TabWidth: 8, HTML4: true},
				Links:     []Link{{ID: "home", URL: "https://example.com", Title: "Home"}},
				Document:  DocumentConfig{Standalone: true, Title: "Docs", CSS: "style.css"},
				Highlight: HighlightConfig{Enabled: true, Style: "monokai"},
			},
		},
		{
			name: "zero value is valid",
			cfg:  Config{},
		},
		{
			name: "engine is case insensitive",
			cfg:  Config{Markdown: MarkdownConfig{Engine: "CommonMark"}},
		},
		{
			name:    "unknown engine",
			cfg:     Config{Markdown: MarkdownConfig{Engine: "pandoc"}},
			wantErr: ErrInvalidValue,
			wantMsg: "markdown.engine",
		},
		{
			name:    "tab width too large",
			cfg:     Config{Markdown: MarkdownConfig{TabWidth: MaxTabWidth + 1}},
			wantErr: ErrInvalidValue,
			wantMsg: "markdown.tabWidth",
		},
		{
			name:    "negative tab width",
			cfg:     Config{Markdown: MarkdownConfig{TabWidth: -1}},
			wantErr: ErrInvalidValue,
			wantMsg: "markdown.tabWidth",
		},
		{
			name:    "link without id",
			cfg:     Config{Links: []Link{{URL: "/x"}}},
			wantErr: ErrInvalidValue,
			wantMsg: "links[0].id",
		},
		{
			name:    "link without url",
			cfg:     Config{Links: []Link{{ID: "x"}}},
			wantErr: ErrInvalidValue,
			wantMsg: "links[0].url",
		},
		{
			name:    "duplicate link ids differ only in case",
			cfg:     Config{Links: []Link{{ID: "Home", URL: "/a"}, {ID: "home", URL: "/b"}}},
			wantErr: ErrInvalidValue,
			wantMsg: "links[1].id",
		},
		{
			name:    "link url too long",
			cfg:     Config{Links: []Link{{ID: "x", URL: strings.Repeat("a", MaxURLLength+1)}}},
			wantErr: ErrFieldTooLong,
			wantMsg: "links[0].url",
		},
		{
			name:    "document title too long",
			cfg:     Config{Document: DocumentConfig{Title: strings.Repeat("t", MaxTitleLength+1)}},
			wantErr: ErrFieldTooLong,
			wantMsg: "document.title",
		},
		{
			name:    "highlight style too long",
			cfg:     Config{Highlight: HighlightConfig{Style: strings.Repeat("s", MaxStyleLength+1)}},
			wantErr: ErrFieldTooLong,
			wantMsg: "highlight.style",
		},
		{
			name:    "document style too long",
			cfg:     Config{Document: DocumentConfig{Style: strings.Repeat("s", MaxStyleLength+1)}},
			wantErr: ErrFieldTooLong,
			wantMsg: "document.style",
		},
		{
			name:    "asset base path too long",
			cfg:     Config{Assets: AssetsConfig{BasePath: strings.Repeat("p", MaxPathLength+1)}},
			wantErr: ErrFieldTooLong,
			wantMsg: "assets.basePath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConfig_LinkMaps(t *testing.T) {
	t.Parallel()

	cfg := Config{Links: []Link{
		{ID: "home", URL: "https://example.com", Title: "Home"},
		{ID: "docs", URL: "/docs"},
	}}

	urls, titles := cfg.LinkMaps()
	if urls["home"] != "https://example.com" || urls["docs"] != "/docs" {
		t.Errorf("urls = %v", urls)
	}
	if titles["home"] != "Home" {
		t.Errorf("titles[home] = %q, want %q", titles["home"], "Home")
	}
	if _, ok := titles["docs"]; ok {
		t.Error("titles[docs] set, want no entry for a link without title")
	}

	if urls, titles := (&Config{}).LinkMaps(); urls != nil || titles != nil {
		t.Errorf("LinkMaps() of empty config = (%v, %v), want nil maps", urls, titles)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File Loading
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "site.yaml", `input:
  defaultDir: docs
output:
  defaultDir: site
markdown:
  engine: classic
  tabWidth: 2
  noEntities: true
links:
  - id: home
    url: https://example.com
    title: Home
document:
  standalone: true
  title: Docs
highlight:
  enabled: true
  style: monokai
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "docs" || cfg.Output.DefaultDir != "site" {
			t.Errorf("dirs = (%q, %q), want (docs, site)", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if cfg.Markdown.TabWidth != 2 || !cfg.Markdown.NoEntities {
			t.Errorf("Markdown = %+v", cfg.Markdown)
		}
		if len(cfg.Links) != 1 || cfg.Links[0].Title != "Home" {
			t.Errorf("Links = %+v", cfg.Links)
		}
		if !cfg.Document.Standalone || cfg.Document.Title != "Docs" {
			t.Errorf("Document = %+v", cfg.Document)
		}
		if !cfg.Highlight.Enabled || cfg.Highlight.Style != "monokai" {
			t.Errorf("Highlight = %+v", cfg.Highlight)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "min.yaml", "document:\n  standalone: true\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Markdown.TabWidth != 4 || cfg.Markdown.Engine != EngineClassic {
			t.Errorf("Markdown = %+v, want defaults", cfg.Markdown)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "invalid.yaml", "markdown: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "unknown.yaml", "markdown:\n  tabwidht: 4\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "markdown:\n  engine: pandoc\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	writeConfig(t, dir, "local.yml", "document:\n  title: Local\n")

	cfg, err := LoadConfig("local")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Document.Title != "Local" {
		t.Errorf("Document.Title = %q, want %q", cfg.Document.Title, "Local")
	}

	_, err = LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error = %q, want the tried paths listed", err)
	}
}

func TestLoadConfig_ByNameInUserDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME is only used on Unix systems other than macOS")
	}

	dir := t.TempDir()
	t.Chdir(dir)
	xdg := filepath.Join(dir, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	userDir := filepath.Join(xdg, "go-md2html")
	if err := os.MkdirAll(userDir, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	writeConfig(t, userDir, "shared.yaml", "highlight:\n  enabled: true\n")

	cfg, err := LoadConfig("shared")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Highlight.Enabled {
		t.Error("Highlight.Enabled = false, want true")
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths()[:2] = %v, want [site.yaml site.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, "go-md2html") {
			t.Errorf("user path %q does not contain go-md2html", p)
		}
	}
}
