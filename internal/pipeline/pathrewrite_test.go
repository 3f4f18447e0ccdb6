package pipeline

// Notes:
// - Tests RebaseRelativePaths through its public API, plus the pure helpers
// - Directories are rooted paths; filepath.Abs makes them absolute on every OS
// - Path traversal tests verify the observable behavior (path not rewritten)
//   rather than the isPathUnderDir implementation

import (
	"path/filepath"
	"strings"
	"testing"
)

const (
	testSourceDir = "/docs"
	testOutputDir = "/site"
)

// ---------------------------------------------------------------------------
// TestRebaseRelativePaths - Main Function Tests
// ---------------------------------------------------------------------------

func TestRebaseRelativePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		outputDir    string
		wantContains []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/logo.png"/>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="../docs/images/logo.png"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="images/logo.png"/>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="../docs/images/logo.png"`},
		},
		{
			name:         "output below source",
			html:         `<img src="logo.png"/>`,
			sourceDir:    testSourceDir,
			outputDir:    "/docs/out",
			wantContains: []string{`src="../logo.png"`},
		},
		{
			name:         "relative link keeps fragment",
			html:         `<a href="other.html#part">Link</a>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`href="../docs/other.html#part"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png">`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "http URL unchanged",
			html:         `<img src="https://example.com/logo.png">`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="https://example.com/logo.png"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:me@example.com">me</a>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`href="mailto:me@example.com"`},
		},
		{
			name:         "anchor link unchanged",
			html:         `<a href="#section">Link</a>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`href="#section"`},
		},
		{
			name:         "protocol-relative URL unchanged",
			html:         `<img src="//cdn.example.com/logo.png">`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="//cdn.example.com/logo.png"`},
		},
		{
			name:         "script src not rewritten",
			html:         `<script src="./script.js"></script>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="./script.js"`},
		},
		{
			name:         "nested elements rewritten",
			html:         `<div><p><img src="./nested.png"/></p></div>`,
			sourceDir:    testSourceDir,
			outputDir:    testOutputDir,
			wantContains: []string{`src="../docs/nested.png"`},
		},
		{
			name:         "empty sourceDir returns unchanged",
			html:         `<img src="./logo.png">`,
			sourceDir:    "",
			outputDir:    testOutputDir,
			wantContains: []string{`src="./logo.png"`},
		},
		{
			name:         "same directories return unchanged",
			html:         `<img src="./logo.png">`,
			sourceDir:    testSourceDir,
			outputDir:    testSourceDir + "/",
			wantContains: []string{`src="./logo.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RebaseRelativePaths(tt.html, tt.sourceDir, tt.outputDir)
			if err != nil {
				t.Fatalf("RebaseRelativePaths() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RebaseRelativePaths() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRebaseRelativePaths_UnchangedInputIsNotRerendered(t *testing.T) {
	t.Parallel()

	// Rendering would turn "<hr />" into "<hr/>".
	input := "<p>no paths</p>\n\n<hr />\n"
	got, err := RebaseRelativePaths(input, testSourceDir, testOutputDir)
	if err != nil {
		t.Fatalf("RebaseRelativePaths() error = %v", err)
	}
	if got != input {
		t.Errorf("RebaseRelativePaths() = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestRebaseRelativePaths_PathTraversal - Security Tests
// ---------------------------------------------------------------------------

func TestRebaseRelativePaths_PathTraversal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains string
	}{
		{
			name:         "parent directory traversal blocked",
			html:         `<img src="../../../etc/passwd">`,
			wantContains: `src="../../../etc/passwd"`,
		},
		{
			name:         "double dot in middle blocked",
			html:         `<img src="images/../../../etc/passwd">`,
			wantContains: `src="images/../../../etc/passwd"`,
		},
		{
			name:         "nested valid path allowed",
			html:         `<img src="images/sub/deep/file.png">`,
			wantContains: `src="../docs/images/sub/deep/file.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RebaseRelativePaths(tt.html, testSourceDir, testOutputDir)
			if err != nil {
				t.Fatalf("RebaseRelativePaths() error = %v", err)
			}

			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("RebaseRelativePaths() = %q, want to contain %q", got, tt.wantContains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRebaseRelativePaths_DocumentTypes - Full Document vs Fragment
// ---------------------------------------------------------------------------

func TestRebaseRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><img src="./logo.png"></body>
</html>`

	got, err := RebaseRelativePaths(html, testSourceDir, testOutputDir)
	if err != nil {
		t.Fatalf("RebaseRelativePaths() error = %v", err)
	}

	if !strings.Contains(strings.ToLower(got), "doctype") {
		t.Error("Full document should preserve DOCTYPE")
	}
	if !strings.Contains(got, "<title>Test</title>") {
		t.Error("Full document should preserve <title>")
	}
	if !strings.Contains(got, `src="../docs/logo.png"`) {
		t.Error("Image path should be rewritten")
	}
}

func TestRebaseRelativePaths_Fragment(t *testing.T) {
	t.Parallel()

	html := `<p>Hello</p><img src="./logo.png"/><p>World</p>`

	got, err := RebaseRelativePaths(html, testSourceDir, testOutputDir)
	if err != nil {
		t.Fatalf("RebaseRelativePaths() error = %v", err)
	}

	if strings.Contains(got, "<html>") {
		t.Error("Fragment should not be wrapped in <html>")
	}
	if !strings.Contains(got, "<p>Hello</p>") {
		t.Error("Fragment should preserve content")
	}
	if !strings.Contains(got, `src="../docs/logo.png"`) {
		t.Error("Image path should be rewritten")
	}
}

func TestRebaseRelativePaths_PreservesAttributes(t *testing.T) {
	t.Parallel()

	html := `<img src="./logo.png" alt="Logo" class="logo" width="100">`

	got, err := RebaseRelativePaths(html, testSourceDir, testOutputDir)
	if err != nil {
		t.Fatalf("RebaseRelativePaths() error = %v", err)
	}

	checks := []string{`alt="Logo"`, `class="logo"`, `width="100"`, `src="../docs/logo.png"`}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Errorf("Should contain %q, got %q", check, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath - Helper Function Tests
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		// Relative paths (should return true)
		{"./image.png", true},
		{"images/logo.png", true},
		{"../parent.png", true},
		{"file.png", true},
		{"sub/dir/file.png?v=2", true},

		// Non-relative paths (should return false)
		{"", false},
		{"http://example.com/img.png", false},
		{"https://example.com/img.png", false},
		{"file:///abs/path.png", false},
		{"data:image/png;base64,ABC", false},
		{"mailto:me@example.com", false},
		{"//cdn.example.com/img.png", false},
		{"#anchor", false},
		{"/absolute/path.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSplitPathSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		wantPath   string
		wantSuffix string
	}{
		{"a.png", "a.png", ""},
		{"a.html#top", "a.html", "#top"},
		{"a.png?v=1#x", "a.png", "?v=1#x"},
	}

	for _, tt := range tests {
		path, suffix := splitPathSuffix(tt.in)
		if path != tt.wantPath || suffix != tt.wantSuffix {
			t.Errorf("splitPathSuffix(%q) = (%q, %q), want (%q, %q)", tt.in, path, suffix, tt.wantPath, tt.wantSuffix)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsPathUnderDir - Security Helper Tests
// ---------------------------------------------------------------------------

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		absPath string
		dir     string
		want    bool
	}{
		{name: "direct child", absPath: "/docs/image.png", dir: "/docs", want: true},
		{name: "nested child", absPath: "/docs/images/logo.png", dir: "/docs", want: true},
		{name: "parent directory", absPath: "/etc/passwd", dir: "/docs", want: false},
		{name: "sibling directory", absPath: "/other/file.png", dir: "/docs", want: false},
		{name: "dir with trailing slash", absPath: "/docs/image.png", dir: "/docs/", want: true},
		{name: "similar prefix but different dir", absPath: "/docs-other/image.png", dir: "/docs", want: false},
		{name: "exact match", absPath: "/docs", dir: "/docs", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			absPath := filepath.FromSlash(tt.absPath)
			dir := filepath.FromSlash(tt.dir)

			if got := isPathUnderDir(absPath, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", absPath, dir, got, tt.want)
			}
		})
	}
}
