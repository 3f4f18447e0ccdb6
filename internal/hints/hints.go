// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strconv"
	"strings"
)

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2html) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for unknown highlight style errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTabWidth returns hints for out-of-range tab widths.
func ForTabWidth(minWidth, maxWidth int) string {
	return format("tab width must be between " + strconv.Itoa(minWidth) + " and " + strconv.Itoa(maxWidth))
}

// ForEngine returns hints for unknown engine names.
func ForEngine(engines []string) string {
	return formatHints([]string{
		"supported engines: " + strings.Join(engines, ", "),
		"classic follows the original Markdown dialect",
	})
}

// ForNoInput returns hints when no input was given and stdin is a terminal.
func ForNoInput() string {
	return formatHints([]string{
		"pass a Markdown file or directory",
		"or pipe Markdown on stdin",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
