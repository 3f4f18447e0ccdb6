package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrHighlight indicates code block highlighting failed.
var ErrHighlight = errors.New("code highlighting failed")

// codeBlockPattern matches the code blocks the classic engine emits.
var codeBlockPattern = regexp.MustCompile(`(?s)<pre><code>(.*?)</code></pre>`)

// CodeHighlighter defines the contract for code block highlighting.
type CodeHighlighter interface {
	Highlight(ctx context.Context, htmlContent string) (string, error)
	CSS() (string, error)
}

// HighlightStyleExists reports whether name is a registered chroma style.
func HighlightStyleExists(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// HighlightStyles returns the names of the registered chroma styles.
func HighlightStyles() []string {
	return styles.Names()
}

// ChromaHighlighter colors <pre><code> blocks with chroma. Classic code
// blocks carry no language, so the lexer is guessed from the content and
// blocks no lexer claims are left as they are.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a ChromaHighlighter for the named style.
// Unknown names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight replaces every recognized code block in htmlContent with its
// highlighted rendering.
func (h *ChromaHighlighter) Highlight(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var firstErr error
	out := codeBlockPattern.ReplaceAllStringFunc(htmlContent, func(block string) string {
		if firstErr != nil {
			return block
		}
		m := codeBlockPattern.FindStringSubmatch(block)
		highlighted, err := h.highlightCode(html.UnescapeString(m[1]))
		if err != nil {
			firstErr = err
			return block
		}
		if highlighted == "" {
			return block
		}
		return highlighted
	})
	if firstErr != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, firstErr)
	}
	return out, nil
}

// highlightCode returns the highlighted HTML for code, or "" when no lexer
// recognizes it.
func (h *ChromaHighlighter) highlightCode(code string) (string, error) {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return "", nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CSS returns the stylesheet for the highlighter's CSS classes.
func (h *ChromaHighlighter) CSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return buf.String(), nil
}
