package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2html/internal/markdown"
)

// Sentinel errors for HTML conversion.
var (
	// ErrHTMLConversion indicates HTML conversion failed.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	// ErrEngineFault indicates the conversion engine panicked.
	ErrEngineFault = errors.New("conversion engine fault")
)

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ClassicConverter converts Markdown with the classic dialect engine.
type ClassicConverter struct {
	parser *markdown.Parser
}

// NewClassicConverter creates a ClassicConverter for the given engine options.
func NewClassicConverter(opts markdown.Options) *ClassicConverter {
	return &ClassicConverter{parser: markdown.New(opts)}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *ClassicConverter) ToHTML(ctx context.Context, content string) (string, error) {
	return runWithContext(ctx, func() (string, error) {
		return c.parser.Transform(content), nil
	})
}

// GoldmarkOptions configures the CommonMark engine.
type GoldmarkOptions struct {
	HTML4     bool   // Emit void elements without the XHTML slash
	NoMarkup  bool   // Omit raw HTML from the output
	Highlight bool   // Highlight fenced code blocks
	Style     string // Chroma style name used when Highlight is set
}

// GoldmarkConverter converts Markdown to HTML using goldmark (CommonMark with GFM).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if opts.Highlight {
		hlOpts := []highlighting.Option{
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, stylesheet comes from ChromaHighlighter.CSS
			),
		}
		if opts.Style != "" {
			hlOpts = append(hlOpts, highlighting.WithStyle(opts.Style))
		}
		extensions = append(extensions, highlighting.NewHighlighting(hlOpts...))
	}

	var rendererOpts []renderer.Option
	if !opts.HTML4 {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}
	if !opts.NoMarkup {
		// Raw HTML passes through, as it does in the classic dialect.
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	return runWithContext(ctx, func() (string, error) {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return buf.String(), nil
	})
}

// runWithContext runs convert in a goroutine and returns early when ctx
// is done, since neither engine checks a context while it works. A panic
// in convert is reported as ErrEngineFault.
func runWithContext(ctx context.Context, convert func() (string, error)) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				done <- result{err: fmt.Errorf("%w: %w", ErrEngineFault, err)}
			}
		}()
		out, err := convert()
		done <- result{html: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
