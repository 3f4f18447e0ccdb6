package md2html

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-md2html/internal/markdown"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.HTMLConverter   = (*pipeline.ClassicConverter)(nil)
	_ pipeline.HTMLConverter   = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CodeHighlighter = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.CSSInjector     = pipeline.CSSInjection{}
	_ pipeline.DocumentWrapper = pipeline.DocumentWrap{}
)

// Converter orchestrates the Markdown-to-HTML conversion pipeline.
// Create with NewConverter() and call Convert() for each document. A
// Converter holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	htmlConverter pipeline.HTMLConverter
	highlighter   pipeline.CodeHighlighter // nil when highlighting is off
	highlightPass bool                     // false when the engine highlights itself
	cssInjector   pipeline.CSSInjector
	wrapper       pipeline.DocumentWrapper
}

// NewConverter creates a Converter for the classic dialect with a tab
// width of DefaultTabWidth and XHTML void elements.
// Use options to customize behavior (e.g., WithEngine, WithTabWidth, WithHighlighting).
// Returns error if an option names an unknown engine or highlight style.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			engine:   EngineClassic,
			tabWidth: DefaultTabWidth,
		},
		cssInjector: pipeline.CSSInjection{},
		wrapper:     pipeline.DocumentWrap{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.highlight {
		style := c.cfg.highlightStyle
		if style != "" && !pipeline.HighlightStyleExists(style) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, style)
		}
		c.highlighter = pipeline.NewChromaHighlighter(style)
	}

	switch c.cfg.engine {
	case EngineClassic:
		c.htmlConverter = pipeline.NewClassicConverter(markdown.Options{
			TabWidth:         c.cfg.tabWidth,
			HTML4:            c.cfg.html4,
			NoMarkup:         c.cfg.noMarkup,
			NoEntities:       c.cfg.noEntities,
			PredefinedURLs:   c.cfg.predefinedURLs,
			PredefinedTitles: c.cfg.predefinedTitles,
		})
		c.highlightPass = c.highlighter != nil
	case EngineCommonMark:
		c.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			HTML4:     c.cfg.html4,
			NoMarkup:  c.cfg.noMarkup,
			Highlight: c.cfg.highlight,
			Style:     c.cfg.highlightStyle,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, c.cfg.engine)
	}

	return c, nil
}

// Engine returns the name of the dialect the converter renders.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// Convert runs the full pipeline and returns the resulting HTML.
// The context is used for cancellation; the converter timeout bounds the
// whole call. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	htmlContent, err := c.htmlConverter.ToHTML(ctx, input.Markdown)
	if err != nil {
		return nil, conversionError(err)
	}

	if c.highlightPass {
		htmlContent, err = c.highlighter.Highlight(ctx, htmlContent)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHighlight, err)
		}
	}

	htmlContent, err = pipeline.RebaseRelativePaths(htmlContent, input.SourceDir, input.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathRebase, err)
	}

	res := &ConvertResult{}
	if input.Standalone {
		res.Title = input.Title
		if res.Title == "" {
			res.Title = firstHeading(htmlContent)
		}
		if res.Title == "" {
			res.Title = pipeline.DefaultDocumentTitle
		}

		htmlContent, err = c.wrapper.WrapDocument(ctx, htmlContent, res.Title)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDocumentRender, err)
		}

		// Highlight CSS first (base), user CSS last (can override)
		highlightCSS, err := c.HighlightCSS()
		if err != nil {
			return nil, err
		}
		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent,
			pipeline.Stylesheet{Name: "highlight", Content: highlightCSS},
			pipeline.Stylesheet{Name: "user", Content: input.CSS},
		)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res.HTML = []byte(htmlContent)
	return res, nil
}

// HighlightCSS returns the stylesheet for highlighted code blocks, or ""
// when highlighting is off. Fragment output needs it to be styled.
func (c *Converter) HighlightCSS() (string, error) {
	if c.highlighter == nil {
		return "", nil
	}
	css, err := c.highlighter.CSS()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHighlight, err)
	}
	return css, nil
}

// conversionError classifies an engine error. Context errors pass through
// so callers can match them with errors.Is.
func conversionError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("converting to HTML: %w", err)
	case errors.Is(err, pipeline.ErrEngineFault):
		return fmt.Errorf("%w: %v", ErrInternal, err)
	default:
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
}

// firstHeading returns the text of the first h1-h6 element in fragment,
// or "" when there is none.
func firstHeading(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		open string
		text strings.Builder
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			if open == "" && isHeadingTag(name) {
				open = string(name)
			}
		case html.TextToken:
			if open != "" {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if open != "" && string(name) == open {
				if title := strings.Join(strings.Fields(text.String()), " "); title != "" {
					return title
				}
				open = ""
				text.Reset()
			}
		}
	}
}

func isHeadingTag(name []byte) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}
