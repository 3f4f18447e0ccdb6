// Package md2html converts Markdown documents to HTML.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.HTML)
//
// # Dialects
//
// The default engine implements the original Markdown dialect: setext and
// atx headers, nested lists, indented code blocks, blockquotes, reference
// links, raw HTML pass-through and email autolink obfuscation. Output is
// deterministic: the same input always produces the same bytes.
//
// WithEngine(EngineCommonMark) switches to a CommonMark renderer with GFM
// extensions (tables, strikethrough, task lists, footnotes).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown to HTML conversion by the selected engine
//  2. Syntax highlighting of code blocks (optional, chroma)
//  3. Rebasing of relative img and link paths (when SourceDir and OutputDir differ)
//  4. Standalone document wrapping with title and CSS (optional)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithTabWidth(2),
//	    md2html.WithXHTML(false),
//	    md2html.WithHighlighting("monokai"),
//	    md2html.WithPredefinedLinks(map[string]string{"home": "https://example.com"}, nil),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown:   content,
//	    SourceDir:  "docs",
//	    OutputDir:  "site",
//	    Standalone: true,
//	    CSS:        "body { max-width: 40em; }",
//	})
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. For batch conversion with a bounded
// number of workers, use ConverterPool:
//
//	pool, err := md2html.NewConverterPool(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package md2html
