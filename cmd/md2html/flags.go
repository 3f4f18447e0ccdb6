package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags holds engine flags.
type markdownFlags struct {
	engine     string
	tabWidth   int
	html4      bool
	noMarkup   bool
	noEntities bool
}

// documentFlags holds standalone document flags.
type documentFlags struct {
	standalone bool
	title      string
	css        string
	style      string
	assetPath  string
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	enabled  bool
	style    string
	disabled bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	timeout     string
	markdown    markdownFlags
	document    documentFlags
	highlight   highlightFlags
	printConfig bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addMarkdownFlags adds engine flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown dialect: classic, commonmark")
	fs.IntVar(&f.tabWidth, "tab-width", 0, "spaces per indentation level (1-16, default: 4)")
	fs.BoolVar(&f.html4, "html4", false, "end void elements with > instead of />")
	fs.BoolVar(&f.noMarkup, "no-markup", false, "escape raw HTML instead of passing it through")
	fs.BoolVar(&f.noEntities, "no-entities", false, "encode every &, character references included")
}

// addDocumentFlags adds standalone document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "wrap output in a complete HTML document")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first header)")
	fs.StringVar(&f.css, "css", "", "stylesheet embedded in standalone documents")
	fs.StringVar(&f.style, "style", "", "named stylesheet (default, minimal, or from --asset-path)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory of {name}.css stylesheets")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.enabled, "highlight", false, "highlight code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "highlight style name (implies --highlight)")
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable code highlighting")
}

// newConvertFlagSet registers every convert flag into a new FlagSet.
// Shared by parsing and shell completion so both see the same flags.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addDocumentFlags(fs, &f.document)
	addHighlightFlags(fs, &f.highlight)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage go to w.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
