package markdown

import (
	"regexp"
	"strings"
)

// DefaultTabWidth is the indentation unit used when Options.TabWidth is zero.
const DefaultTabWidth = 4

// Options configures a Parser. The zero value renders XHTML-style void
// elements with a tab width of DefaultTabWidth.
type Options struct {
	// TabWidth drives tab expansion and every indentation-sensitive rule
	// (code blocks, list nesting, HTML block and link definition offsets).
	TabWidth int

	// HTML4 renders void elements as "<br>" instead of "<br />".
	HTML4 bool

	// NoMarkup disables raw HTML pass-through. Block and inline tags are
	// then escaped like any other text.
	NoMarkup bool

	// NoEntities encodes every ampersand, including ones that already
	// start a valid character reference.
	NoEntities bool

	// PredefinedURLs and PredefinedTitles seed the link reference table
	// before each transform. Keys are matched case-insensitively.
	PredefinedURLs   map[string]string
	PredefinedTitles map[string]string
}

// linkDef is one entry of the link reference table.
type linkDef struct {
	url      string
	title    string
	hasTitle bool
}

// Parser converts Markdown text to an HTML fragment.
type Parser struct {
	tabWidth      int
	voidSuffix    string
	noMarkup      bool
	noEntities    bool
	predefined    map[string]linkDef
	linkDefRegexp *regexp.Regexp
}

// New creates a Parser from opts. A non-positive TabWidth selects
// DefaultTabWidth.
func New(opts Options) *Parser {
	tw := opts.TabWidth
	if tw <= 0 {
		tw = DefaultTabWidth
	}

	suffix := " />"
	if opts.HTML4 {
		suffix = ">"
	}

	predefined := make(map[string]linkDef, len(opts.PredefinedURLs))
	for id, url := range opts.PredefinedURLs {
		def := linkDef{url: url}
		if title, ok := opts.PredefinedTitles[id]; ok {
			def.title = title
			def.hasTitle = true
		}
		predefined[strings.ToLower(id)] = def
	}

	return &Parser{
		tabWidth:      tw,
		voidSuffix:    suffix,
		noMarkup:      opts.NoMarkup,
		noEntities:    opts.NoEntities,
		predefined:    predefined,
		linkDefRegexp: compileLinkDefRegexp(tw),
	}
}

// TabWidth returns the effective tab width.
func (p *Parser) TabWidth() int {
	return p.tabWidth
}

// Transform converts text to HTML. The result always ends with exactly one
// newline. Transform never fails on input; malformed constructs degrade to
// literal text.
func (p *Parser) Transform(text string) string {
	s := newState(p)

	text = normalize(text, p.tabWidth)
	text = s.hashHTMLBlocks(text)
	text = s.stripLinkDefinitions(text)
	text = s.runBasicBlockGamut(text)
	text = s.unhash(text)

	return strings.TrimRight(text, "\n") + "\n"
}

// state is the per-transform context: placeholder table, link table and
// the counters the recursive passes share.
type state struct {
	*Parser

	hashes       map[string]string
	counter      int
	links        map[string]linkDef
	listLevel    int
	insideAnchor bool
}

func newState(p *Parser) *state {
	links := make(map[string]linkDef, len(p.predefined))
	for id, def := range p.predefined {
		links[id] = def
	}
	return &state{
		Parser: p,
		hashes: make(map[string]string),
		links:  links,
	}
}
