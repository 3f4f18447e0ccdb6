package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	setextHeader = regexp.MustCompile(`(?m)^(.+?)[ ]*\n(=+|-+)[ ]*\n+`)
	atxHeader    = regexp.MustCompile(`(?m)^(#{1,6})[ ]*(.+?)[ ]*#*\n+`)
	emptyItem    = regexp.MustCompile(`^-(?: |$)`)

	horizontalRule = regexp.MustCompile(
		`(?m)^[ ]{0,3}(?:-(?:[ ]{0,2}-){2,}|\*(?:[ ]{0,2}\*){2,}|_(?:[ ]{0,2}_){2,})[ ]*$`)

	blockQuote      = regexp.MustCompile(`(?m)(?:^[ ]*>[ ]?.+\n(?:.+\n)*\n*)+`)
	quoteMarker     = regexp.MustCompile(`(?m)^[ ]*>[ ]?|^[ ]+$`)
	preInQuote      = regexp.MustCompile(`(?s)\s*<pre>.+?</pre>`)
	quoteIndent     = regexp.MustCompile(`(?m)^  `)
	paragraphBreaks = regexp.MustCompile(`\n{2,}`)
)

// runBlockGamut protects HTML blocks in text, then runs the block passes.
// Nested block content (list items, blockquotes) enters here because its
// HTML blocks were indented, and so invisible, at the top level.
func (s *state) runBlockGamut(text string) string {
	text = s.hashHTMLBlocks(text)
	return s.runBasicBlockGamut(text)
}

// runBasicBlockGamut runs the block passes in their fixed order and forms
// paragraphs from what is left.
func (s *state) runBasicBlockGamut(text string) string {
	text = s.doHeaders(text)
	text = s.doHorizontalRules(text)
	text = s.doLists(text)
	text = s.doCodeBlocks(text)
	text = s.doBlockQuotes(text)
	return s.formParagraphs(text)
}

// doHeaders converts setext headers, then atx headers.
func (s *state) doHeaders(text string) string {
	text = replaceAllSubmatchFunc(setextHeader, text, func(m []string) string {
		// A lone "-" under "- text" is an empty list item, not a header.
		if m[2] == "-" && emptyItem.MatchString(m[1]) {
			return m[0]
		}
		level := 2
		if m[2][0] == '=' {
			level = 1
		}
		return "\n" + s.hashBlock(s.header(level, m[1])) + "\n\n"
	})

	return replaceAllSubmatchFunc(atxHeader, text, func(m []string) string {
		return "\n" + s.hashBlock(s.header(len(m[1]), m[2])) + "\n\n"
	})
}

func (s *state) header(level int, text string) string {
	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ">" + s.runSpanGamut(text) + "</" + tag + ">"
}

// doHorizontalRules converts lines of three or more "-", "*" or "_" markers.
func (s *state) doHorizontalRules(text string) string {
	return horizontalRule.ReplaceAllStringFunc(text, func(string) string {
		return "\n" + s.hashBlock("<hr"+s.voidSuffix) + "\n"
	})
}

// doCodeBlocks converts runs of lines indented by at least one tab width
// that start the text or follow a blank line.
func (s *state) doCodeBlocks(text string) string {
	indent := strings.Repeat(" ", s.tabWidth)

	var b strings.Builder
	last := 0
	for i := 0; i < len(text); i++ {
		start := -1
		switch {
		case strings.HasPrefix(text[i:], "\n\n"):
			start = i + 2
		case i == 0:
			start = 0
			if text[0] == '\n' {
				start = 1
			}
		default:
			continue
		}

		end := codeBlockEnd(text, start, indent)
		if end < 0 {
			continue
		}
		code := outdent(text[start:end], s.tabWidth)
		code = strings.Trim(encodeCode(code), "\n")

		b.WriteString(text[last:i])
		b.WriteString("\n\n")
		b.WriteString(s.hashBlock("<pre><code>" + code + "\n</code></pre>"))
		b.WriteString("\n\n")
		last = end
		i = end - 1
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// codeBlockEnd consumes consecutive lines starting with indent, each with
// the newlines that follow it, and returns the offset past the last one.
func codeBlockEnd(text string, start int, indent string) int {
	end := -1
	for p := start; strings.HasPrefix(text[p:], indent); {
		nl := strings.IndexByte(text[p:], '\n')
		if nl < 0 {
			break
		}
		p += nl
		for p < len(text) && text[p] == '\n' {
			p++
		}
		end = p
	}
	return end
}

// doBlockQuotes converts groups of ">" lines, their lazy continuation
// lines and trailing blank lines into blockquotes. The quoted text is run
// through the block gamut again.
func (s *state) doBlockQuotes(text string) string {
	return blockQuote.ReplaceAllStringFunc(text, func(bq string) string {
		bq = quoteMarker.ReplaceAllString(bq, "")
		bq = s.runBlockGamut(bq)
		bq = indentLines(bq, "  ")
		// Indentation inside <pre> is content; take it back out.
		bq = preInQuote.ReplaceAllStringFunc(bq, func(pre string) string {
			return quoteIndent.ReplaceAllString(pre, "")
		})
		return "\n" + s.hashBlock("<blockquote>\n"+bq+"\n</blockquote>") + "\n\n"
	})
}

// formParagraphs splits text on blank lines. Block placeholders are
// restored as they are; every other chunk goes through the span gamut and
// is wrapped in <p>.
func (s *state) formParagraphs(text string) string {
	text = strings.Trim(text, "\n")
	if text == "" {
		return ""
	}

	chunks := paragraphBreaks.Split(text, -1)
	grafs := chunks[:0]
	for _, chunk := range chunks {
		if chunk == "" {
			continue
		}
		if isBlockPlaceholder(chunk) {
			grafs = append(grafs, s.unhash(chunk))
			continue
		}
		p := strings.TrimLeft(s.runSpanGamut(chunk), " ")
		grafs = append(grafs, s.unhash("<p>"+p+"</p>"))
	}
	return strings.Join(grafs, "\n\n")
}

// indentLines prefixes every line of text with prefix. A final newline
// does not start a new line.
func indentLines(text, prefix string) string {
	if text == "" {
		return prefix
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	out := prefix + strings.Join(lines, "\n"+prefix)
	if strings.HasSuffix(text, "\n") {
		out += "\n"
	}
	return out
}

// replaceAllSubmatchFunc is ReplaceAllStringFunc with access to submatches.
// Groups that did not participate are "".
func replaceAllSubmatchFunc(re *regexp.Regexp, text string, fn func(m []string) string) string {
	return replaceAllIndexFunc(re, text, func(loc []int) string {
		m := make([]string, len(loc)/2)
		for n := range m {
			m[n] = group(text, loc, n)
		}
		return fn(m)
	})
}

// replaceAllIndexFunc replaces every match of re with the result of fn,
// which receives the submatch offsets of the match.
func replaceAllIndexFunc(re *regexp.Regexp, text string, fn func(loc []int) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		b.WriteString(text[last:loc[0]])
		b.WriteString(fn(loc))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
