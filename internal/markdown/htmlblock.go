package markdown

import "strings"

// maxTagNesting bounds how deeply a block element may nest elements of its
// own name. Deeper nesting only matches when the innermost element closes
// on the line it opens.
const maxTagNesting = 4

// blockTags may open a raw HTML block anywhere their start tag ends.
var blockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true, "pre": true, "table": true,
	"dl": true, "ol": true, "ul": true, "address": true, "script": true,
	"noscript": true, "form": true, "fieldset": true, "iframe": true, "math": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// lineBlockTags are inline elements that form a block only when their
// start tag ends the line.
var lineBlockTags = map[string]bool{"ins": true, "del": true}

// hashHTMLBlocks protects raw HTML blocks that start a document or follow a
// blank line: whitelisted elements through their matching end tag, <hr>
// tags, comments and processing instructions. Each block is replaced by a
// block placeholder surrounded by blank lines.
func (s *state) hashHTMLBlocks(text string) string {
	if s.noMarkup {
		return text
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(text); i++ {
		start := i
		switch {
		case i == 0:
			if text[0] == '\n' {
				start = 1
			}
		case i >= 2 && text[i-2] == '\n' && text[i-1] == '\n':
		default:
			continue
		}

		end := s.htmlBlockEnd(text, start)
		if end < 0 {
			continue
		}
		b.WriteString(text[last:i])
		b.WriteString("\n\n")
		b.WriteString(s.hashBlock(text[start:end]))
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

// htmlBlockEnd returns the offset just past the HTML block starting at
// start, or -1.
func (s *state) htmlBlockEnd(text string, start int) int {
	p := start
	for p < len(text) && text[p] == ' ' && p-start < s.tabWidth-1 {
		p++
	}
	if p >= len(text) || text[p] != '<' {
		return -1
	}

	rest := text[p:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		return delimitedBlockEnd(text, p+4, "-->")
	case strings.HasPrefix(rest, "<?"), strings.HasPrefix(rest, "<%"):
		return delimitedBlockEnd(text, p+2, rest[1:2]+">")
	}

	q := p + 1
	for q < len(text) && isAlnum(text[q]) {
		q++
	}
	name := strings.ToLower(text[p+1 : q])
	switch {
	case blockTags[name]:
		return elementBlockEnd(text, q, name, false)
	case lineBlockTags[name]:
		return elementBlockEnd(text, q, name, true)
	case name == "hr":
		return hrBlockEnd(text, q)
	}
	return -1
}

// elementBlockEnd matches the rest of a start tag, the element content and
// the end tag, then requires the end tag to close its line.
func elementBlockEnd(text string, q int, name string, ownLine bool) int {
	q = scanAttributes(text, q)
	if q >= len(text) || text[q] != '>' {
		return -1
	}
	q++
	if ownLine {
		q = skipSpaces(text, q)
		if q >= len(text) || text[q] != '\n' {
			return -1
		}
		q++
	}

	q = scanTagContent(text, q, name, maxTagNesting)
	closer := "</" + name + ">"
	if !hasPrefixFold(text[q:], closer) {
		return -1
	}
	q = skipSpaces(text, q+len(closer))
	if q < len(text) && text[q] != '\n' {
		return -1
	}
	return q
}

// hrBlockEnd matches the rest of an <hr> tag standing alone before a blank
// line.
func hrBlockEnd(text string, q int) int {
	q = scanAttributes(text, q)
	if q < len(text) && text[q] == '/' {
		q++
	}
	if q >= len(text) || text[q] != '>' {
		return -1
	}
	q = skipSpaces(text, q+1)
	if !atBlankLineOrEnd(text, q) {
		return -1
	}
	return q
}

// delimitedBlockEnd matches comments and processing instructions: the
// first closer after from that is followed by a blank line or the end.
func delimitedBlockEnd(text string, from int, closer string) int {
	for from <= len(text) {
		j := strings.Index(text[from:], closer)
		if j < 0 {
			return -1
		}
		end := skipSpaces(text, from+j+len(closer))
		if atBlankLineOrEnd(text, end) {
			return end
		}
		from += j + 1
	}
	return -1
}

// scanAttributes skips the attribute list of a tag. Quoted values may
// contain ">"; a "/" directly before ">" ends the list.
func scanAttributes(text string, i int) int {
	if i >= len(text) || !isSpaceByte(text[i]) {
		return i
	}
	i++
	for i < len(text) {
		switch c := text[i]; c {
		case '>':
			return i
		case '"', '\'':
			j := strings.IndexByte(text[i+1:], c)
			if j < 0 {
				return i
			}
			i += j + 2
		case '/':
			j := i
			for j < len(text) && text[j] == '/' {
				j++
			}
			if j < len(text) && text[j] == '>' {
				return i
			}
			i = j
		default:
			i++
		}
	}
	return i
}

// scanTagContent skips element content up to the end tag of name, stepping
// over nested elements of the same name. depth is the nesting still
// allowed below this level.
func scanTagContent(text string, i int, name string, depth int) int {
	for i < len(text) {
		if text[i] != '<' {
			j := strings.IndexByte(text[i:], '<')
			if j < 0 {
				return len(text)
			}
			i += j
			continue
		}
		if closingTagLen(text, i, name) > 0 {
			return i
		}
		if end, ok := nestedElementEnd(text, i, name, depth-1); ok {
			i = end
			continue
		}
		i++
	}
	return i
}

// nestedElementEnd matches a same-name element opening at i. At depth zero
// its content must close on the same line.
func nestedElementEnd(text string, i int, name string, depth int) (int, bool) {
	if !hasPrefixFold(text[i+1:], name) {
		return 0, false
	}
	q := scanAttributes(text, i+1+len(name))
	if strings.HasPrefix(text[q:], "/>") {
		return q + 2, true
	}
	if q >= len(text) || text[q] != '>' {
		return 0, false
	}
	q++

	var c int
	if depth > 0 {
		c = scanTagContent(text, q, name, depth)
	} else {
		c = sameLineCloser(text, q, name)
		if c < 0 {
			return 0, false
		}
	}
	n := closingTagLen(text, c, name)
	if n == 0 {
		return 0, false
	}
	return c + n, true
}

// sameLineCloser finds the first end tag of name between i and the next
// newline.
func sameLineCloser(text string, i int, name string) int {
	for ; i < len(text) && text[i] != '\n'; i++ {
		if closingTagLen(text, i, name) > 0 {
			return i
		}
	}
	return -1
}

// closingTagLen returns the length of an end tag of name at i, allowing
// whitespace before ">", or 0.
func closingTagLen(text string, i int, name string) int {
	if !strings.HasPrefix(text[i:], "</") || !hasPrefixFold(text[i+2:], name) {
		return 0
	}
	j := i + 2 + len(name)
	for j < len(text) && isSpaceByte(text[j]) {
		j++
	}
	if j >= len(text) || text[j] != '>' {
		return 0
	}
	return j + 1 - i
}

// atBlankLineOrEnd reports whether a blank line or the end of text (an
// optional final newline aside) follows i.
func atBlankLineOrEnd(text string, i int) bool {
	rest := text[i:]
	return rest == "" || rest == "\n" || strings.HasPrefix(rest, "\n\n")
}

func skipSpaces(text string, i int) int {
	for i < len(text) && text[i] == ' ' {
		i++
	}
	return i
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')
}
