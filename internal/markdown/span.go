package markdown

import (
	"hash/crc32"
	"regexp"
	"strconv"
	"strings"
)

// escapable lists the characters a backslash turns into literals.
const escapable = "\\`*_{}[]()>#+-.!"

var (
	autoLinkURL   = regexp.MustCompile(`(?i)<((?:https?|ftp|dict):[^'">\s]+)>`)
	autoLinkEmail = regexp.MustCompile(`(?i)<(?:mailto:)?((?:[-!#$%&'*+/=?^_` + "`" + `.{|}~\w\x{80}-\x{10FFFF}]+|".*?")` +
		`@(?:[-a-z0-9\x{80}-\x{10FFFF}]+(?:\.[-a-z0-9\x{80}-\x{10FFFF}]+)*\.[a-z]+|\[[\d.a-fA-F:]+\]))>`)
	hardBreak = regexp.MustCompile(` {2,}\n`)
)

// runSpanGamut runs the inline passes over one block's text.
func (s *state) runSpanGamut(text string) string {
	return s.spanGamut(text, false)
}

// spanGamut runs the inline passes. A reentrant run works on text that was
// already entity-encoded by an enclosing run and skips that pass.
func (s *state) spanGamut(text string, reentrant bool) string {
	text = s.parseSpan(text)
	text = s.doImages(text)
	text = s.doAnchors(text)
	text = s.doAutoLinks(text)
	if !reentrant {
		text = s.encodeAmpsAndAngles(text)
	}
	text = s.doItalicsAndBold(text)
	return s.doHardBreaks(text)
}

// parseSpan tokenizes text left to right, protecting backslash escapes,
// code spans and, unless markup is disabled, inline HTML: comments,
// processing instructions and tags.
func (s *state) parseSpan(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	segment := 0
	last := 0
	for i := 0; i < len(text); {
		replacement, end, ok := s.spanToken(text, i, segment)
		if !ok {
			i++
			continue
		}
		b.WriteString(text[last:i])
		b.WriteString(replacement)
		last, segment, i = end, end, end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// spanToken recognizes a token at i. segment is where the text following
// the previous token starts: a backtick run may not follow a backtick or a
// backslash inside the current segment.
func (s *state) spanToken(text string, i, segment int) (string, int, bool) {
	switch c := text[i]; {
	case c == '\\':
		if i+1 < len(text) && strings.IndexByte(escapable, text[i+1]) >= 0 {
			return s.hashPart("&#"+strconv.Itoa(int(text[i+1]))+";", genericBoundary), i + 2, true
		}
	case c == '`':
		if i > segment && (text[i-1] == '`' || text[i-1] == '\\') {
			return "", 0, false
		}
		return s.codeSpan(text, i)
	case c == '<' && !s.noMarkup:
		if end := inlineHTMLEnd(text, i); end > 0 {
			return s.hashPart(text[i:end], wordBoundary), end, true
		}
	}
	return "", 0, false
}

// codeSpan matches a backtick run at i with a closing run of the same
// length. Without a closer the run is emitted as literal text.
func (s *state) codeSpan(text string, i int) (string, int, bool) {
	j := i
	for j < len(text) && text[j] == '`' {
		j++
	}
	run := text[i:j]

	for k := j + 1; k+len(run) <= len(text); k++ {
		if text[k-1] == '`' || !strings.HasPrefix(text[k:], run) {
			continue
		}
		if k+len(run) < len(text) && text[k+len(run)] == '`' {
			continue
		}
		code := strings.Trim(text[j:k], " \t\n\r\x00\x0B")
		return s.hashPart("<code>"+encodeCode(code)+"</code>", genericBoundary), k + len(run), true
	}
	return run, j, true
}

// inlineHTMLEnd returns the offset past a comment, processing instruction
// or tag starting at i, or -1.
func inlineHTMLEnd(text string, i int) int {
	rest := text[i:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		if j := strings.Index(rest[4:], "-->"); j >= 0 {
			return i + 4 + j + 3
		}
	case strings.HasPrefix(rest, "<?"), strings.HasPrefix(rest, "<%"):
		if j := strings.Index(rest[2:], rest[1:2]+">"); j >= 0 {
			return i + 2 + j + 2
		}
		return -1
	}

	j := i + 1
	if j < len(text) && (text[j] == '/' || text[j] == '!' || text[j] == '$') {
		j++
	}
	name := j
	for j < len(text) && (isAlnum(text[j]) || text[j] == '-' || text[j] == ':' || text[j] == '_') {
		j++
	}
	if j == name {
		return -1
	}
	if j < len(text) && isSpaceByte(text[j]) {
		if k := scanQuotedAttributes(text, j+1); k < len(text) && text[k] == '>' {
			return k + 1
		}
	}
	if j < len(text) && text[j] == '>' {
		return j + 1
	}
	return -1
}

// scanQuotedAttributes skips attribute text where both single- and
// double-quoted values may contain ">".
func scanQuotedAttributes(text string, i int) int {
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
		default:
			i++
		}
	}
	return i
}

// doAutoLinks converts <scheme:...> URLs and <address@host> forms.
func (s *state) doAutoLinks(text string) string {
	text = replaceAllSubmatchFunc(autoLinkURL, text, func(m []string) string {
		url := s.encodeAttribute(m[1])
		return s.hashPart(`<a href="`+url+`">`+url+"</a>", genericBoundary)
	})
	return replaceAllSubmatchFunc(autoLinkEmail, text, func(m []string) string {
		return s.hashPart(obfuscateEmail(m[1]), genericBoundary)
	})
}

// obfuscateEmail renders a mailto link whose ASCII characters are spelled
// as a mix of decimal and hexadecimal character references, with a few
// left raw. The choice is a deterministic function of the address, and
// "@" is always encoded.
func obfuscateEmail(addr string) string {
	addr = "mailto:" + addr
	seed := uint64(crc32.ChecksumIEEE([]byte(addr))) / uint64(len(addr))

	chars := make([]string, len(addr))
	for i := 0; i < len(addr); i++ {
		c := addr[i]
		chars[i] = addr[i : i+1]
		if c >= 0x80 {
			continue
		}
		r := seed * uint64(i+1) % 100
		switch {
		case r > 90 && c != '@':
		case r < 45:
			chars[i] = "&#x" + strconv.FormatInt(int64(c), 16) + ";"
		default:
			chars[i] = "&#" + strconv.Itoa(int(c)) + ";"
		}
	}

	href := strings.Join(chars, "")
	label := strings.Join(chars[len("mailto:"):], "")
	return `<a href="` + href + `">` + label + "</a>"
}

// doHardBreaks turns two or more spaces before a newline into a line break.
func (s *state) doHardBreaks(text string) string {
	return hardBreak.ReplaceAllStringFunc(text, func(string) string {
		return s.hashPart("<br"+s.voidSuffix+"\n", wordBoundary)
	})
}
