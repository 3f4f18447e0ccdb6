package markdown

import "strings"

var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// encodeCode escapes text for a code span or block. Every ampersand is
// encoded, entities included, since code is shown literally.
func encodeCode(text string) string {
	return codeEscaper.Replace(text)
}

// encodeAmpsAndAngles encodes ampersands that do not start a character
// reference, then every remaining "<". With NoEntities set, all ampersands
// are encoded.
func (s *state) encodeAmpsAndAngles(text string) string {
	if !strings.ContainsAny(text, "&<") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 16)
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '&':
			if !s.noEntities && isEntityAt(text, i) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// encodeAttribute encodes text for a double-quoted attribute value.
func (s *state) encodeAttribute(text string) string {
	return strings.ReplaceAll(s.encodeAmpsAndAngles(text), `"`, "&quot;")
}

// isEntityAt reports whether the ampersand at i starts a named, decimal or
// hexadecimal character reference such as "&amp;", "&#38;" or "&#x26;".
func isEntityAt(text string, i int) bool {
	j := i + 1
	if j < len(text) && text[j] == '#' {
		j++
	}
	start := j
	for j < len(text) && isWordByte(text[j]) {
		j++
	}
	return j > start && j < len(text) && text[j] == ';'
}

func isWordByte(c byte) bool {
	return c == '_' || isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
