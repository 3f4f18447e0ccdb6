package markdown

import "strings"

const byteOrderMark = "\uFEFF"

// normalize canonicalizes raw input: it drops a leading byte order mark and
// every SUB control character (the placeholder marker), converts CR and
// CRLF line endings, expands tabs to the next tab stop and empties lines
// that hold only spaces. The result ends with two extra newlines so that
// every block-level pattern can rely on a terminating blank line.
func normalize(text string, tabWidth int) string {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, placeholderMarker, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = detab(text, tabWidth)
	text = blankSpaceOnlyLines(text)
	return text + "\n\n"
}

// detab replaces each tab with the spaces needed to reach the next multiple
// of tabWidth. Columns are counted in runes.
func detab(text string, tabWidth int) string {
	if !strings.Contains(text, "\t") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	col := 0
	for _, r := range text {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// blankSpaceOnlyLines empties lines consisting only of spaces, so that a
// blank line is always a plain run of newlines downstream.
func blankSpaceOnlyLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" && strings.Trim(line, " ") == "" {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// outdent removes one level of indentation (up to tabWidth spaces) from
// every line of text.
func outdent(text string, tabWidth int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		n := 0
		for n < len(line) && n < tabWidth && line[n] == ' ' {
			n++
		}
		lines[i] = line[n:]
	}
	return strings.Join(lines, "\n")
}
