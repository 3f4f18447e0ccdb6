package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// emphasisKind selects the markup produced by a closing marker run.
type emphasisKind int

const (
	emphasis       emphasisKind = iota // <em>
	strongEmphasis                     // <strong>
	emphasisStrong                     // <strong><em>
)

func (k emphasisKind) wrap(text string) string {
	switch k {
	case strongEmphasis:
		return "<strong>" + text + "</strong>"
	case emphasisStrong:
		return "<strong><em>" + text + "</em></strong>"
	}
	return "<em>" + text + "</em>"
}

// emphasisFrame is an open marker run with the text gathered since it
// opened.
type emphasisFrame struct {
	marker string
	text   strings.Builder
}

// emphasisScanner converts "*" and "_" runs of one to three characters
// into <em> and <strong>. It keeps a stack of open frames over a root
// frame, the currently open em and strong markers, and whether the top
// frame is an undivided three-character opener.
type emphasisScanner struct {
	s      *state
	text   string
	stack  []*emphasisFrame
	em     string
	strong string
	triple bool
}

// doItalicsAndBold runs the emphasis automaton over text. Markers that
// never close are emitted literally.
func (s *state) doItalicsAndBold(text string) string {
	if !strings.ContainsAny(text, "*_") {
		return text
	}
	sc := &emphasisScanner{s: s, text: text, stack: []*emphasisFrame{{}}}
	return sc.run()
}

func (sc *emphasisScanner) top() *emphasisFrame {
	return sc.stack[len(sc.stack)-1]
}

func (sc *emphasisScanner) push(marker string) {
	sc.stack = append(sc.stack, &emphasisFrame{marker: marker})
}

func (sc *emphasisScanner) pop() *emphasisFrame {
	f := sc.top()
	sc.stack = sc.stack[:len(sc.stack)-1]
	return f
}

// close pops the top frame and appends its rendered span to the frame
// below.
func (sc *emphasisScanner) close(kind emphasisKind) {
	f := sc.pop()
	sc.top().text.WriteString(sc.s.emphasize(kind, f.text.String()))
}

// unwind pops the top frame and appends it, marker included, to the frame
// below as literal text.
func (sc *emphasisScanner) unwind() {
	f := sc.pop()
	below := sc.top()
	below.text.WriteString(f.marker)
	below.text.WriteString(f.text.String())
}

func (sc *emphasisScanner) run() string {
	pos := 0
	for {
		at, n, ok := sc.nextToken(pos)
		if !ok {
			sc.top().text.WriteString(sc.text[pos:])
			for len(sc.stack) > 1 {
				sc.unwind()
			}
			return sc.top().text.String()
		}
		sc.top().text.WriteString(sc.text[pos:at])
		sc.handle(sc.text[at : at+n])
		pos = at + n
	}
}

// handle applies one marker run to the automaton.
func (sc *emphasisScanner) handle(token string) {
	n := len(token)
	switch {
	case sc.triple:
		if n == 3 {
			sc.close(emphasisStrong)
			sc.em, sc.strong = "", ""
		} else {
			// Close one half of the three-character opener; the frame
			// stays open for the other half.
			f := sc.top()
			kind := emphasis
			if n == 2 {
				kind = strongEmphasis
			}
			span := sc.s.emphasize(kind, f.text.String())
			f.marker = strings.Repeat(token[:1], 3-n)
			f.text.Reset()
			f.text.WriteString(span)
			if n == 2 {
				sc.strong = ""
			} else {
				sc.em = ""
			}
		}
		sc.triple = false

	case n == 3 && sc.em != "":
		// Closes both open frames, innermost first.
		for range 2 {
			kind := emphasis
			if len(sc.top().marker) == 2 {
				kind = strongEmphasis
			}
			sc.close(kind)
		}
		sc.em, sc.strong = "", ""

	case n == 3:
		sc.push(token)
		sc.em, sc.strong = token[:1], token[:2]
		sc.triple = true

	case n == 2 && sc.strong != "":
		// An em opened inside this strong cannot outlive it.
		if len(sc.top().marker) == 1 {
			sc.unwind()
			sc.em = ""
		}
		sc.close(strongEmphasis)
		sc.strong = ""

	case n == 2:
		sc.push(token)
		sc.strong = token

	case sc.em != "":
		if len(sc.top().marker) == 1 {
			sc.close(emphasis)
			sc.em = ""
		} else {
			sc.top().text.WriteString(token)
		}

	default:
		sc.push(token)
		sc.em = token
	}
}

// nextToken finds the next marker run at or after pos that is a valid
// token in the current state, returning its offset and length.
func (sc *emphasisScanner) nextToken(pos int) (int, int, bool) {
	text := sc.text
	for i := pos; i < len(text); i++ {
		c := text[i]
		if c != '*' && c != '_' {
			continue
		}
		j := i
		for j < len(text) && text[j] == c {
			j++
		}
		// Runs are tokens only when taken whole.
		if i > 0 && text[i-1] == c {
			i = j - 1
			continue
		}
		if sc.accepts(i, j) {
			return i, j - i, true
		}
		i = j - 1
	}
	return 0, 0, false
}

// accepts reports whether the run text[i:j] is an opening or closing
// marker allowed in the current state.
func (sc *emphasisScanner) accepts(i, j int) bool {
	c := sc.text[i]
	switch j - i {
	case 1:
		return sc.acceptsMarker(sc.em, c, i, j)
	case 2:
		return sc.acceptsMarker(sc.strong, c, i, j)
	case 3:
		switch {
		case sc.em == "" && sc.strong == "":
			return sc.opens(i, j)
		case sc.em != "" && sc.strong == sc.em+sc.em && sc.em[0] == c:
			return sc.closes(i, j)
		}
	}
	return false
}

// acceptsMarker checks a run against one open marker: with nothing open
// the run must open, otherwise it must close with the same character.
func (sc *emphasisScanner) acceptsMarker(open string, c byte, i, j int) bool {
	if open == "" {
		return sc.opens(i, j)
	}
	return open[0] == c && sc.closes(i, j)
}

// opens reports whether the run text[i:j] can open emphasis: it is
// followed by a non-space that is not punctuation and then space, and an
// underscore run is not preceded by a word character.
func (sc *emphasisScanner) opens(i, j int) bool {
	text := sc.text
	if j < len(text) && isSpaceByte(text[j]) && text[j:] != "\n" {
		return false
	}
	if j+1 < len(text) && strings.IndexByte(".,:;", text[j]) >= 0 && isSpaceByte(text[j+1]) {
		return false
	}
	if text[i] == '_' && i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		return !isWordRune(r)
	}
	return true
}

// closes reports whether the run text[i:j] can close emphasis: it follows
// a non-space, and an underscore run is not followed by a word character.
func (sc *emphasisScanner) closes(i, j int) bool {
	text := sc.text
	if i > 0 && isSpaceByte(text[i-1]) {
		return false
	}
	if text[i] == '_' && j < len(text) {
		r, _ := utf8.DecodeRuneInString(text[j:])
		return !isWordRune(r)
	}
	return true
}

// isWordRune reports whether r continues a word for underscore emphasis.
// Placeholder boundaries are seen here too: the letters of the generic and
// block boundaries count as word characters, the ":" of the word boundary
// does not.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// emphasize renders a closed span. The content is run through the span
// gamut again, so markers of the other kind inside it still convert, and
// the result is protected from the enclosing scan.
func (s *state) emphasize(kind emphasisKind, text string) string {
	return s.hashPart(kind.wrap(s.spanGamut(text, true)), genericBoundary)
}
