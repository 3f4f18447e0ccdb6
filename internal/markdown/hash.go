package markdown

import (
	"fmt"
	"strconv"
	"strings"
)

// placeholderMarker separates the boundary character from the counter in a
// placeholder token. Normalization strips it from input, so every
// occurrence in the working text belongs to a token.
const placeholderMarker = "\x1A"

// boundary tags a placeholder with how later passes must treat it.
type boundary byte

const (
	// blockBoundary marks block-level content that is never wrapped in a
	// paragraph.
	blockBoundary boundary = 'B'
	// wordBoundary marks content that separates words, such as inline tags
	// and line breaks. Emphasis treats it like punctuation.
	wordBoundary boundary = ':'
	// genericBoundary marks inline content that reads as part of a word.
	genericBoundary boundary = 'X'
)

// hashPart stores text under a fresh placeholder token and returns the
// token. Placeholders already inside text are restored first, so a stored
// value never contains another token and one unhash pass is enough.
func (s *state) hashPart(text string, b boundary) string {
	text = s.unhash(text)
	s.counter++
	key := string(rune(b)) + placeholderMarker + strconv.Itoa(s.counter) + string(rune(b))
	s.hashes[key] = text
	return key
}

// hashBlock is hashPart with a block boundary.
func (s *state) hashBlock(text string) string {
	return s.hashPart(text, blockBoundary)
}

// unhash replaces every placeholder token in text by its stored value. A
// well-formed token without a table entry is an engine bug and panics with
// ErrUnknownPlaceholder.
func (s *state) unhash(text string) string {
	if !strings.Contains(text, placeholderMarker) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := 1; i < len(text); i++ {
		if text[i] != placeholderMarker[0] || !isBoundary(text[i-1]) {
			continue
		}
		end, ok := placeholderEnd(text, i)
		if !ok {
			continue
		}
		key := text[i-1 : end]
		value, found := s.hashes[key]
		if !found {
			panic(fmt.Errorf("%w: %q", ErrUnknownPlaceholder, key))
		}
		b.WriteString(text[last : i-1])
		b.WriteString(value)
		last = end
		i = end - 1
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// placeholderEnd checks for a token whose marker sits at i and returns the
// offset just past its closing boundary.
func placeholderEnd(text string, i int) (int, bool) {
	j := i + 1
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	if j == i+1 || j >= len(text) || text[j] != text[i-1] {
		return 0, false
	}
	return j + 1, true
}

// isBlockPlaceholder reports whether text is exactly one block token.
func isBlockPlaceholder(text string) bool {
	if len(text) < 4 || text[0] != byte(blockBoundary) || text[1] != placeholderMarker[0] {
		return false
	}
	end, ok := placeholderEnd(text, 1)
	return ok && end == len(text)
}

func isBoundary(c byte) bool {
	return c == byte(blockBoundary) || c == byte(wordBoundary) || c == byte(genericBoundary)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
