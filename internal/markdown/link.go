package markdown

import (
	"regexp"
	"strings"
)

const (
	// maxBracketDepth bounds nested [brackets] inside link text.
	maxBracketDepth = 6
	// maxURLParenDepth bounds nested (parentheses) inside inline URLs.
	maxURLParenDepth = 4
)

var (
	nestedBrackets = strings.Repeat(`(?:[^\[\]]+|\[`, maxBracketDepth) +
		strings.Repeat(`\])*`, maxBracketDepth)
	nestedURLParens = strings.Repeat(`(?:[^()\s]+|\(`, maxURLParenDepth) +
		strings.Repeat(`(?:\)))*`, maxURLParenDepth)

	// inlineTail matches the "(url "title")" part of inline links and
	// images. Groups: angle URL, bare URL, double-quoted title,
	// single-quoted title.
	inlineTail = `\([ \n]*(?:<%s>|(` + nestedURLParens + `))[ \n]*` +
		`(?:"(.*?)"[ \n]*|'(.*?)'[ \n]*)?\)`

	referenceLink  = regexp.MustCompile(`(?s)\[(` + nestedBrackets + `)\][ ]?(?:\n[ ]*)?\[(.*?)\]`)
	inlineLink     = regexp.MustCompile(`(?s)\[(` + nestedBrackets + `)\]` + withURLPattern(`(.+?)`))
	shortcutLink   = regexp.MustCompile(`\[([^\[\]]+)\]`)
	referenceImage = regexp.MustCompile(`(?s)!\[(` + nestedBrackets + `)\][ ]?(?:\n[ ]*)?\[(.*?)\]`)
	inlineImage    = regexp.MustCompile(`(?s)!\[(` + nestedBrackets + `)\]\s?` + withURLPattern(`(\S*)`))

	idNewline = regexp.MustCompile(` ?\n`)
)

func withURLPattern(url string) string {
	return strings.Replace(inlineTail, "%s", url, 1)
}

// normalizeLinkID lower-cases id and folds its line breaks into spaces.
func normalizeLinkID(id string) string {
	return idNewline.ReplaceAllString(strings.ToLower(id), " ")
}

// inlineTarget extracts URL and title from an inlineLink or inlineImage
// match. Group 2 holds the angle-bracketed URL.
func inlineTarget(text string, loc []int) (url, title string, hasTitle bool) {
	url = group(text, loc, 3)
	if loc[4] >= 0 {
		url = group(text, loc, 2)
	}
	switch {
	case loc[8] >= 0:
		return url, group(text, loc, 4), true
	case loc[10] >= 0:
		return url, group(text, loc, 5), true
	}
	return url, "", false
}

// doImages converts reference images, then inline images. Alt text is
// attribute-encoded, not span-processed.
func (s *state) doImages(text string) string {
	text = replaceAllSubmatchFunc(referenceImage, text, func(m []string) string {
		id := m[2]
		if id == "" {
			id = m[1]
		}
		def, ok := s.links[normalizeLinkID(id)]
		if !ok {
			return m[0]
		}
		return s.image(m[1], def.url, def.title, def.hasTitle)
	})

	return replaceAllIndexFunc(inlineImage, text, func(loc []int) string {
		url, title, hasTitle := inlineTarget(text, loc)
		return s.image(group(text, loc, 1), url, title, hasTitle)
	})
}

func (s *state) image(alt, url, title string, hasTitle bool) string {
	var b strings.Builder
	b.WriteString(`<img src="` + s.encodeAttribute(url) + `" alt="` + s.encodeAttribute(alt) + `"`)
	if hasTitle {
		b.WriteString(` title="` + s.encodeAttribute(title) + `"`)
	}
	b.WriteString(s.voidSuffix)
	return s.hashPart(b.String(), genericBoundary)
}

// doAnchors converts reference links, inline links and shortcut links, in
// that order. Link text is span-processed with anchor conversion switched
// off, so anchors never nest.
func (s *state) doAnchors(text string) string {
	if s.insideAnchor {
		return text
	}
	s.insideAnchor = true
	defer func() { s.insideAnchor = false }()

	text = replaceAllSubmatchFunc(referenceLink, text, func(m []string) string {
		return s.referenceAnchor(m[0], m[1], m[2])
	})

	text = replaceAllIndexFunc(inlineLink, text, func(loc []int) string {
		url, title, hasTitle := inlineTarget(text, loc)
		return s.anchor(group(text, loc, 1), url, title, hasTitle)
	})

	return replaceAllSubmatchFunc(shortcutLink, text, func(m []string) string {
		return s.referenceAnchor(m[0], m[1], "")
	})
}

// referenceAnchor resolves a reference link. An unknown id leaves the
// source text as it was.
func (s *state) referenceAnchor(source, linkText, id string) string {
	if id == "" {
		id = linkText
	}
	def, ok := s.links[normalizeLinkID(id)]
	if !ok {
		return source
	}
	return s.anchor(linkText, def.url, def.title, def.hasTitle)
}

func (s *state) anchor(linkText, url, title string, hasTitle bool) string {
	var b strings.Builder
	b.WriteString(`<a href="` + s.encodeAttribute(url) + `"`)
	if hasTitle {
		b.WriteString(` title="` + s.encodeAttribute(title) + `"`)
	}
	b.WriteString(">" + s.runSpanGamut(linkText) + "</a>")
	return s.hashPart(b.String(), genericBoundary)
}
