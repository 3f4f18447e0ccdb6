package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// compileLinkDefRegexp builds the link definition pattern:
//
//	[id]: url "optional title"
//
// The id is indented by less than a tab, the URL is bare or in angle
// brackets, and the title is quoted or parenthesized. URL and title may
// each move to the next line. A title must be separated from the URL by
// whitespace.
func compileLinkDefRegexp(tabWidth int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?m)^[ ]{0,%d}\[(.+)\][ ]?:[ ]*\n?[ ]*(?:<(.+?)>|(\S+?))`+
			`(?:(?:[ ]+\n?[ ]*|\n[ ]*)(?:["(](.*?)[")][ ]*)?)?(?:\n+|\z)`,
		tabWidth-1,
	))
}

// stripLinkDefinitions removes link definitions from text and records them
// in the link table. A later definition of the same id wins.
func (s *state) stripLinkDefinitions(text string) string {
	matches := s.linkDefRegexp.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]

		def := linkDef{url: group(text, m, 3)}
		if m[4] >= 0 {
			def.url = group(text, m, 2)
		}
		if m[8] >= 0 {
			def.title = group(text, m, 4)
			def.hasTitle = true
		}
		s.links[strings.ToLower(group(text, m, 1))] = def
	}
	b.WriteString(text[last:])
	return b.String()
}

// group returns submatch n of a FindStringSubmatchIndex result, or "" when
// the group did not take part in the match.
func group(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}
