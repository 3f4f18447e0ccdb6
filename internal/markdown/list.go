package markdown

import "strings"

// listKind selects the marker family of a list.
type listKind int

const (
	bulletList  listKind = iota // "*", "+" or "-"
	ordinalList                 // digits followed by "."
)

func (k listKind) tag() string {
	if k == bulletList {
		return "ul"
	}
	return "ol"
}

func (k listKind) other() listKind {
	return 1 - k
}

// markerEnd returns the offset past a list marker of kind k at i, or -1.
func (k listKind) markerEnd(text string, i int) int {
	if i >= len(text) {
		return -1
	}
	if k == bulletList {
		switch text[i] {
		case '*', '+', '-':
			return i + 1
		}
		return -1
	}
	j := i
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	if j == i || j >= len(text) || text[j] != '.' {
		return -1
	}
	return j + 1
}

// markerWithSpaceEnd returns the offset past a marker of kind k at i and
// the spaces after it. At least one space is required.
func (k listKind) markerWithSpaceEnd(text string, i int) int {
	m := k.markerEnd(text, i)
	if m < 0 || m >= len(text) || text[m] != ' ' {
		return -1
	}
	return skipSpaces(text, m)
}

// doLists converts bullet lists, then ordinal lists. At the top level a
// list must start the text or follow a blank line; inside a list any line
// may start one, which is what turns "8. text" into a sub-list item there
// and leaves it as prose in a top-level paragraph.
func (s *state) doLists(text string) string {
	for _, kind := range []listKind{bulletList, ordinalList} {
		text = s.replaceLists(text, kind)
	}
	return text
}

func (s *state) replaceLists(text string, kind listKind) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(text); i++ {
		starts := s.listStarts(text, i)
		for _, start := range starts {
			end := s.listEnd(text, start, kind)
			if end < 0 {
				continue
			}
			b.WriteString(text[last:i])
			b.WriteString(s.renderList(text[start:end], kind))
			last = end
			i = end - 1
			break
		}
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// listStarts returns where a list may begin for a match attempted at i. A
// top-level list swallows the newline that precedes it.
func (s *state) listStarts(text string, i int) []int {
	if s.listLevel > 0 {
		if i == 0 || text[i-1] == '\n' {
			return []int{i}
		}
		return nil
	}
	switch {
	case i > 0 && text[i-1] == '\n' && text[i] == '\n':
		return []int{i + 1}
	case i == 0 && text[0] == '\n':
		return []int{1, 0}
	case i == 0:
		return []int{0}
	}
	return nil
}

// listEnd returns the offset past a whole list of kind starting at start,
// or -1. The list runs to the end of text, to a blank line followed by
// something other than a same-kind item, or to a line that starts a list
// of the other kind at the same indentation.
func (s *state) listEnd(text string, start int, kind listKind) int {
	p := skipSpaces(text, start)
	if p-start > s.tabWidth-1 {
		return -1
	}
	indent := text[start:p]
	body := kind.markerWithSpaceEnd(text, p)
	if body < 0 || body >= len(text) {
		return -1
	}

	for q := body + 1; q <= len(text); q++ {
		if q == len(text) {
			return q
		}
		if text[q] != '\n' {
			continue
		}
		r := q
		for r < len(text) && text[r] == '\n' {
			r++
		}
		if r-q >= 2 && r < len(text) && !isSpaceByte(text[r]) &&
			kind.markerWithSpaceEnd(text, skipSpaces(text, r)) < 0 {
			return r
		}
		if strings.HasPrefix(text[q+1:], indent) &&
			kind.other().markerWithSpaceEnd(text, q+1+len(indent)) >= 0 {
			return q
		}
	}
	return -1
}

// renderList converts one whole list and returns its block placeholder.
func (s *state) renderList(list string, kind listKind) string {
	items := s.processListItems(list+"\n", kind)
	tag := kind.tag()
	return "\n" + s.hashBlock("<"+tag+">\n"+items+"</"+tag+">") + "\n\n"
}

// listItem is one item found by processListItems.
type listItem struct {
	indent      string
	markerWidth int
	text        string
	// loose is set when a blank line precedes or follows the item, or
	// separates paragraphs inside it.
	loose bool
}

// processListItems splits a list into items and renders each one as <li>.
func (s *state) processListItems(list string, kind listKind) string {
	s.listLevel++
	defer func() { s.listLevel-- }()

	list = strings.TrimRight(list, "\n") + "\n"

	var b strings.Builder
	last := 0
	for i := 0; i < len(list); i++ {
		item, end, ok := nextListItem(list, i, kind)
		if !ok {
			continue
		}
		b.WriteString(list[last:i])
		b.WriteString("<li>" + s.renderListItem(item) + "</li>\n")
		last = end
		i = end - 1
	}
	b.WriteString(list[last:])
	return b.String()
}

func (s *state) renderListItem(item listItem) string {
	if item.loose {
		text := item.indent + strings.Repeat(" ", item.markerWidth) + item.text
		return s.runBlockGamut(outdent(text, s.tabWidth) + "\n")
	}
	text := s.doLists(outdent(item.text, s.tabWidth))
	return s.runSpanGamut(strings.TrimRight(text, "\n"))
}

// nextListItem matches one item attempted at i: an optional blank line,
// the indentation, a marker followed by spaces or a newline, then the item
// text up to the next marker at the same indentation or the end of list.
func nextListItem(list string, i int, kind listKind) (listItem, int, bool) {
	var item listItem
	p := i
	if list[p] == '\n' {
		item.loose = true
		p++
	} else if p > 0 && list[p-1] != '\n' {
		return item, 0, false
	}

	q := skipSpaces(list, p)
	m := kind.markerEnd(list, q)
	if m < 0 || m >= len(list) || (list[m] != ' ' && list[m] != '\n') {
		return item, 0, false
	}
	c := skipSpaces(list, m)
	item.indent = list[p:q]
	item.markerWidth = c - q

	for e := c; e < len(list); e++ {
		if list[e] != '\n' {
			continue
		}
		r := e
		for r < len(list) && list[r] == '\n' {
			r++
		}
		if !itemFollows(list, r, item.indent, kind) {
			continue
		}
		item.text = list[c:e]
		tailingBlank := r-e >= 2
		if tailingBlank {
			r--
		}
		item.loose = item.loose || tailingBlank || strings.Contains(item.text, "\n\n")
		return item, r, true
	}
	return item, 0, false
}

// itemFollows reports whether the list ends at r or continues with a
// sibling item at exactly indent.
func itemFollows(list string, r int, indent string, kind listKind) bool {
	if r == len(list) {
		return true
	}
	if !strings.HasPrefix(list[r:], indent) {
		return false
	}
	m := kind.markerEnd(list, r+len(indent))
	return m >= 0 && m < len(list) && (list[m] == ' ' || list[m] == '\n')
}
