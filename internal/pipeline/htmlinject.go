package pipeline

import (
	"context"
	"strings"
)

// Stylesheet is one CSS source embedded in a standalone document. Name is
// written to the data-source attribute of its <style> element.
type Stylesheet struct {
	Name    string
	Content string
}

// CSSInjector defines the contract for embedding stylesheets in a document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, document string, sheets ...Stylesheet) string
}

// CSSInjection embeds stylesheets as <style> elements in a document head.
type CSSInjection struct{}

// InjectCSS writes one <style> element per non-empty sheet, in order, just
// before </head>, so later sheets override earlier ones. A document with
// no head gets the elements prepended. A canceled ctx leaves the document
// unchanged.
func (CSSInjection) InjectCSS(ctx context.Context, document string, sheets ...Stylesheet) string {
	if ctx.Err() != nil {
		return document
	}

	var block strings.Builder
	for _, sheet := range sheets {
		css := strings.TrimSpace(sheet.Content)
		if css == "" {
			continue
		}
		block.WriteString(`<style data-source="` + sheet.Name + `">` + "\n")
		block.WriteString(neutralizeStyleEnd(css))
		block.WriteString("\n</style>\n")
	}
	if block.Len() == 0 {
		return document
	}

	at := strings.Index(strings.ToLower(document), "</head>")
	if at < 0 {
		return block.String() + document
	}
	return document[:at] + block.String() + document[at:]
}

// neutralizeStyleEnd keeps css from closing its <style> element. "</" has
// no meaning in CSS outside strings, where "<\/" reads the same.
func neutralizeStyleEnd(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
