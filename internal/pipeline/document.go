package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrDocumentRender indicates the document template failed to render.
var ErrDocumentRender = errors.New("document template rendering failed")

// DefaultDocumentTitle is used when a standalone document has no title.
const DefaultDocumentTitle = "Document"

// documentTemplate wraps a converted fragment in a complete HTML5 document.
// The title is escaped by html/template; the body is trusted engine output.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}</body>
</html>
`))

// DocumentWrapper defines the contract for standalone document wrapping.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, fragment, title string) (string, error)
}

// DocumentWrap renders fragments into the HTML5 document template.
type DocumentWrap struct{}

// WrapDocument returns fragment inside an HTML5 document titled title.
func (DocumentWrap) WrapDocument(ctx context.Context, fragment, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultDocumentTitle
	}

	data := struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(fragment)} // #nosec G203 -- engine output is the document body

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}
