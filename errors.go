package md2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrInternal       = errors.New("internal error")

	// Option validation errors.
	ErrInvalidEngine         = errors.New("invalid engine")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")

	// Post-processing errors.
	ErrHighlight      = errors.New("code highlighting failed")
	ErrPathRebase     = errors.New("relative path rebasing failed")
	ErrDocumentRender = errors.New("document rendering failed")
)
