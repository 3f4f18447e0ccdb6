package assets

import "errors"

// Sentinel errors for style loading.
var (
	// ErrStyleNotFound indicates no loader has a style by that name.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates a style name that is not a plain
	// identifier, such as one with path separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the style directory is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error while reading a style file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates a style file resolving outside the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
