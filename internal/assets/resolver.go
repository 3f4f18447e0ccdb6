package assets

import (
	"errors"
	"slices"
)

// StyleResolver looks styles up in a user directory first, then among the
// built-in styles.
type StyleResolver struct {
	custom   *FilesystemLoader // nil without a user directory
	embedded *EmbeddedLoader
}

// NewStyleResolver creates a StyleResolver. An empty customBasePath uses
// the built-in styles only.
func NewStyleResolver(customBasePath string) (*StyleResolver, error) {
	r := &StyleResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle returns the style called name. An empty name selects
// DefaultStyleName. Only ErrStyleNotFound from the user directory falls
// back to the built-in styles.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	if name == "" {
		name = DefaultStyleName
	}
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// Names lists every loadable style without duplicates, sorted.
func (r *StyleResolver) Names() []string {
	names := r.embedded.Names()
	if r.custom != nil {
		names = append(names, r.custom.Names()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// HasCustomLoader reports whether a user directory is configured.
func (r *StyleResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*StyleResolver)(nil)
