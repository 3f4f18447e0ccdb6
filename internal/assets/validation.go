package assets

import (
	"fmt"
	"strings"
)

// StyleLoader loads a stylesheet by name, given without the .css extension.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

// ValidateAssetName checks that name can be used as a file name stem.
// Dots are refused along with separators so a name cannot pick its own
// extension or climb out of the style directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
