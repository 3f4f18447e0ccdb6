package markdown

import "errors"

// ErrUnknownPlaceholder is carried by the panic raised when a placeholder
// token has no stored content. It signals a protect/restore pairing bug in
// the engine, never bad input.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")
