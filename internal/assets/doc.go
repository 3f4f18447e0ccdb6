// Package assets provides the stylesheets embedded in standalone HTML
// documents.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {name}.css files from a user directory
//	    └── StyleResolver     - user directory first, built-in fallback
//
// A user directory can shadow a built-in style by reusing its name, or add
// new ones. Only a missing style falls back; invalid names and read errors
// are reported as they are.
//
// # Security
//
// Style names are plain identifiers. FilesystemLoader resolves symlinks
// and refuses files outside its base directory.
package assets
