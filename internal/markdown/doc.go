// Package markdown implements the classic Markdown dialect: a two-phase
// text transformation (block structure first, then inline spans) built on a
// placeholder table that keeps generated or pass-through HTML opaque to the
// passes that run after it.
//
// The pipeline, in order:
//   - normalization (BOM, line endings, tabs, blank lines)
//   - raw HTML block protection
//   - link reference definition stripping
//   - block gamut: headers, rules, lists, code blocks, blockquotes, paragraphs
//   - span gamut, per paragraph: escapes, code spans, inline HTML, images,
//     links, autolinks, entity encoding, emphasis, hard breaks
//
// A Parser holds only immutable configuration. Every call to Transform owns
// its placeholder table, link table and nesting counters, so one Parser may
// be shared by goroutines.
package markdown
