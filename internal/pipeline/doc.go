// Package pipeline implements the stages around Markdown-to-HTML conversion.
//
// Stages:
//   - Conversion through an HTMLConverter: ClassicConverter runs the
//     classic dialect engine (internal/markdown); GoldmarkConverter runs
//     CommonMark with GFM extensions via goldmark
//   - Code block highlighting with chroma
//   - Relative path rebasing from the source directory to the output directory
//   - Standalone document wrapping and CSS injection
//
// Neither engine observes a context while it works, so converters run the
// engine in a goroutine and give up on it when the context is done.
package pipeline
