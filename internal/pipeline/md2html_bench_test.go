//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/markdown"
)

func benchConverters() []struct {
	name      string
	converter HTMLConverter
} {
	return []struct {
		name      string
		converter HTMLConverter
	}{
		{"classic", NewClassicConverter(markdown.Options{})},
		{"goldmark", NewGoldmarkConverter(GoldmarkOptions{})},
	}
}

// BenchmarkToHTML benchmarks markdown to HTML conversion on both engines.
func BenchmarkToHTML(b *testing.B) {
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"paragraph", strings.Repeat("This is a paragraph with some text.\n\n", 10)},
		{"headings", generateHeadingsMarkdown(20)},
		{"code_blocks", generateCodeBlocksMarkdown(10)},
		{"nested_lists", generateNestedListMarkdown(20)},
		{"mixed_small", generateMixedMarkdown(10)},
		{"mixed_medium", generateMixedMarkdown(50)},
		{"mixed_large", generateMixedMarkdown(200)},
	}

	for _, c := range benchConverters() {
		for _, input := range inputs {
			b.Run(c.name+"/"+input.name, func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.converter.ToHTML(ctx, input.content); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkToHTMLBySize benchmarks conversion scaling with input size.
func BenchmarkToHTMLBySize(b *testing.B) {
	converter := NewClassicConverter(markdown.Options{})
	ctx := context.Background()

	for _, size := range []int{1, 10, 50, 100, 500} {
		content := generateMixedMarkdown(size)
		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkToHTMLParallel benchmarks one converter shared by many goroutines.
func BenchmarkToHTMLParallel(b *testing.B) {
	converter := NewClassicConverter(markdown.Options{})
	ctx := context.Background()
	content := generateMixedMarkdown(20)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := converter.ToHTML(ctx, content); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkHighlight benchmarks chroma highlighting of classic code blocks.
func BenchmarkHighlight(b *testing.B) {
	converter := NewClassicConverter(markdown.Options{})
	highlighter := NewChromaHighlighter(DefaultHighlightStyle)
	ctx := context.Background()

	fragment, err := converter.ToHTML(ctx, generateCodeBlocksMarkdown(10))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := highlighter.Highlight(ctx, fragment); err != nil {
			b.Fatal(err)
		}
	}
}

// Helper functions for generating benchmark input

func generateHeadingsMarkdown(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		level := (i % 6) + 1
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(fmt.Sprintf(" Heading %d\n\n", i+1))
		sb.WriteString("Some content under this heading.\n\n")
	}
	return sb.String()
}

func generateCodeBlocksMarkdown(count int) string {
	var sb strings.Builder
	code := `    func example() {
        fmt.Println("Hello, World!")
        for i := 0; i < 10; i++ {
            process(i)
        }
    }`
	for i := 0; i < count; i++ {
		sb.WriteString("## Code Example\n\n")
		sb.WriteString(code)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func generateNestedListMarkdown(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("- Item %d with *emphasis*\n", i+1))
		sb.WriteString("    - Nested **strong** item\n")
		sb.WriteString("        1. Deeper ordered item\n")
	}
	return sb.String()
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Document Title\n\n")
	sb.WriteString("Introduction paragraph with **bold** and *italic* text.\n\n")
	sb.WriteString("[ref]: https://example.com/ref \"Reference\"\n\n")

	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Section %d\n\n", i+1))
		sb.WriteString("This is a paragraph with some content. ")
		sb.WriteString("It includes [links](https://example.com), [a reference][ref] and `inline code`.\n\n")

		sb.WriteString("- Item one\n")
		sb.WriteString("- Item two\n")
		sb.WriteString("- Item three\n\n")

		if i%3 == 0 {
			sb.WriteString("    func main() {\n        fmt.Println(\"Hello\")\n    }\n\n")
		}

		if i%5 == 0 {
			sb.WriteString("> A quoted line with <span>inline HTML</span>.\n\n")
		}
	}

	return sb.String()
}
