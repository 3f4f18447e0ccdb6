package md2html_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-md2html"
)

// Example demonstrates basic markdown to HTML conversion.
func Example() {
	conv, err := md2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "# Hello World\n\nThis is a *test*.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(string(result.HTML))
	// Output:
	// <h1>Hello World</h1>
	//
	// <p>This is a <em>test</em>.</p>
}

// Example_referenceLinks demonstrates reference-style links defined in the
// document and predefined by the converter.
func Example_referenceLinks() {
	conv, err := md2html.NewConverter(
		md2html.WithPredefinedLinks(map[string]string{"home": "https://example.com"}, nil),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "See [the docs][docs] or go [home].\n\n[docs]: /docs \"Docs\"\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(string(result.HTML))
	// Output: <p>See <a href="/docs" title="Docs">the docs</a> or go <a href="https://example.com">home</a>.</p>
}

// Example_html4 demonstrates HTML4-style void elements.
func Example_html4() {
	conv, err := md2html.NewConverter(md2html.WithXHTML(false))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "one  \ntwo\n\n***",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(string(result.HTML))
	// Output:
	// <p>one<br>
	// two</p>
	//
	// <hr>
}

// Example_standalone demonstrates wrapping the output in a complete document.
func Example_standalone() {
	conv, err := md2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown:   "# User Guide\n\nWelcome.",
		Standalone: true,
		CSS:        "body { font-family: serif; }",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Title)
	fmt.Println(strings.HasPrefix(string(result.HTML), "<!DOCTYPE html>"))
	// Output:
	// User Guide
	// true
}

// Example_commonMark demonstrates the CommonMark engine with GFM tables.
func Example_commonMark() {
	conv, err := md2html.NewConverter(md2html.WithEngine(md2html.EngineCommonMark))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "| a | b |\n|---|---|\n| 1 | 2 |\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(string(result.HTML), "<table>"))
	// Output: true
}

// Example_pool demonstrates parallel conversion with a converter pool.
func Example_pool() {
	pool, err := md2html.NewConverterPool(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer pool.Close()

	docs := []string{"# One", "# Two", "# Three"}
	titles := make([]string, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := pool.Acquire()
			defer pool.Release(conv)

			result, err := conv.Convert(context.Background(), md2html.Input{Markdown: doc, Standalone: true})
			if err != nil {
				titles[i] = "error: " + err.Error()
				return
			}
			titles[i] = result.Title
		}()
	}
	wg.Wait()

	fmt.Println(strings.Join(titles, ", "))
	// Output: One, Two, Three
}
