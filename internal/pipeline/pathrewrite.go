package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RebaseRelativePaths rewrites relative image and link paths written
// against sourceDir so they resolve from outputDir, where the HTML file is
// written. It returns the HTML unchanged when either directory is empty,
// when both are the same, or when no path needed rewriting.
//
// Rewrites:
//   - img[src]: relative paths to images
//   - a[href]: relative file paths (not anchors, not URLs)
//
// Does NOT rewrite:
//   - srcset attributes and CSS url() references
//   - Absolute paths, URLs and other schemes such as mailto:
//   - Paths that escape sourceDir
func RebaseRelativePaths(htmlContent, sourceDir, outputDir string) (string, error) {
	if sourceDir == "" || outputDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}
	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if absSourceDir == absOutputDir {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	r := rebaser{sourceDir: absSourceDir, outputDir: absOutputDir}
	r.rewriteNode(doc)
	if !r.changed {
		return htmlContent, nil
	}

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rebaser carries the directories of one rewrite and whether it changed
// anything.
type rebaser struct {
	sourceDir string
	outputDir string
	changed   bool
}

// rewriteNode traverses the DOM and rewrites relative paths.
func (r *rebaser) rewriteNode(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			r.rewriteAttr(n, "src")
		case atom.A:
			r.rewriteAttr(n, "href")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.rewriteNode(c)
	}
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func (r *rebaser) rewriteAttr(n *html.Node, attrName string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		path, suffix := splitPathSuffix(attr.Val)
		absPath := filepath.Join(r.sourceDir, filepath.FromSlash(path))

		// Security: validate path is under sourceDir (prevent traversal)
		if !isPathUnderDir(absPath, r.sourceDir) {
			continue
		}

		rel, err := filepath.Rel(r.outputDir, absPath)
		if err != nil {
			continue
		}
		n.Attr[i].Val = filepath.ToSlash(rel) + suffix
		r.changed = true
	}
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}

	// Skip URLs of any scheme (http, file, data, mailto...)
	if u, err := url.Parse(path); err != nil || u.Scheme != "" {
		return false
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return false
	}

	return true
}

// splitPathSuffix separates a query or fragment from a relative path.
func splitPathSuffix(path string) (string, string) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i], path[i:]
	}
	return path, ""
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
