// Package htmltest parses rendered pages for handler assertions.
package htmltest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Parse parses body as an HTML document.
func Parse(t testing.TB, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// FindAll returns every element below n accepted by match, in document
// order.
func FindAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

// Find returns the first element accepted by match, or nil.
func Find(n *html.Node, match func(*html.Node) bool) *html.Node {
	found := FindAll(n, match)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Tag matches elements by tag name.
func Tag(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == name
	}
}

// HasAttr matches elements of tag carrying attribute key.
func HasAttr(tag, key string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Data != tag {
			return false
		}
		_, ok := Attr(n, key)
		return ok
	}
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Text returns the trimmed text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// TableRows returns the cell texts of every record row, i.e. every tr
// carrying a data-id attribute.
func TableRows(doc *html.Node) [][]string {
	var rows [][]string
	for _, tr := range FindAll(doc, HasAttr("tr", "data-id")) {
		var cells []string
		for _, td := range FindAll(tr, Tag("td")) {
			cells = append(cells, Text(td))
		}
		rows = append(rows, cells)
	}
	return rows
}
