package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is one parsed page. It is never modified after Parse returns.
type Document struct {
	root Node
	doc  *goquery.Document
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Document{
		root: documentElement(doc),
		doc:  doc,
	}, nil
}

// ParseString is Parse over an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromTree builds a Document over any tree that implements Node.
func FromTree(root Node) *Document {
	return &Document{root: root}
}

// Root returns the document element.
func (d *Document) Root() Rich {
	return Rich{doc: d, node: d.root}
}

// ElementsByTag returns every element with the given tag name in document order.
func (d *Document) ElementsByTag(tag string) []Rich {
	var result []Rich
	if d.doc != nil {
		d.doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			for _, n := range sel.Nodes {
				result = append(result, Rich{doc: d, node: Wrap(n)})
			}
		})
		return result
	}

	for _, n := range FindAll(d.root, TagIs(tag)) {
		result = append(result, Rich{doc: d, node: n})
	}
	return result
}

func documentElement(doc *goquery.Document) Node {
	for _, n := range doc.Nodes {
		if n.Type == html.ElementNode {
			return Wrap(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				return Wrap(c)
			}
		}
	}
	return nil
}
