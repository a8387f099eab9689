// Package dom is a small class-token query layer over a parsed HTML tree.
//
// The converters only ever ask three things of a tree: does an element carry a
// class token, what is its tag, and what are its attributes, children and text.
// Node captures exactly that, so the search code does not care which parser
// built the tree.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is the read-only view of one tree node.
type Node interface {
	// Tag returns the element name, or "" for text, comment and document nodes.
	Tag() string
	Attr(name string) (string, bool)
	// Children returns all direct children in document order, text nodes included.
	Children() []Node
	// Text returns the raw concatenated text of the subtree.
	Text() string
}

// Wrap adapts an *html.Node. A nil node yields a nil Node.
func Wrap(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return htmlNode{n: n}
}

type htmlNode struct {
	n *html.Node
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlNode{n: c})
	}
	return out
}

func (h htmlNode) Text() string {
	var sb strings.Builder
	stack := []*html.Node{h.n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			continue
		}
		// push children in reverse so they pop in document order
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return sb.String()
}
