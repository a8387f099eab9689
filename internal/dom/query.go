package dom

import "strings"

// Predicate decides whether an element matches. It is only called on elements.
type Predicate func(Node) bool

// HasClass matches elements whose class list contains the token.
func HasClass(class string) Predicate {
	return func(n Node) bool {
		return ClassMember(n, class)
	}
}

// TagIs matches elements by name, case-insensitively.
func TagIs(tag string) Predicate {
	return func(n Node) bool {
		return strings.EqualFold(n.Tag(), tag)
	}
}

// All matches when every predicate does.
func All(preds ...Predicate) Predicate {
	return func(n Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// ClassMember reports whether class is one of the space-separated tokens in
// the element's class attribute.
func ClassMember(n Node, class string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// FindFirst walks the subtree of root in document order, root included, and
// returns the first element that matches.
func FindFirst(root Node, match Predicate) (Node, bool) {
	if root == nil || root.Tag() == "" {
		return nil, false
	}

	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Tag() == "" {
			continue
		}
		if match(n) {
			return n, true
		}
		stack = pushChildren(stack, n)
	}
	return nil, false
}

// FindAll returns every matching element of the subtree in document order.
// Matches nested inside other matches are included.
func FindAll(root Node, match Predicate) []Node {
	if root == nil || root.Tag() == "" {
		return nil
	}

	var result []Node
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Tag() == "" {
			continue
		}
		if match(n) {
			result = append(result, n)
		}
		stack = pushChildren(stack, n)
	}
	return result
}

func pushChildren(stack []Node, n Node) []Node {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, children[i])
	}
	return stack
}
