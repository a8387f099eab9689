package dom

import (
	"fmt"
	"strconv"
	"strings"

	"hltv-parser/internal/normalize"
)

// Rich pairs a node with its document so lookups chain:
//
//	name, ok := root.Find("team1-gradient").Find("teamName").Text()
//
// An absent node is a valid Rich; every lookup on it yields an absent or
// empty result instead of failing.
type Rich struct {
	doc  *Document
	node Node
}

// Exists reports whether the handle points at a node.
func (r Rich) Exists() bool {
	return r.node != nil
}

func (r Rich) wrap(n Node) Rich {
	return Rich{doc: r.doc, node: n}
}

// Find returns the first element of the subtree carrying class.
func (r Rich) Find(class string) Rich {
	return r.FindWhere(HasClass(class))
}

// FindWhere returns the first element of the subtree that matches.
func (r Rich) FindWhere(match Predicate) Rich {
	if r.node == nil {
		return r.wrap(nil)
	}
	n, ok := FindFirst(r.node, match)
	if !ok {
		return r.wrap(nil)
	}
	return r.wrap(n)
}

// FindAll returns every element of the subtree carrying class.
func (r Rich) FindAll(class string) []Rich {
	return r.FindAllWhere(HasClass(class))
}

// FindAllWhere returns every element of the subtree that matches.
func (r Rich) FindAllWhere(match Predicate) []Rich {
	if r.node == nil {
		return nil
	}
	nodes := FindAll(r.node, match)
	result := make([]Rich, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, r.wrap(n))
	}
	return result
}

// Child returns the index-th element child; text nodes are not counted.
func (r Rich) Child(index int) Rich {
	if r.node == nil || index < 0 {
		return r.wrap(nil)
	}
	i := 0
	for _, c := range r.node.Children() {
		if c.Tag() == "" {
			continue
		}
		if i == index {
			return r.wrap(c)
		}
		i++
	}
	return r.wrap(nil)
}

// Text returns the whitespace-normalized text of the subtree.
func (r Rich) Text() (string, bool) {
	if r.node == nil {
		return "", false
	}
	return normalize.Text(r.node.Text()), true
}

// Attr returns a raw attribute value.
func (r Rich) Attr(name string) (string, bool) {
	if r.node == nil {
		return "", false
	}
	return r.node.Attr(name)
}

// HasClass reports class membership; ok is false when the node is absent.
func (r Rich) HasClass(class string) (has bool, ok bool) {
	if r.node == nil {
		return false, false
	}
	return ClassMember(r.node, class), true
}

// AttrAs converts an attribute. found is false when the node or attribute is
// absent; err is set only when the attribute is present but does not convert.
func AttrAs[T any](r Rich, name string, parse func(string) (T, error)) (v T, found bool, err error) {
	raw, ok := r.Attr(name)
	if !ok {
		return v, false, nil
	}
	v, err = parse(raw)
	if err != nil {
		return v, true, fmt.Errorf("attribute %s=%q: %w", name, raw, err)
	}
	return v, true, nil
}

// TextAs converts the normalized text of the node, with the same contract as AttrAs.
func TextAs[T any](r Rich, parse func(string) (T, error)) (v T, found bool, err error) {
	raw, ok := r.Text()
	if !ok {
		return v, false, nil
	}
	v, err = parse(raw)
	if err != nil {
		return v, true, fmt.Errorf("text %q: %w", raw, err)
	}
	return v, true, nil
}

// Uint32 parses a non-negative decimal integer.
func Uint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	return uint32(v), err
}

// Int64 parses a decimal integer.
func Int64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// Float32 parses a decimal number, tolerating a trailing percent sign.
func Float32(s string) (float32, error) {
	v, err := strconv.ParseFloat(normalize.Number(s), 32)
	return float32(v), err
}
