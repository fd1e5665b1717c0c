// Package dom holds small helpers over golang.org/x/net/html node trees.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tag returns the lowercase tag name of an element node, or "" for any other node type.
func Tag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsElement reports whether n is an element whose tag is one of tags.
// With no tags it reports whether n is an element at all.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	t := Tag(n)
	for _, want := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// RemoveAttrs drops every attribute whose key is in keys.
func RemoveAttrs(n *html.Node, keys map[string]bool) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if !keys[a.Key] {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// HeadingLevel returns 1-6 for h1-h6 elements, 0 otherwise.
func HeadingLevel(n *html.Node) int {
	switch Tag(n) {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// ChildNodes returns all direct children of n, of any node type.
func ChildNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ElementIndex returns the position of n among its parent's element children,
// or -1 when n has no parent.
func ElementIndex(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			return i
		}
		if c.Type == html.ElementNode {
			i++
		}
	}
	return -1
}

// HasAncestor reports whether any proper ancestor of n has one of tags.
func HasAncestor(n *html.Node, tags ...string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if IsElement(p, tags...) {
			return true
		}
	}
	return false
}

// FindAll returns the descendants of root (root excluded) matching tags, in document order.
func FindAll(root *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if IsElement(c, tags...) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// FindFirst returns the first descendant of root matching tags, or nil.
func FindFirst(root *html.Node, tags ...string) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, tags...) {
			return c
		}
		if found := FindFirst(c, tags...); found != nil {
			return found
		}
	}
	return nil
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Fragment detaches n and returns a new document-fragment root holding it.
func Fragment(n *html.Node) *html.Node {
	Detach(n)
	frag := &html.Node{Type: html.DocumentNode}
	frag.AppendChild(n)
	return frag
}

// Unwrap replaces n with its children.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.FirstChild != nil {
		c := n.FirstChild
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// Clone returns a deep copy of n with no parent or siblings.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// NewElement creates a detached element node.
func NewElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// Body returns the <body> element of a parsed document, or nil.
func Body(doc *html.Node) *html.Node {
	if IsElement(doc, "body") {
		return doc
	}
	return FindFirst(doc, "body")
}
