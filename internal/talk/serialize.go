package talk

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/talkgest/internal/dom"
)

// preservedTags are the inline elements whose markup survives serialization.
var preservedTags = []string{"a", "b", "i", "sup", "sub"}

var prunedAttributes = map[string]bool{
	"style":   true,
	"id":      true,
	"class":   true,
	"rel":     true,
	"about":   true,
	"data-mw": true,
	"typeof":  true,
}

// wrapPair rewrites a `from` element as a `to` element unless a `to` is
// already present above or below it.
type wrapPair struct {
	from, to string
}

var wrapPairs = []wrapPair{
	{from: "dt", to: "b"},
	{from: "code", to: "b"},
	{from: "big", to: "b"},
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Serialize renders the children of root as reduced HTML: text is escaped,
// a small set of inline tags is kept with pruned attributes, and every other
// element contributes only its content. Tags named in exclusions are
// flattened like any other element.
func Serialize(root *html.Node, exclusions ...string) string {
	if root == nil {
		return ""
	}
	keep := make(map[string]bool, len(preservedTags))
	for _, t := range preservedTags {
		keep[t] = true
	}
	for _, t := range exclusions {
		delete(keep, strings.ToLower(t))
	}
	var sb strings.Builder
	serializeChildren(&sb, root, keep)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, n *html.Node, keep map[string]bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		serializeNode(sb, c, keep)
	}
}

func serializeNode(sb *strings.Builder, n *html.Node, keep map[string]bool) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(textEscaper.Replace(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	tag := dom.Tag(n)
	switch to := wrapTarget(n); {
	case tag == "style":
		// dropped with its content
	case keep[tag]:
		sb.WriteString(preservedElement(n, keep))
	case to != "":
		sb.WriteString("<" + to + ">")
		serializeChildren(sb, n, keep)
		sb.WriteString("</" + to + ">")
	default:
		serializeChildren(sb, n, keep)
	}
}

// preservedElement renders a kept tag around its serialized content. The
// source node is left untouched.
func preservedElement(n *html.Node, keep map[string]bool) string {
	clone := dom.Clone(n)
	dom.RemoveAttrs(clone, prunedAttributes)

	var inner strings.Builder
	serializeChildren(&inner, clone, keep)
	text := inner.String()
	if dom.Tag(clone) == "a" && text == "" {
		href := dom.Attr(clone, "href")
		text = "[" + href[strings.LastIndex(href, "/")+1:] + "]"
	}

	shell := &html.Node{
		Type:      html.ElementNode,
		DataAtom:  clone.DataAtom,
		Data:      dom.Tag(clone),
		Namespace: clone.Namespace,
		Attr:      clone.Attr,
	}
	shell.AppendChild(&html.Node{Type: html.RawNode, Data: text})

	var out strings.Builder
	if err := html.Render(&out, shell); err != nil {
		return text
	}
	return out.String()
}

func wrapTarget(n *html.Node) string {
	tag := dom.Tag(n)
	for _, p := range wrapPairs {
		if p.from != tag {
			continue
		}
		if dom.HasAncestor(n, p.to) || dom.FindFirst(n, p.to) != nil {
			return ""
		}
		return p.to
	}
	return ""
}
