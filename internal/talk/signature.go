package talk

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/talkgest/internal/dom"
	"github.com/dgallion1/talkgest/internal/namespaces"
)

// signatureTimestamp matches a trailing "HH:MM ... (UTC)" or year plus zone
// abbreviation, the shape MediaWiki appends after a ~~~~ signature.
var signatureTimestamp = regexp.MustCompile(
	`(?i)(?:2\d{3}|[0-2]\d:\d\d)[\s\x{00A0}]+\([a-z]{2,5}(?:[+-]\d{1,2}(?::?\d\d)?)?\)[\s\x{00A0}]*$`)

// endsWithSignature reports whether serialized reply text closes with a
// signature timestamp or, when names are known, a link to a user or user talk page.
func endsWithSignature(text string, names *namespaces.Names) bool {
	if signatureTimestamp.MatchString(text) {
		return true
	}
	return names != nil && endsWithUserAnchor(text, names)
}

func endsWithUserAnchor(text string, names *namespaces.Names) bool {
	container := dom.NewElement("div")
	nodes, err := html.ParseFragment(strings.NewReader(text), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return false
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	// Flatten everything but anchors so an anchor at the end of nested
	// markup lines up with the end of the text.
	all := dom.FindAll(container)
	for i := len(all) - 1; i >= 0; i-- {
		if !dom.IsElement(all[i], "a") {
			dom.Unwrap(all[i])
		}
	}

	userPrefix := "/" + names.User + ":"
	talkPrefix := "/" + names.UserTalk + ":"
	var last *html.Node
	for _, a := range dom.FindAll(container, "a") {
		href := dom.Attr(a, "href")
		if strings.Contains(href, userPrefix) || strings.Contains(href, talkPrefix) {
			last = a
		}
	}
	if last == nil {
		return false
	}

	inner := renderChildren(container)
	outer := renderNode(last)
	if inner == "" || outer == "" {
		return false
	}
	return strings.HasSuffix(inner, outer)
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

func renderChildren(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return ""
		}
	}
	return sb.String()
}
