package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/talkgest/internal/dom"
)

// HTMLParser handles HTML files. Parsoid output is used as is; plain HTML
// is split into sections at its headings.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := &Document{Title: titleFromFilename(filename), Root: doc}
	if title := findTitle(doc); title != "" {
		out.Title = title
	}
	Sectionize(doc)
	return out, nil
}

// Sectionize wraps the body of a document that has no <section> elements into
// nested sections, one per heading. A heading opens a section that runs until
// the next heading of the same or a higher level; content before the first
// heading forms a lead section. Only direct children of <body> are considered.
func Sectionize(doc *html.Node) {
	body := dom.Body(doc)
	if body == nil || dom.FindFirst(body, "section") != nil {
		return
	}

	type stackEntry struct {
		node  *html.Node
		level int
	}
	var stack []stackEntry

	nodes := dom.ChildNodes(body)
	for _, n := range nodes {
		body.RemoveChild(n)
	}

	for _, n := range nodes {
		if level := dom.HeadingLevel(n); level > 0 {
			// The lead section (level 0) never holds headed sections.
			for len(stack) > 0 && (stack[len(stack)-1].level >= level || stack[len(stack)-1].level == 0) {
				stack = stack[:len(stack)-1]
			}
			parent := body
			if len(stack) > 0 {
				parent = stack[len(stack)-1].node
			}
			section := dom.NewElement("section")
			parent.AppendChild(section)
			section.AppendChild(n)
			stack = append(stack, stackEntry{node: section, level: level})
			continue
		}

		if len(stack) == 0 {
			if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
				continue
			}
			lead := dom.NewElement("section")
			body.AppendChild(lead)
			stack = append(stack, stackEntry{node: lead, level: 0})
		}
		stack[len(stack)-1].node.AppendChild(n)
	}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if t := dom.FindFirst(n, "title"); t != nil {
		return textContent(t)
	}
	return ""
}
