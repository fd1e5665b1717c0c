package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/dgallion1/talkgest/internal/dom"
)

// MarkdownParser handles Markdown files using goldmark. Raw HTML in the
// source is passed through so signatures can carry user links.
type MarkdownParser struct{}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.DefinitionList),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rendered bytes.Buffer
	if err := markdown.Convert(src, &rendered); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	doc, err := html.Parse(&rendered)
	if err != nil {
		return nil, fmt.Errorf("parse rendered markdown: %w", err)
	}

	out := &Document{Title: titleFromFilename(filename), Root: doc}
	if h1 := dom.FindFirst(doc, "h1"); h1 != nil {
		if t := textContent(h1); t != "" {
			out.Title = t
		}
	}
	Sectionize(doc)
	return out, nil
}
