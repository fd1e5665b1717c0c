package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/talkgest/internal/dom"
)

func TestTextParser_HeadingsAndIndentation(t *testing.T) {
	input := strings.Join([]string{
		"== Greeting ==",
		"Hello there.",
		": Hi back.",
		":: Third level.",
		": Back to one.",
		"",
		"== Second ==",
		"* a",
		"* b",
	}, "\n")

	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.wiki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}

	titles, _ := sectionHeadings(doc.Root)
	if strings.Join(titles, "|") != "Greeting|Second" {
		t.Fatalf("unexpected sections %q", titles)
	}

	dds := dom.FindAll(doc.Root, "dd")
	if len(dds) != 3 {
		t.Fatalf("expected 3 dd elements, got %d", len(dds))
	}
	depth := func(n int) int {
		d := 0
		for p := dds[n].Parent; p != nil; p = p.Parent {
			if dom.IsElement(p, "dl") {
				d++
			}
		}
		return d
	}
	if depth(0) != 1 || depth(1) != 2 || depth(2) != 1 {
		t.Errorf("unexpected dd nesting: %d %d %d", depth(0), depth(1), depth(2))
	}

	lis := dom.FindAll(doc.Root, "li")
	if len(lis) != 2 || lis[0].Parent != lis[1].Parent {
		t.Error("expected two sibling list items")
	}
}

func TestTextParser_EscapesText(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("a <b>not bold</b> & more"), "x.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dom.FindFirst(doc.Root, "b") != nil {
		t.Error("plain text should not produce elements")
	}
	para := dom.FindFirst(doc.Root, "p")
	if para == nil || textContent(para) != "a <b>not bold</b> & more" {
		t.Errorf("unexpected paragraph %v", para)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(dom.FindAll(doc.Root, "section")); n != 0 {
		t.Errorf("expected no sections, got %d", n)
	}
}

func TestListTransition(t *testing.T) {
	cases := []struct {
		prev, next, want string
	}{
		{"", ":", "<dl><dd>"},
		{":", ":", "</dd><dd>"},
		{":", "::", "<dl><dd>"},
		{"::", ":", "</dd></dl></dd><dd>"},
		{"*", "#", "</li></ul><ol><li>"},
		{"#", "", "</li></ol>"},
	}
	for _, tc := range cases {
		if got := listTransition(tc.prev, tc.next); got != tc.want {
			t.Errorf("listTransition(%q, %q) = %q, want %q", tc.prev, tc.next, got, tc.want)
		}
	}
}
