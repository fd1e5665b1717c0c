package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseBody(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	body := Body(doc)
	if body == nil {
		t.Fatal("no body")
	}
	return body
}

func TestFindAll_DocumentOrder(t *testing.T) {
	body := parseBody(t, `<div><p>a</p><ul><li>b</li></ul></div><p>c</p>`)
	got := FindAll(body, "p", "li", "div")
	var tags []string
	for _, n := range got {
		tags = append(tags, Tag(n))
	}
	if strings.Join(tags, ",") != "div,p,li,p" {
		t.Errorf("expected div,p,li,p, got %v", tags)
	}
}

func TestElementIndex(t *testing.T) {
	body := parseBody(t, `<ul><li>a</li> text <li>b</li><li>c</li></ul>`)
	items := FindAll(body, "li")
	for i, li := range items {
		if got := ElementIndex(li); got != i {
			t.Errorf("item %d: expected index %d, got %d", i, i, got)
		}
	}
	Detach(items[0])
	if got := ElementIndex(items[0]); got != -1 {
		t.Errorf("expected -1 for detached node, got %d", got)
	}
}

func TestUnwrap(t *testing.T) {
	body := parseBody(t, `<p>one <span>two <b>three</b></span> four</p>`)
	Unwrap(FindFirst(body, "span"))
	var sb strings.Builder
	if err := html.Render(&sb, FindFirst(body, "p")); err != nil {
		t.Fatal(err)
	}
	want := `<p>one two <b>three</b> four</p>`
	if sb.String() != want {
		t.Errorf("expected %q, got %q", want, sb.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	body := parseBody(t, `<a href="x" class="c">link</a>`)
	a := FindFirst(body, "a")
	c := Clone(a)
	RemoveAttrs(c, map[string]bool{"class": true})
	c.FirstChild.Data = "changed"

	if Attr(a, "class") != "c" {
		t.Error("original lost its class attribute")
	}
	if a.FirstChild.Data != "link" {
		t.Errorf("original text changed to %q", a.FirstChild.Data)
	}
	if c.Parent != nil {
		t.Error("clone should be detached")
	}
}

func TestFragmentDetaches(t *testing.T) {
	body := parseBody(t, `<ul><li>a</li></ul>`)
	li := FindFirst(body, "li")
	frag := Fragment(li)
	if li.Parent != frag {
		t.Fatal("expected node to live under the fragment")
	}
	if FindFirst(body, "li") != nil {
		t.Error("expected li to be removed from the body")
	}
}

func TestHasAncestorExcludesSelf(t *testing.T) {
	body := parseBody(t, `<b><code>x</code></b><code>y</code>`)
	codes := FindAll(body, "code")
	if !HasAncestor(codes[0], "b") {
		t.Error("expected first code to sit under b")
	}
	if HasAncestor(codes[1], "b") {
		t.Error("second code has no b ancestor")
	}
	if HasAncestor(FindFirst(body, "b"), "b") {
		t.Error("an element is not its own ancestor")
	}
}

func TestHeadingLevel(t *testing.T) {
	body := parseBody(t, `<h3>x</h3><p>y</p>`)
	if got := HeadingLevel(FindFirst(body, "h3")); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := HeadingLevel(FindFirst(body, "p")); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
