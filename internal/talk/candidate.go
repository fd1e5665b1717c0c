package talk

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/talkgest/internal/dom"
	"github.com/dgallion1/talkgest/internal/namespaces"
)

// soughtTags are the block elements that can carry reply text.
var soughtTags = []string{"p", "li", "dt", "dd", "th", "td", "pre", "div", "blockquote", "center"}

// atomicTags are kept whole; other sought elements are split at <br>.
var atomicTags = map[string]bool{"pre": true, "li": true, "dt": true, "dd": true}

var newlineRuns = regexp.MustCompile(`\n+`)

// Candidate is one block of prospective reply text, before folding and merging.
type Candidate struct {
	Depth             int
	IsListItem        bool
	IsOrderedListItem bool
	// SiblingIndex is the element's position among its parent's element
	// children, or -1 for paragraphs synthesized from <br>-separated runs.
	SiblingIndex      int
	EndsWithSignature bool
	Text              string
}

// extractCandidates consumes the reply-bearing elements of a topic section
// and returns candidates in reverse document order, empty ones dropped.
func extractCandidates(root *html.Node, names *namespaces.Names) []Candidate {
	elements := replyElements(root)
	out := make([]Candidate, 0, len(elements))
	for _, el := range elements {
		c := newCandidate(el, root, names)
		if c.Text == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// replyElements collects sought elements in reverse document order. Non-atomic
// elements are replaced by detached paragraphs, one per <br>-separated run.
func replyElements(root *html.Node) []*html.Node {
	var out []*html.Node
	for _, el := range dom.FindAll(root, soughtTags...) {
		if atomicTags[dom.Tag(el)] {
			out = append(out, el)
			continue
		}
		out = append(out, splitAtBreaks(el)...)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// splitAtBreaks moves el's child nodes into new <p> elements, starting a new
// paragraph at every <br>. The <br> nodes themselves are dropped.
func splitAtBreaks(el *html.Node) []*html.Node {
	var runs [][]*html.Node
	for i, c := range dom.ChildNodes(el) {
		isBreak := dom.IsElement(c, "br")
		if isBreak || i == 0 {
			runs = append(runs, nil)
		}
		if !isBreak {
			runs[len(runs)-1] = append(runs[len(runs)-1], c)
		}
	}

	paragraphs := make([]*html.Node, 0, len(runs))
	for _, run := range runs {
		p := dom.NewElement("p")
		for _, c := range run {
			dom.Detach(c)
			p.AppendChild(c)
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

func newCandidate(el, root *html.Node, names *namespaces.Names) Candidate {
	tag := dom.Tag(el)
	c := Candidate{
		Depth:        replyDepth(el, root),
		IsListItem:   tag == "li" || tag == "dd",
		SiblingIndex: dom.ElementIndex(el),
	}
	c.IsOrderedListItem = c.IsListItem && dom.IsElement(el.Parent, "ol")

	frag := dom.Fragment(el)
	c.Text = normalizeText(Serialize(frag))
	c.EndsWithSignature = endsWithSignature(c.Text, names)
	return c
}

// replyDepth counts the list containers enclosing el below root. A <dt> is a
// heading for its list and sits one level shallower.
func replyDepth(el, root *html.Node) int {
	depth := 0
	for n := el; n != nil && n != root; n = n.Parent {
		if dom.IsElement(n, "ul", "ol", "dl") {
			depth++
		}
	}
	if dom.IsElement(el, "dt") {
		depth--
	}
	return max(depth, 0)
}

func normalizeText(s string) string {
	return newlineRuns.ReplaceAllString(strings.TrimSpace(s), "<br>")
}
