package talk

import (
	"sort"
	"strings"
)

// listGroup is a run of unsigned sibling list items that will be folded into
// the candidate at maxIndex.
type listGroup struct {
	depth    int
	minIndex int
	maxIndex int
	members  []int
}

func (g listGroup) contains(i int) bool {
	for _, m := range g.members {
		if m == i {
			return true
		}
	}
	return false
}

// foldListItems collapses runs of unsigned sibling list items into a single
// candidate holding a rebuilt <ul> or <ol>. Deeper groups are folded first so
// nested lists end up inside their parents.
func foldListItems(cands []Candidate) []Candidate {
	rel := newRelations(cands)

	var groups []listGroup
	for i, c := range cands {
		if !c.IsListItem || c.EndsWithSignature || claimed(groups, i) {
			continue
		}
		sibs := rel.inclusiveSiblings(i)
		if len(sibs) < 2 {
			continue
		}
		groups = append(groups, listGroup{
			depth:    c.Depth,
			minIndex: sibs[0],
			maxIndex: sibs[len(sibs)-1],
			members:  sibs,
		})
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].depth > groups[b].depth })

	removed := make([]bool, len(cands))
	for _, g := range groups {
		// Scan order is reversed, so walking down from maxIndex restores
		// document order for the folded items.
		var items []string
		for j := g.maxIndex - 1; j >= g.minIndex; j-- {
			if removed[j] {
				continue
			}
			removed[j] = true
			items = append(items, cands[j].Text)
		}

		container := &cands[g.maxIndex]
		wrapAsList(container, items)

		next := g.maxIndex + 1
		if next < len(cands) &&
			cands[next].IsListItem &&
			container.Depth == cands[next].Depth+1 &&
			!cands[next].EndsWithSignature {
			combine(&cands[next], *container)
			removed[g.maxIndex] = true
		}
	}

	out := make([]Candidate, 0, len(cands))
	for i, c := range cands {
		if !removed[i] {
			out = append(out, c)
		}
	}
	return out
}

func claimed(groups []listGroup, i int) bool {
	for _, g := range groups {
		if g.contains(i) {
			return true
		}
	}
	return false
}

// wrapAsList turns container into a list whose first item is its own text.
// With no items the container is left alone.
func wrapAsList(container *Candidate, items []string) {
	if len(items) == 0 {
		return
	}
	tag := "ul"
	if container.IsOrderedListItem {
		tag = "ol"
	}
	var sb strings.Builder
	sb.WriteString("<" + tag + "><li>" + container.Text + "</li>")
	for _, item := range items {
		sb.WriteString("<li>" + item + "</li>")
	}
	sb.WriteString("</" + tag + ">")
	container.Text = sb.String()
}
