package talk

// relations answers structural questions about a candidate sequence in scan
// (reverse document) order. The parent of a candidate is the nearest later
// candidate with a smaller depth.
type relations struct {
	cands   []Candidate
	parents []int
}

func newRelations(cands []Candidate) *relations {
	r := &relations{cands: cands, parents: make([]int, len(cands))}
	for i := range cands {
		r.parents[i] = -1
		for j := i + 1; j < len(cands); j++ {
			if cands[j].Depth < cands[i].Depth {
				r.parents[i] = j
				break
			}
		}
	}
	return r
}

// parent returns the parent index of i, or -1.
func (r *relations) parent(i int) int {
	if i < 0 || i >= len(r.parents) {
		return -1
	}
	return r.parents[i]
}

// children returns, in ascending order, every index whose parent is p.
func (r *relations) children(p int) []int {
	if p < 0 {
		return nil
	}
	var out []int
	for j := 0; j < p; j++ {
		if r.parents[j] == p {
			out = append(out, j)
		}
	}
	return out
}

// inclusiveSiblings returns the children of i's parent that form one run of
// adjacent DOM siblings with i, including i itself. A candidate without a
// parent has no siblings.
func (r *relations) inclusiveSiblings(i int) []int {
	p := r.parent(i)
	if p < 0 {
		return nil
	}
	kids := r.children(p)
	var out []int
	for offset, k := range kids {
		target := offset + r.cands[k].SiblingIndex - r.cands[i].SiblingIndex
		if target >= 0 && target < len(kids) && kids[target] == i {
			out = append(out, k)
		}
	}
	return out
}

// siblings is inclusiveSiblings without i. The folder only needs the
// inclusive form; siblings and descendants round out the index queries.
func (r *relations) siblings(i int) []int {
	var out []int
	for _, s := range r.inclusiveSiblings(i) {
		if s != i {
			out = append(out, s)
		}
	}
	return out
}

// descendants returns the transitive children of i, depth first.
func (r *relations) descendants(i int) []int {
	var out []int
	for _, c := range r.children(i) {
		out = append(out, c)
		out = append(out, r.descendants(c)...)
	}
	return out
}
