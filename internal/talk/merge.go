package talk

import "strings"

// emSpace indents merged continuation text by one step per depth level.
const emSpace = "&#8195;"

// combine appends succ's text to pred's, indented to succ's depth.
// Paragraph spacing is skipped around list markup.
func combine(pred *Candidate, succ Candidate) {
	sep := ""
	if succ.Text != "" && !startsWithList(succ.Text) && !endsWithList(pred.Text) {
		sep = "<br><br>" + strings.Repeat(emSpace, succ.Depth)
	}
	pred.Text = pred.Text + sep + succ.Text
}

func startsWithList(s string) bool {
	return strings.HasPrefix(s, "<ol>") || strings.HasPrefix(s, "<ul>")
}

func endsWithList(s string) bool {
	return strings.HasSuffix(s, "</ol>") || strings.HasSuffix(s, "</ul>")
}

// mergeUnsigned folds every candidate into the next one in scan order while
// that next candidate is unsigned, so each surviving candidate ends with a
// signature or is the last in the sequence. The result is in document order.
func mergeUnsigned(cands []Candidate) []Candidate {
	var out []Candidate
	for i := range cands {
		if i+1 < len(cands) && !cands[i+1].EndsWithSignature {
			combine(&cands[i+1], cands[i])
			continue
		}
		out = append(out, cands[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
