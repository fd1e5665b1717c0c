package talk

import "testing"

func TestCombine(t *testing.T) {
	cases := []struct {
		name       string
		pred, succ Candidate
		want       string
	}{
		{"paragraphs", Candidate{Text: "a"}, Candidate{Text: "b"}, "a<br><br>b"},
		{"indented", Candidate{Text: "a"}, Candidate{Text: "b", Depth: 2}, "a<br><br>&#8195;&#8195;b"},
		{"empty successor", Candidate{Text: "a"}, Candidate{Text: "", Depth: 1}, "a"},
		{"successor list", Candidate{Text: "a"}, Candidate{Text: "<ul><li>x</li></ul>"}, "a<ul><li>x</li></ul>"},
		{"predecessor list", Candidate{Text: "<ol><li>x</li></ol>"}, Candidate{Text: "b"}, "<ol><li>x</li></ol>b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred := tc.pred
			combine(&pred, tc.succ)
			if pred.Text != tc.want {
				t.Errorf("expected %q, got %q", tc.want, pred.Text)
			}
		})
	}
}

func TestMergeUnsigned_UnsignedRunJoinsSignedReply(t *testing.T) {
	// Document order: P1, P2 unsigned, then P3 signed.
	cands := []Candidate{
		{Text: "P3", EndsWithSignature: true},
		{Text: "P2"},
		{Text: "P1"},
	}
	got := mergeUnsigned(cands)
	if len(got) != 1 {
		t.Fatalf("expected 1 reply, got %v", texts(got))
	}
	want := "P1<br><br>P2<br><br>P3"
	if got[0].Text != want {
		t.Errorf("expected %q, got %q", want, got[0].Text)
	}
}

func TestMergeUnsigned_SignedRepliesStaySeparate(t *testing.T) {
	cands := []Candidate{
		{Text: "second", EndsWithSignature: true},
		{Text: "first", EndsWithSignature: true},
	}
	got := mergeUnsigned(cands)
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Errorf("expected [first second], got %v", texts(got))
	}
}

func TestMergeUnsigned_TrailingUnsignedSurvives(t *testing.T) {
	// Document order: signed reply, then an unsigned trailer.
	cands := []Candidate{
		{Text: "trailer"},
		{Text: "reply", EndsWithSignature: true},
	}
	got := mergeUnsigned(cands)
	if len(got) != 2 || got[0].Text != "reply" || got[1].Text != "trailer" {
		t.Errorf("expected [reply trailer], got %v", texts(got))
	}
}
