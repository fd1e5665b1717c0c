package talk

import "testing"

func texts(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}

func TestFoldListItems_SimpleList(t *testing.T) {
	// <p>intro ~~~~</p><ul><li>A</li><li>B</li><li>C</li></ul>, in scan order.
	cands := []Candidate{
		{Depth: 1, IsListItem: true, SiblingIndex: 2, Text: "C"},
		{Depth: 1, IsListItem: true, SiblingIndex: 1, Text: "B"},
		{Depth: 1, IsListItem: true, SiblingIndex: 0, Text: "A"},
		{Depth: 0, SiblingIndex: -1, EndsWithSignature: true, Text: "intro"},
	}
	got := foldListItems(cands)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(got), texts(got))
	}
	want := "<ul><li>A</li><li>B</li><li>C</li></ul>"
	if got[0].Text != want {
		t.Errorf("expected %q, got %q", want, got[0].Text)
	}
	if got[1].Text != "intro" {
		t.Errorf("expected intro to survive, got %q", got[1].Text)
	}
}

func TestFoldListItems_Ordered(t *testing.T) {
	cands := []Candidate{
		{Depth: 1, IsListItem: true, IsOrderedListItem: true, SiblingIndex: 1, Text: "two"},
		{Depth: 1, IsListItem: true, IsOrderedListItem: true, SiblingIndex: 0, Text: "one"},
		{Depth: 0, SiblingIndex: -1, EndsWithSignature: true, Text: "intro"},
	}
	got := foldListItems(cands)
	if got[0].Text != "<ol><li>one</li><li>two</li></ol>" {
		t.Errorf("unexpected text %q", got[0].Text)
	}
}

func TestFoldListItems_SignedItemsStay(t *testing.T) {
	cands := []Candidate{
		{Depth: 1, IsListItem: true, SiblingIndex: 1, EndsWithSignature: true, Text: "B"},
		{Depth: 1, IsListItem: true, SiblingIndex: 0, EndsWithSignature: true, Text: "A"},
		{Depth: 0, SiblingIndex: -1, EndsWithSignature: true, Text: "intro"},
	}
	got := foldListItems(cands)
	if len(got) != 3 {
		t.Errorf("expected signed items to be left alone, got %v", texts(got))
	}
}

func TestFoldListItems_NestedListJoinsParentItem(t *testing.T) {
	// <p>intro ~~~~</p><ul><li>Parent<ul><li>X</li><li>Y</li></ul></li></ul>
	cands := []Candidate{
		{Depth: 2, IsListItem: true, SiblingIndex: 1, Text: "Y"},
		{Depth: 2, IsListItem: true, SiblingIndex: 0, Text: "X"},
		{Depth: 1, IsListItem: true, SiblingIndex: 0, Text: "Parent"},
		{Depth: 0, SiblingIndex: -1, EndsWithSignature: true, Text: "intro"},
	}
	got := foldListItems(cands)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %v", texts(got))
	}
	want := "Parent<ul><li>X</li><li>Y</li></ul>"
	if got[0].Text != want {
		t.Errorf("expected %q, got %q", want, got[0].Text)
	}
	if got[0].Depth != 1 {
		t.Errorf("expected folded parent at depth 1, got %d", got[0].Depth)
	}
}

func TestFoldListItems_ThreeLevels(t *testing.T) {
	// <p>intro ~~~~</p><ul><li>A<ul><li>B<ul><li>C1</li><li>C2</li></ul></li><li>B2</li></ul></li><li>A2</li></ul>
	cands := []Candidate{
		{Depth: 1, IsListItem: true, SiblingIndex: 1, Text: "A2"},
		{Depth: 2, IsListItem: true, SiblingIndex: 1, Text: "B2"},
		{Depth: 3, IsListItem: true, SiblingIndex: 1, Text: "C2"},
		{Depth: 3, IsListItem: true, SiblingIndex: 0, Text: "C1"},
		{Depth: 2, IsListItem: true, SiblingIndex: 0, Text: "B"},
		{Depth: 1, IsListItem: true, SiblingIndex: 0, Text: "A"},
		{Depth: 0, SiblingIndex: 1, EndsWithSignature: true, Text: "intro"},
	}
	got := foldListItems(cands)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %v", texts(got))
	}
	want := "<ul><li>A<ul><li>B<ul><li>C1</li><li>C2</li></ul></li><li>B2</li></ul></li><li>A2</li></ul>"
	if got[0].Text != want {
		t.Errorf("expected %q, got %q", want, got[0].Text)
	}
	if got[0].Depth != 1 {
		t.Errorf("expected folded list at depth 1, got %d", got[0].Depth)
	}
	if got[1].Text != "intro" {
		t.Errorf("expected intro to survive, got %q", got[1].Text)
	}
}

func TestFoldListItems_SignedParentStopsReattach(t *testing.T) {
	// Same shape with A and A2 signed: the B list folds but stays out of A.
	cands := []Candidate{
		{Depth: 1, IsListItem: true, SiblingIndex: 1, EndsWithSignature: true, Text: "A2"},
		{Depth: 2, IsListItem: true, SiblingIndex: 1, Text: "B2"},
		{Depth: 3, IsListItem: true, SiblingIndex: 1, Text: "C2"},
		{Depth: 3, IsListItem: true, SiblingIndex: 0, Text: "C1"},
		{Depth: 2, IsListItem: true, SiblingIndex: 0, Text: "B"},
		{Depth: 1, IsListItem: true, SiblingIndex: 0, EndsWithSignature: true, Text: "A"},
		{Depth: 0, SiblingIndex: 1, EndsWithSignature: true, Text: "intro"},
	}
	got := foldListItems(cands)
	want := []string{"A2", "<ul><li>B<ul><li>C1</li><li>C2</li></ul></li><li>B2</li></ul>", "A", "intro"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, texts(got))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("candidate %d: expected %q, got %q", i, want[i], got[i].Text)
		}
	}
	if got[1].Depth != 2 {
		t.Errorf("expected B list at depth 2, got %d", got[1].Depth)
	}
}

func TestFoldListItems_Empty(t *testing.T) {
	if got := foldListItems(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
