package document

import (
	"errors"
	"testing"
)

func TestInsertAtBoundary(t *testing.T) {
	st := &State{Doc: positionFixture(), Selection: Caret(0)}
	tr := st.NewTransaction()

	// between the two paragraphs of the first page
	if err := tr.InsertAt(5, NewParagraph("New")); err != nil {
		t.Fatalf("InsertAt(5): %v", err)
	}
	st.Apply(tr)

	page := st.Doc.Child(0)
	if page.ChildCount() != 3 {
		t.Fatalf("page has %d children, want 3", page.ChildCount())
	}
	if got := page.Child(1).TextContent(); got != "New" {
		t.Errorf("inserted paragraph text = %q, want %q", got, "New")
	}
}

func TestReplaceRangeNotAligned(t *testing.T) {
	st := &State{Doc: positionFixture()}
	tr := st.NewTransaction()

	// endpoints land inside two different paragraphs
	err := tr.ReplaceRange(3, 6, nil)
	if !errors.Is(err, ErrNotAligned) {
		t.Fatalf("ReplaceRange(3, 6) = %v, want ErrNotAligned", err)
	}
}

func TestReplaceRangeBadBounds(t *testing.T) {
	st := &State{Doc: positionFixture()}
	tr := st.NewTransaction()

	if err := tr.ReplaceRange(6, 3, nil); err == nil {
		t.Error("inverted range accepted")
	}
	if err := tr.ReplaceRange(0, st.Doc.Size()+1, nil); err == nil {
		t.Error("out of range accepted")
	}
}

func TestDeleteRange(t *testing.T) {
	st := &State{Doc: positionFixture()}
	tr := st.NewTransaction()

	// the empty second paragraph of the first page
	if err := tr.DeleteRange(5, 7); err != nil {
		t.Fatalf("DeleteRange(5, 7): %v", err)
	}
	st.Apply(tr)

	if got := st.Doc.Child(0).ChildCount(); got != 1 {
		t.Errorf("page has %d children, want 1", got)
	}
	if got := st.Doc.Size(); got != 15 {
		t.Errorf("document size = %d, want 15", got)
	}
}

func TestReplaceNodeAt(t *testing.T) {
	st := &State{Doc: positionFixture()}
	tr := st.NewTransaction()

	if err := tr.ReplaceNodeAt(1, NewParagraph("Bye")); err != nil {
		t.Fatalf("ReplaceNodeAt(1): %v", err)
	}
	st.Apply(tr)

	if got := st.Doc.Child(0).Child(0).TextContent(); got != "Bye" {
		t.Errorf("replaced paragraph text = %q, want %q", got, "Bye")
	}

	tr = st.NewTransaction()
	if err := tr.ReplaceNodeAt(3, NewParagraph("x")); err == nil {
		t.Error("ReplaceNodeAt at mid-text position succeeded, want error")
	}
}

func TestReplaceDocContent(t *testing.T) {
	st := &State{Doc: positionFixture()}
	tr := st.NewTransaction()

	tr.ReplaceDocContent([]*Node{NewPage(nil, NewParagraph("Only"))})
	st.Apply(tr)

	if st.Doc.ChildCount() != 1 {
		t.Fatalf("document has %d children, want 1", st.Doc.ChildCount())
	}
	if got := st.Doc.Child(0).Child(0).TextContent(); got != "Only" {
		t.Errorf("page content = %q, want %q", got, "Only")
	}
}

func TestApplyClampsSelection(t *testing.T) {
	st := &State{Doc: positionFixture(), Selection: Caret(3)}
	tr := st.NewTransaction()
	tr.SetSelection(1000)
	st.Apply(tr)

	if st.Selection.Head != st.Doc.Size() {
		t.Errorf("selection = %d, want clamped to %d", st.Selection.Head, st.Doc.Size())
	}
}

func TestTransactionDoesNotMutateOldDoc(t *testing.T) {
	doc := positionFixture()
	before := doc.Clone()
	st := &State{Doc: doc}

	tr := st.NewTransaction()
	if err := tr.DeleteRange(5, 7); err != nil {
		t.Fatal(err)
	}
	st.Apply(tr)

	if !doc.Eq(before) {
		t.Error("previous document revision was mutated by the edit")
	}
}

func TestDispatch(t *testing.T) {
	st := &State{Doc: positionFixture(), Selection: Caret(0)}
	dispatch := st.Dispatch()

	tr := st.NewTransaction()
	tr.SetSelection(3)
	dispatch(tr)

	if st.Selection.Head != 3 {
		t.Errorf("selection = %d, want 3", st.Selection.Head)
	}
}
