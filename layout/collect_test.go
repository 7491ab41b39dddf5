package layout

import (
	"testing"

	"pageflow/document"
)

func TestCollect(t *testing.T) {
	pA := document.NewParagraph("Hi")
	pB := document.NewParagraph("Yo")
	top := document.NewParagraph("Top")
	doc := document.NewDoc(document.NewPage(nil, pA, pB), top)

	entries := Collect(doc)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []struct {
		node *document.Node
		pos  int
	}{
		{node: pA, pos: 1},
		{node: pB, pos: 5},
		{node: top, pos: 10},
	}
	for i, w := range want {
		if entries[i].Node != w.node {
			t.Errorf("entry %d is not the expected node", i)
		}
		if entries[i].OrigPos != w.pos {
			t.Errorf("entry %d position = %d, want %d", i, entries[i].OrigPos, w.pos)
		}
	}
}

func TestCollectEmpty(t *testing.T) {
	if entries := Collect(document.NewDoc()); len(entries) != 0 {
		t.Errorf("got %d entries from an empty document, want 0", len(entries))
	}
	if entries := Collect(document.NewDoc(document.NewPage(nil))); len(entries) != 0 {
		t.Errorf("got %d entries from an empty page, want 0", len(entries))
	}
}
