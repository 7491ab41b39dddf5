package layout

import (
	"testing"

	"pageflow/document"
)

// mapperFixture paginates five "Hello" paragraphs into two pages of three and
// two blocks. New layout positions:
//
//	page0 [0,23): blocks at 1, 8, 15
//	page1 [23,39): blocks at 24, 31
func mapperFixture(t *testing.T) *Result {
	t.Helper()
	doc := document.NewDoc(paragraphs(5)...)
	res, err := testEngine(t, constHeight(20), 65).Repaginate(doc)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRelocateSelection(t *testing.T) {
	res := mapperFixture(t)

	tests := []struct {
		name string
		old  int
		want int
	}{
		// old positions: paragraphs at 0, 7, 14, 21, 28, content one slot in
		{name: "inside first paragraph", old: 3, want: 4},
		{name: "inside pushed paragraph", old: 23, want: 26},
		{name: "boundary before pushed paragraph stays on previous page", old: 21, want: 21},
		{name: "boundary between paragraphs snaps forward", old: 7, want: 9},
		{name: "document start", old: 0, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelocateSelection(tt.old, res.CursorMap, res.Entries, res.Doc)
			if got != tt.want {
				t.Errorf("RelocateSelection(%d) = %d, want %d", tt.old, got, tt.want)
			}
		})
	}
}

func TestRelocateSelectionUnresolved(t *testing.T) {
	res := mapperFixture(t)

	if got := RelocateSelection(100, res.CursorMap, res.Entries, res.Doc); got != -1 {
		t.Errorf("RelocateSelection(100) = %d, want -1", got)
	}
	// the documented fallback: land at the last valid text position
	if got := RelocateOrEnd(100, res.CursorMap, res.Entries, res.Doc); got != 37 {
		t.Errorf("RelocateOrEnd(100) = %d, want 37", got)
	}
}

func TestDisambiguate(t *testing.T) {
	res := mapperFixture(t)

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{name: "interior text position kept", pos: 4, want: 4},
		{name: "page content start enters first block", pos: 24, want: 25},
		{name: "page content end enters last block from the end", pos: 22, want: 21},
		{name: "between blocks snaps to nearest text, forward on tie", pos: 8, want: 9},
		{name: "document end pulled into last block", pos: 39, want: 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Disambiguate(res.Doc, tt.pos); got != tt.want {
				t.Errorf("Disambiguate(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestDisambiguateEmptyPage(t *testing.T) {
	res, err := testEngine(t, constHeight(20), 65).Repaginate(document.NewDoc())
	if err != nil {
		t.Fatal(err)
	}
	// a document with no text at all resolves to its end
	if got := Disambiguate(res.Doc, 1); got != res.Doc.Size() {
		t.Errorf("Disambiguate(1) = %d, want %d", got, res.Doc.Size())
	}
}
