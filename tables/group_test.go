package tables

import (
	"testing"

	"pageflow/document"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("g-1"); ok {
		t.Fatal("lookup hit on an empty registry")
	}

	first := &Group{ID: "g-1", Fragments: []*document.Node{tableOf(0, "a")}}
	r.Record(first)
	second := &Group{ID: "g-1", Fragments: []*document.Node{tableOf(0, "a"), tableOf(0, "b")}}
	r.Record(second)

	g, ok := r.Lookup("g-1")
	if !ok {
		t.Fatal("recorded group not found")
	}
	// re-recording supersedes, never merges
	if len(g.Fragments) != 2 {
		t.Errorf("group has %d fragments, want the superseding record's 2", len(g.Fragments))
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	r.Record(&Group{ID: ""})
	if r.Len() != 1 {
		t.Error("group without identity was recorded")
	}
}
