package document

import "testing"

func TestNodeSize(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{name: "text", node: NewText("Hello"), want: 5},
		{name: "empty paragraph", node: NewParagraph(""), want: 2},
		{name: "paragraph", node: NewParagraph("Hello"), want: 7},
		{name: "unicode text", node: NewParagraph("héllo"), want: 7},
		{
			name: "table",
			node: NewTable(nil, NewTableRow(NewTableCell("ab"), NewTableCell("c"))),
			want: 2 + 2 + 4 + 3,
		},
		{
			name: "page",
			node: NewPage(nil, NewParagraph("Hi"), NewParagraph("")),
			want: 2 + 4 + 2,
		},
		{
			name: "doc has no own boundaries",
			node: NewDoc(NewPage(nil, NewParagraph("Hi"))),
			want: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTextContent(t *testing.T) {
	table := NewTable(nil,
		NewTableRow(NewTableCell("a"), NewTableCell("b")),
		NewTableRow(NewTableCell("c")),
	)
	if got := table.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want %q", got, "abc")
	}
}

func TestIsTextBlock(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{name: "paragraph", node: NewParagraph("x"), want: true},
		{name: "empty paragraph", node: NewParagraph(""), want: true},
		{name: "cell", node: NewTableCell("x"), want: true},
		{name: "text leaf", node: NewText("x"), want: false},
		{name: "page", node: NewPage(nil, NewParagraph("x")), want: false},
		{name: "table", node: NewTable(nil, NewTableRow(NewTableCell("x"))), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsTextBlock(); got != tt.want {
				t.Errorf("IsTextBlock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithAttrDoesNotMutate(t *testing.T) {
	table := NewTable(map[string]any{"headerRows": "1"}, NewTableRow(NewTableCell("x")))
	stamped := table.WithAttr("splitGroup", "g1")

	if table.Attr("splitGroup") != "" {
		t.Error("WithAttr mutated the original node")
	}
	if stamped.Attr("splitGroup") != "g1" || stamped.Attr("headerRows") != "1" {
		t.Errorf("stamped attrs = %v", stamped.Attrs)
	}
	if stamped.ChildCount() != table.ChildCount() {
		t.Error("WithAttr changed content")
	}
}

func TestCloneEq(t *testing.T) {
	doc := NewDoc(
		NewPage(map[string]any{"paper": "A4"}, NewParagraph("Hello")),
		NewPage(nil, NewTable(map[string]any{"headerRows": "1"},
			NewTableRow(NewTableCell("h")),
			NewTableRow(NewTableCell("b")),
		)),
	)
	clone := doc.Clone()
	if !doc.Eq(clone) {
		t.Fatal("clone is not structurally equal to the original")
	}
	clone.Child(0).Child(0).Children[0].Text = "Bye"
	if doc.Eq(clone) {
		t.Fatal("Eq missed a text difference")
	}
}
