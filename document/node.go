// Package document implements the node tree the layout engine operates on,
// together with its linear position address space and atomic transactions.
//
// Every node and its boundaries consume address slots: a text node occupies
// one slot per rune, any other node occupies an opening slot, its content,
// and a closing slot. The document root contributes no slots of its own, so
// document size equals the sum of its children. Positions are never stored
// on nodes - they are derived by prefix-summing sibling sizes during walks,
// which keeps nodes free of parent references.
package document

import (
	"strconv"
	"strings"
)

// Kind is the node type tag.
type Kind int

const (
	KindDoc Kind = iota
	KindPage
	KindBody
	KindParagraph
	KindTable
	KindTableRow
	KindTableCell
	KindText
)

var kindNames = map[Kind]string{
	KindDoc:       "doc",
	KindPage:      "page",
	KindBody:      "body",
	KindParagraph: "paragraph",
	KindTable:     "table",
	KindTableRow:  "row",
	KindTableCell: "cell",
	KindText:      "text",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindDoc, false
}

// Node is a single node of the document tree. Children are owned by their
// parent; there are no parent pointers.
type Node struct {
	Kind     Kind
	Attrs    map[string]any
	Children []*Node
	Text     string // payload for KindText only
}

func NewDoc(children ...*Node) *Node {
	return &Node{Kind: KindDoc, Children: children}
}

func NewText(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

func NewParagraph(text string) *Node {
	p := &Node{Kind: KindParagraph}
	if len(text) > 0 {
		p.Children = []*Node{NewText(text)}
	}
	return p
}

func NewTableRow(cells ...*Node) *Node {
	return &Node{Kind: KindTableRow, Children: cells}
}

func NewTableCell(text string) *Node {
	c := &Node{Kind: KindTableCell}
	if len(text) > 0 {
		c.Children = []*Node{NewText(text)}
	}
	return c
}

func NewTable(attrs map[string]any, rows ...*Node) *Node {
	return &Node{Kind: KindTable, Attrs: attrs, Children: rows}
}

func NewPage(attrs map[string]any, children ...*Node) *Node {
	return &Node{Kind: KindPage, Attrs: attrs, Children: children}
}

// Size returns the number of address slots the node occupies, including its
// own boundaries. The document root has no boundaries of its own.
func (n *Node) Size() int {
	switch n.Kind {
	case KindText:
		return len([]rune(n.Text))
	case KindDoc:
		return n.contentSize()
	default:
		return 2 + n.contentSize()
	}
}

// ContentSize returns the number of slots occupied by the node's content.
func (n *Node) ContentSize() int {
	if n.Kind == KindText {
		return len([]rune(n.Text))
	}
	return n.contentSize()
}

func (n *Node) contentSize() int {
	size := 0
	for _, ch := range n.Children {
		size += ch.Size()
	}
	return size
}

func (n *Node) ChildCount() int { return len(n.Children) }

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Kind == KindText {
		return n.Text
	}
	var sb strings.Builder
	for _, ch := range n.Children {
		sb.WriteString(ch.TextContent())
	}
	return sb.String()
}

// IsTextBlock reports whether the node is a text-bearing block: a paragraph
// or any non-structural leaf container whose children are all text.
func (n *Node) IsTextBlock() bool {
	switch n.Kind {
	case KindParagraph, KindTableCell:
	default:
		return false
	}
	for _, ch := range n.Children {
		if ch.Kind != KindText {
			return false
		}
	}
	return true
}

func (n *Node) IsEmpty() bool { return n.ContentSize() == 0 }

// Attr returns a string attribute, or the empty string when absent.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	if v, ok := n.Attrs[name].(string); ok {
		return v
	}
	return ""
}

// AttrInt returns an integer attribute, or def when absent or malformed.
// String values are parsed, since XML interchange carries every attribute as
// a string.
func (n *Node) AttrInt(name string, def int) int {
	if n.Attrs == nil {
		return def
	}
	switch v := n.Attrs[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		return def
	default:
		return def
	}
}

// WithAttr returns a shallow copy of the node carrying the extra attribute.
// Children are shared, never mutated.
func (n *Node) WithAttr(name string, value any) *Node {
	attrs := make(map[string]any, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[name] = value
	return &Node{Kind: n.Kind, Attrs: attrs, Children: n.Children, Text: n.Text}
}

// WithChildren returns a shallow copy of the node with replaced content.
func (n *Node) WithChildren(children []*Node) *Node {
	return &Node{Kind: n.Kind, Attrs: n.Attrs, Children: children, Text: n.Text}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	out := &Node{Kind: n.Kind, Text: n.Text}
	if n.Attrs != nil {
		out.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			out.Children[i] = ch.Clone()
		}
	}
	return out
}

// Eq reports deep structural equality, attributes included.
func (n *Node) Eq(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Text != other.Text || len(n.Children) != len(other.Children) || len(n.Attrs) != len(other.Attrs) {
		return false
	}
	for k, v := range n.Attrs {
		if ov, ok := other.Attrs[k]; !ok || ov != v {
			return false
		}
	}
	for i, ch := range n.Children {
		if !ch.Eq(other.Children[i]) {
			return false
		}
	}
	return true
}
