package document

import (
	"errors"
	"fmt"
)

// ErrNotAligned is returned when a structural edit range does not cut the
// tree at node boundaries.
var ErrNotAligned = errors.New("range is not aligned to node boundaries")

// Selection is a caret or range selection in the document address space.
type Selection struct {
	Anchor int
	Head   int
}

func Caret(pos int) Selection { return Selection{Anchor: pos, Head: pos} }

func (s Selection) IsCaret() bool { return s.Anchor == s.Head }

// State is the editor state the boundary edit commands operate on.
type State struct {
	Doc       *Node
	Selection Selection
}

// DispatchFunc commits a fully computed transaction. Commands compute the
// whole edit first and dispatch at most once.
type DispatchFunc func(*Transaction)

// Transaction accumulates structural edits against a working copy of the
// document. Edits rebuild the affected spine of the tree; untouched subtrees
// are shared with the previous document, which is safe because nodes are
// never mutated in place.
type Transaction struct {
	doc *Node
	sel Selection
}

func (st *State) NewTransaction() *Transaction {
	return &Transaction{doc: st.Doc, sel: st.Selection}
}

// Apply makes the transaction's document and selection the current state.
// The selection is clamped to the new document size.
func (st *State) Apply(tr *Transaction) {
	st.Doc = tr.doc
	size := tr.doc.Size()
	st.Selection = Selection{Anchor: clamp(tr.sel.Anchor, 0, size), Head: clamp(tr.sel.Head, 0, size)}
}

// Dispatch returns a DispatchFunc bound to the state.
func (st *State) Dispatch() DispatchFunc {
	return func(tr *Transaction) { st.Apply(tr) }
}

func (tr *Transaction) Doc() *Node { return tr.doc }

func (tr *Transaction) SetSelection(pos int) { tr.sel = Caret(pos) }

// ReplaceDocContent atomically replaces the whole top-level child sequence.
// Used by repagination to swap the page sequence in one step.
func (tr *Transaction) ReplaceDocContent(children []*Node) {
	tr.doc = tr.doc.WithChildren(children)
}

// ReplaceRange replaces the content between from and to with the given
// nodes. Both endpoints must cut the tree at node boundaries under a common
// parent; anything else is a lookup miss reported as ErrNotAligned.
func (tr *Transaction) ReplaceRange(from, to int, content []*Node) error {
	if from > to {
		return fmt.Errorf("inverted range [%d, %d)", from, to)
	}
	if from < 0 || to > tr.doc.Size() {
		return fmt.Errorf("range [%d, %d) outside of document (size %d)", from, to, tr.doc.Size())
	}
	doc, err := spliceRange(tr.doc, 0, from, to, content)
	if err != nil {
		return err
	}
	tr.doc = doc
	return nil
}

// DeleteRange removes the content between from and to.
func (tr *Transaction) DeleteRange(from, to int) error {
	return tr.ReplaceRange(from, to, nil)
}

// InsertAt inserts nodes at a boundary position.
func (tr *Transaction) InsertAt(pos int, nodes ...*Node) error {
	return tr.ReplaceRange(pos, pos, nodes)
}

// ReplaceNodeAt replaces the single node starting at pos.
func (tr *Transaction) ReplaceNodeAt(pos int, replacement *Node) error {
	n := NodeAt(tr.doc, pos)
	if n == nil {
		return fmt.Errorf("no node starts at position %d", pos)
	}
	return tr.ReplaceRange(pos, pos+n.Size(), []*Node{replacement})
}

// spliceRange rebuilds node n (whose content starts at start) with the range
// [from, to) replaced by content. The range either aligns to child
// boundaries of n, or falls strictly inside a single non-text child, in
// which case the splice recurses.
func spliceRange(n *Node, start, from, to int, content []*Node) (*Node, error) {
	off := start
	fromIdx, toIdx := -1, -1
	innerIdx := -1
	innerStart := 0
	for i, ch := range n.Children {
		sz := ch.Size()
		if from == off {
			fromIdx = i
		}
		if to == off {
			toIdx = i
		}
		if from > off && from < off+sz && innerIdx < 0 {
			innerIdx, innerStart = i, off
		}
		if to > off && to < off+sz && innerIdx >= 0 && innerStart != off {
			// endpoints land inside different children
			return nil, ErrNotAligned
		}
		off += sz
	}
	if from == off {
		fromIdx = len(n.Children)
	}
	if to == off {
		toIdx = len(n.Children)
	}

	if fromIdx >= 0 && toIdx >= 0 {
		children := make([]*Node, 0, len(n.Children)-(toIdx-fromIdx)+len(content))
		children = append(children, n.Children[:fromIdx]...)
		children = append(children, content...)
		children = append(children, n.Children[toIdx:]...)
		return n.WithChildren(children), nil
	}

	if innerIdx < 0 {
		return nil, ErrNotAligned
	}
	inner := n.Children[innerIdx]
	if inner.Kind == KindText {
		return nil, ErrNotAligned
	}
	if from <= innerStart || to >= innerStart+inner.Size() {
		return nil, ErrNotAligned
	}
	replaced, err := spliceRange(inner, innerStart+1, from, to, content)
	if err != nil {
		return nil, err
	}
	children := make([]*Node, len(n.Children))
	copy(children, n.Children)
	children[innerIdx] = replaced
	return n.WithChildren(children), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
