package document

import "fmt"

// ResolvedPos is a position resolved against a document: the chain of
// ancestor nodes from the root down to the node the position points into,
// with the content start offset of every ancestor.
type ResolvedPos struct {
	Pos int

	nodes   []*Node
	indexes []int
	starts  []int
}

// Resolve locates pos inside doc. Fails when pos falls outside the address
// space.
func Resolve(doc *Node, pos int) (*ResolvedPos, error) {
	if doc == nil || doc.Kind != KindDoc {
		return nil, fmt.Errorf("cannot resolve position against a non-document node")
	}
	if pos < 0 || pos > doc.Size() {
		return nil, fmt.Errorf("position %d outside of document (size %d)", pos, doc.Size())
	}

	r := &ResolvedPos{Pos: pos}
	node, start := doc, 0
	for {
		r.nodes = append(r.nodes, node)
		r.starts = append(r.starts, start)

		off := start
		index := len(node.Children)
		var descend *Node
		descendStart := 0
		for i, ch := range node.Children {
			if pos == off {
				index = i
				break
			}
			sz := ch.Size()
			if pos < off+sz {
				index = i
				if ch.Kind != KindText {
					descend = ch
					descendStart = off + 1
				}
				break
			}
			off += sz
		}
		r.indexes = append(r.indexes, index)
		if descend == nil {
			return r, nil
		}
		node, start = descend, descendStart
	}
}

// Depth is the number of ancestors below the document root; 0 means the
// position sits between top-level children.
func (r *ResolvedPos) Depth() int { return len(r.nodes) - 1 }

// Node returns the ancestor at the given depth (0 is the document).
func (r *ResolvedPos) Node(depth int) *Node { return r.nodes[depth] }

// Index returns the child index the position points at (or into) within the
// ancestor at the given depth.
func (r *ResolvedPos) Index(depth int) int { return r.indexes[depth] }

// Start returns the content start position of the ancestor at the given
// depth.
func (r *ResolvedPos) Start(depth int) int { return r.starts[depth] }

// End returns the content end position of the ancestor at the given depth.
func (r *ResolvedPos) End(depth int) int {
	return r.starts[depth] + r.nodes[depth].ContentSize()
}

// NodeStart returns the position of the ancestor's opening slot. Depth 0 is
// the document, which has none.
func (r *ResolvedPos) NodeStart(depth int) int {
	if depth == 0 {
		return 0
	}
	return r.starts[depth] - 1
}

// ParentOffset is the offset of the position within the content of the
// innermost ancestor.
func (r *ResolvedPos) ParentOffset() int { return r.Pos - r.starts[r.Depth()] }

// FindKind returns the depth of the innermost ancestor of the given kind, or
// -1 when the chain has none.
func (r *ResolvedPos) FindKind(k Kind) int {
	for d := r.Depth(); d >= 0; d-- {
		if r.nodes[d].Kind == k {
			return d
		}
	}
	return -1
}

// NodeAt returns the node whose opening slot (or first text rune) sits
// exactly at pos, or nil.
func NodeAt(doc *Node, pos int) *Node {
	r, err := Resolve(doc, pos)
	if err != nil {
		return nil
	}
	d := r.Depth()
	parent := r.nodes[d]
	if r.Pos != r.starts[d]+childOffset(parent, r.indexes[d]) {
		return nil
	}
	return parent.Child(r.indexes[d])
}

func childOffset(parent *Node, index int) int {
	off := 0
	for i := 0; i < index && i < len(parent.Children); i++ {
		off += parent.Children[i].Size()
	}
	return off
}
