package layout

import "pageflow/document"

// RelocateSelection translates a cursor position from the pre-layout
// document into the post-layout one. It finds the content entry whose old
// range contains the position, carries the intra-node offset over to the
// entry's mapped new start, and disambiguates the landing point against page
// boundaries. Returns -1 when the position cannot be resolved; callers fall
// back to the end of the document.
func RelocateSelection(oldPos int, cursorMap map[int]int, entries []ContentEntry, newDoc *document.Node) int {
	size := newDoc.Size()
	for _, e := range entries {
		if oldPos < e.OrigPos || oldPos > e.OrigPos+e.Node.Size() {
			continue
		}
		newStart, ok := cursorMap[e.OrigPos]
		if !ok {
			continue
		}
		cand := newStart + (oldPos - e.OrigPos)
		if cand < 0 {
			cand = 0
		} else if cand > size {
			cand = size
		}
		return Disambiguate(newDoc, cand)
	}
	return -1
}

// RelocateOrEnd is RelocateSelection with the documented fallback applied:
// an unresolvable position lands at the last valid text position of the
// document.
func RelocateOrEnd(oldPos int, cursorMap map[int]int, entries []ContentEntry, newDoc *document.Node) int {
	if pos := RelocateSelection(oldPos, cursorMap, entries, newDoc); pos >= 0 {
		return pos
	}
	return nearestTextPosition(newDoc, newDoc.Size())
}

// boundaryAction is what to do with a relocated point that sits on a page
// boundary.
type boundaryAction int

const (
	actionKeep boundaryAction = iota
	actionBlockStart
	actionBlockEnd
)

// boundaryPolicy is the disambiguation decision table, keyed by the four
// boundary flags packed into a bitmask. Spelling out all sixteen rows keeps
// the policy auditable even though several combinations cannot occur
// (a page's exact start always sits at its first child).
//
//	bit 0: point is at/inside the first child of its page
//	bit 1: point is the exact page content start
//	bit 2: point is at/inside the last child of its page
//	bit 3: point is the exact page content end
var boundaryPolicy = [16]boundaryAction{
	0b0000: actionKeep,
	0b0001: actionKeep,       // first child, interior
	0b0010: actionBlockStart, // page start off the first child: prefer next block
	0b0011: actionBlockStart, // page start at first child: enter it
	0b0100: actionKeep,       // last child, interior
	0b0101: actionKeep,       // sole child, interior
	0b0110: actionBlockStart,
	0b0111: actionBlockStart, // page start, sole child
	0b1000: actionBlockEnd,   // page end off the last child: prefer previous block
	0b1001: actionBlockEnd,
	0b1010: actionBlockStart, // empty page: both boundaries collapse
	0b1011: actionBlockStart,
	0b1100: actionBlockEnd, // page end at last child: enter it from the end
	0b1101: actionBlockEnd,
	0b1110: actionBlockStart,
	0b1111: actionBlockStart, // empty sole-child page
}

func policyIndex(firstChild, exactStart, lastChild, exactEnd bool) int {
	idx := 0
	if firstChild {
		idx |= 1 << 0
	}
	if exactStart {
		idx |= 1 << 1
	}
	if lastChild {
		idx |= 1 << 2
	}
	if exactEnd {
		idx |= 1 << 3
	}
	return idx
}

// Disambiguate snaps a relocated point to a concrete selection. Points on
// the exact page start or end are moved into the adjacent text block per the
// decision table; points left next to structural nodes snap to the nearest
// valid text position instead of an arbitrary fallback.
func Disambiguate(doc *document.Node, pos int) int {
	rp, err := document.Resolve(doc, pos)
	if err != nil || rp.Depth() < 1 || rp.Node(1).Kind != document.KindPage {
		return nearestTextPosition(doc, pos)
	}

	page := rp.Node(1)
	idx := rp.Index(1)
	flags := policyIndex(
		idx == 0,
		pos == rp.Start(1),
		idx >= page.ChildCount()-1,
		pos == rp.End(1),
	)

	out := pos
	switch boundaryPolicy[flags] {
	case actionBlockStart:
		if block := page.Child(idx); block != nil {
			out = blockContentStart(rp.Start(1), page, idx)
		}
	case actionBlockEnd:
		if last := page.ChildCount() - 1; last >= 0 {
			out = blockContentStart(rp.Start(1), page, last) + page.Child(last).ContentSize()
		}
	}

	if isTextPosition(doc, out) {
		return out
	}
	return nearestTextPosition(doc, out)
}

// blockContentStart is the content start position of the page child at the
// given index.
func blockContentStart(pageStart int, page *document.Node, index int) int {
	off := pageStart
	for i := 0; i < index && i < page.ChildCount(); i++ {
		off += page.Child(i).Size()
	}
	return off + 1
}

// isTextPosition reports whether pos sits inside a text-bearing block.
func isTextPosition(doc *document.Node, pos int) bool {
	rp, err := document.Resolve(doc, pos)
	if err != nil {
		return false
	}
	return rp.Node(rp.Depth()).IsTextBlock()
}

// nearestTextPosition picks the valid text position closest to pos,
// preferring the forward direction on ties. Falls back to the document end
// when the document has no text blocks at all.
func nearestTextPosition(doc *document.Node, pos int) int {
	type span struct{ start, end int }
	var spans []span
	var walk func(n *document.Node, start int)
	walk = func(n *document.Node, start int) {
		if n.IsTextBlock() {
			spans = append(spans, span{start: start, end: start + n.ContentSize()})
			return
		}
		childPos := start
		for _, ch := range n.Children {
			if ch.Kind != document.KindText {
				walk(ch, childPos+1)
			}
			childPos += ch.Size()
		}
	}
	walk(doc, 0)

	if len(spans) == 0 {
		return doc.Size()
	}
	best := -1
	bestDist := -1
	for _, s := range spans {
		cand := pos
		if cand < s.start {
			cand = s.start
		} else if cand > s.end {
			cand = s.end
		}
		dist := cand - pos
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist || (dist == bestDist && cand > best) {
			best, bestDist = cand, dist
		}
	}
	return best
}
