package tables

import "pageflow/document"

// GroupAttr carries the split group identity on every fragment of a split
// table.
const GroupAttr = "splitGroup"

// GroupID returns the split group identity stamped on a table fragment, or
// the empty string for an unsplit table.
func GroupID(table *document.Node) string {
	return table.Attr(GroupAttr)
}

// Group tracks the fragments descending from one original table. It is a
// performance aid only; the rebuilt document tree stays authoritative.
type Group struct {
	ID        string
	Fragments []*document.Node
	Original  *document.Node
	Positions []int
}

// Registry keeps the known split groups. It is explicitly constructed and
// passed where needed; entries are superseded wholesale when the same table
// is split again.
type Registry struct {
	groups map[string]*Group
}

func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]*Group)}
}

func (r *Registry) Record(g *Group) {
	if g == nil || g.ID == "" {
		return
	}
	r.groups[g.ID] = g
}

func (r *Registry) Lookup(id string) (*Group, bool) {
	g, ok := r.groups[id]
	return g, ok
}

func (r *Registry) Len() int { return len(r.groups) }

// MergeFragments reassembles the fragments of one split group into a single
// table: header rows are taken once from the first fragment, body rows are
// concatenated in order, and the group identity is cleared.
func MergeFragments(fragments []*document.Node) *document.Node {
	if len(fragments) == 0 {
		return nil
	}
	first := fragments[0]
	headerRows := first.AttrInt(HeaderRowsAttr, 0)
	if headerRows > first.ChildCount() {
		headerRows = first.ChildCount()
	}
	rows := make([]*document.Node, 0)
	rows = append(rows, first.Children...)
	for _, frag := range fragments[1:] {
		skip := frag.AttrInt(HeaderRowsAttr, 0)
		if skip > frag.ChildCount() {
			skip = frag.ChildCount()
		}
		rows = append(rows, frag.Children[skip:]...)
	}

	attrs := make(map[string]any, len(first.Attrs))
	for k, v := range first.Attrs {
		if k == GroupAttr {
			continue
		}
		attrs[k] = v
	}
	merged := first.WithChildren(rows)
	merged.Attrs = attrs
	return merged
}
