package layout

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"pageflow/document"
	"pageflow/tables"
)

// Engine owns one repagination pipeline: collector, measurer port, table
// flow and page packing. The measurement cache and group registry are
// injected so callers control their lifetime.
type Engine struct {
	measurer Measurer
	resolver AttributeResolver
	cache    *tables.Cache
	groups   *tables.Registry
	floor    float64
	log      *zap.Logger
}

// Options tune an Engine. Zero values select working defaults.
type Options struct {
	MinBlockHeight float64
	Cache          *tables.Cache
	Groups         *tables.Registry
	Log            *zap.Logger
}

func NewEngine(measurer Measurer, resolver AttributeResolver, opts Options) *Engine {
	e := &Engine{
		measurer: measurer,
		resolver: resolver,
		cache:    opts.Cache,
		groups:   opts.Groups,
		floor:    opts.MinBlockHeight,
		log:      opts.Log,
	}
	if e.cache == nil {
		e.cache = tables.NewCache()
	}
	if e.groups == nil {
		e.groups = tables.NewRegistry()
	}
	if e.floor <= 0 {
		e.floor = DefaultMinBlockHeight
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Result is the outcome of one repagination pass. The whole page sequence is
// produced fresh; the input document is never mutated.
type Result struct {
	Doc       *document.Node
	CursorMap map[int]int
	Entries   []ContentEntry
}

type placedNode struct {
	node    *document.Node
	origPos int // -1 for continuation fragments with no source entry
}

type builtPage struct {
	attrs   PageAttrs
	content []placedNode
}

// Repaginate collects the document's flat content, measures it and repacks
// it into pages in a single forward greedy pass. Oversized tables are
// delegated to the table flow splitter; fragments of a previous pass's split
// group are re-merged first so edits inside a split table re-flow cleanly.
func (e *Engine) Repaginate(doc *document.Node) (*Result, error) {
	if doc == nil || doc.Kind != document.KindDoc {
		return nil, fmt.Errorf("repaginate expects a document root node")
	}

	entries := Collect(doc)

	var (
		pages     []builtPage
		cur       []placedNode
		curHeight float64
		pageIndex int
	)
	attrs := e.resolver.AttributesForPage(0)
	budget := attrs.Metrics().ContentHeight
	aliases := make(map[int]int)

	closePage := func() {
		pages = append(pages, builtPage{attrs: attrs, content: cur})
		cur = nil
		curHeight = 0
		pageIndex++
		attrs = e.resolver.AttributesForPage(pageIndex)
		budget = attrs.Metrics().ContentHeight
	}

	place := func(n *document.Node, origPos int, height float64) {
		eff := math.Max(height, e.floor)
		if curHeight+eff > budget && len(cur) > 0 {
			closePage()
		}
		cur = append(cur, placedNode{node: n, origPos: origPos})
		curHeight += eff
	}

	for i := 0; i < len(entries); {
		entry := entries[i]
		if entry.Node.Kind != document.KindTable {
			place(entry.Node, entry.OrigPos, e.measurer.Measure(entry.Node, entry.OrigPos))
			i++
			continue
		}

		table, consumed := e.gatherGroup(entries, i)
		i += len(consumed)

		meas := e.measureTable(table, entry.OrigPos)
		remaining := budget - curHeight
		if len(cur) == 0 {
			remaining = budget
		}
		if meas.Total <= remaining {
			place(table, consumed[0], meas.Total)
			for _, extra := range consumed[1:] {
				aliases[extra] = consumed[0]
			}
			continue
		}

		// when not even the smallest fragment fits the room left here, the
		// table starts on the next page instead of overflowing the sliver
		if len(cur) > 0 && meas.MinFragmentHeight() > remaining {
			closePage()
			remaining = budget
		}

		fullPage := e.resolver.AttributesForPage(pageIndex + 1).Metrics().ContentHeight
		res := tables.Split(table, meas, remaining, fullPage)
		frags, fragMeas := tables.Optimize(res.Fragments, res.Measurements, remaining, fullPage)
		e.groups.Record(&tables.Group{
			ID:        res.GroupID,
			Fragments: frags,
			Original:  table,
			Positions: consumed,
		})
		e.log.Debug("split oversized table",
			zap.String("group", res.GroupID),
			zap.Int("fragments", len(frags)),
			zap.Float64("height", meas.Total))

		for k, frag := range frags {
			orig := -1
			if k < len(consumed) {
				orig = consumed[k]
			}
			place(frag, orig, fragMeas[k].Total)
		}
		if len(consumed) > len(frags) && len(frags) > 0 {
			for _, extra := range consumed[len(frags):] {
				aliases[extra] = consumed[len(frags)-1]
			}
		}
	}
	if len(cur) > 0 || len(pages) == 0 {
		pages = append(pages, builtPage{attrs: attrs, content: cur})
	}

	newDoc, cursor := assemble(pages)
	size := newDoc.Size()
	for from, to := range aliases {
		if mapped, ok := cursor[to]; ok {
			cursor[from] = mapped
		}
	}
	for k, v := range cursor {
		if v < 0 {
			cursor[k] = 0
		} else if v > size {
			cursor[k] = size
		}
	}

	return &Result{Doc: newDoc, CursorMap: cursor, Entries: entries}, nil
}

// gatherGroup returns the table to lay out starting at entry index i and the
// original positions it consumes. Adjacent entries carrying the same split
// group identity are members of one previously split table and are re-merged
// before splitting anew; the old group record is superseded, never merged.
func (e *Engine) gatherGroup(entries []ContentEntry, i int) (*document.Node, []int) {
	node := entries[i].Node
	consumed := []int{entries[i].OrigPos}
	gid := tables.GroupID(node)
	if gid == "" {
		return node, consumed
	}
	frags := []*document.Node{node}
	for j := i + 1; j < len(entries); j++ {
		if entries[j].Node.Kind != document.KindTable || tables.GroupID(entries[j].Node) != gid {
			break
		}
		frags = append(frags, entries[j].Node)
		consumed = append(consumed, entries[j].OrigPos)
	}
	if len(frags) == 1 {
		return node, consumed
	}
	return tables.MergeFragments(frags), consumed
}

func (e *Engine) measureTable(table *document.Node, pos int) tables.Measurement {
	key := tables.Key(table)
	if m, ok := e.cache.Lookup(key); ok && len(m.RowHeights) == table.ChildCount() {
		return m
	}
	m := tables.Measure(table, pos, func(row *document.Node, rowPos int) float64 {
		h := e.measurer.Measure(row, rowPos)
		return math.Max(h, e.floor)
	})
	e.cache.Store(key, m)
	return m
}

// assemble turns the packed pages into the rebuilt document and the old to
// new position map. Page open and close slots advance the running offset per
// the address space convention.
func assemble(pages []builtPage) (*document.Node, map[int]int) {
	cursor := make(map[int]int)
	pageNodes := make([]*document.Node, 0, len(pages))
	pos := 0
	for _, pg := range pages {
		childPos := pos + 1
		children := make([]*document.Node, 0, len(pg.content))
		for _, pl := range pg.content {
			if pl.origPos >= 0 {
				cursor[pl.origPos] = childPos
			}
			children = append(children, pl.node)
			childPos += pl.node.Size()
		}
		pageNodes = append(pageNodes, document.NewPage(pg.attrs.NodeAttrs(), children...))
		pos = childPos + 1
	}
	return document.NewDoc(pageNodes...), cursor
}
