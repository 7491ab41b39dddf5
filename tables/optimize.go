package tables

import "pageflow/document"

// A fragment counts as markedly underflowing when it fills less than this
// share of its budget while a later fragment still has rows to give.
const underflowRatio = 0.5

type fragState struct {
	template *document.Node
	headers  []*document.Node
	headerH  []float64
	rows     []*document.Node
	heights  []float64
}

func (f *fragState) total() float64 {
	t := 0.0
	for _, h := range f.headerH {
		t += h
	}
	for _, h := range f.heights {
		t += h
	}
	return t
}

// Optimize rebalances the fragments of one split group against their true
// budgets: firstBudget for the first fragment, pageBudget for every later
// one. The pass is strictly forward and non-mutating with respect to its
// inputs. Per fragment exactly one correction is applied: an overflowing
// fragment pushes its minimal trailing row run into the next fragment
// (created on demand), otherwise a markedly underflowing fragment pulls the
// maximal leading run of the next fragment that still fits. Fragments left
// without body rows are dropped, so the result is never longer than needed.
func Optimize(fragments []*document.Node, measurements []Measurement, firstBudget, pageBudget float64) ([]*document.Node, []Measurement) {
	if len(fragments) == 0 || len(fragments) != len(measurements) {
		return fragments, measurements
	}

	states := make([]*fragState, len(fragments))
	for i, frag := range fragments {
		m := measurements[i]
		body := m.bodyStart()
		states[i] = &fragState{
			template: frag,
			headers:  frag.Children[:min(body, frag.ChildCount())],
			headerH:  append([]float64{}, m.RowHeights[:body]...),
			rows:     append([]*document.Node{}, frag.Children[min(body, frag.ChildCount()):]...),
			heights:  append([]float64{}, m.RowHeights[body:]...),
		}
	}

	for i := 0; i < len(states); i++ {
		budget := pageBudget
		if i == 0 {
			budget = firstBudget
		}
		cur := states[i]

		if cur.total() > budget {
			// Push the minimal trailing run to the next fragment; a
			// lone oversized row stays put (recursive base case).
			next := ensureNext(&states, i, cur)
			for len(cur.rows) > 1 && cur.total() > budget {
				last := len(cur.rows) - 1
				next.rows = append([]*document.Node{cur.rows[last]}, next.rows...)
				next.heights = append([]float64{cur.heights[last]}, next.heights...)
				cur.rows = cur.rows[:last]
				cur.heights = cur.heights[:last]
			}
			continue
		}

		if i+1 < len(states) && cur.total() < budget*underflowRatio {
			next := states[i+1]
			for len(next.rows) > 0 && cur.total()+next.heights[0] <= budget {
				cur.rows = append(cur.rows, next.rows[0])
				cur.heights = append(cur.heights, next.heights[0])
				next.rows = next.rows[1:]
				next.heights = next.heights[1:]
			}
		}
	}

	outFrags := make([]*document.Node, 0, len(states))
	outMeas := make([]Measurement, 0, len(states))
	for _, st := range states {
		if len(st.rows) == 0 {
			continue
		}
		children := make([]*document.Node, 0, len(st.headers)+len(st.rows))
		children = append(children, st.headers...)
		children = append(children, st.rows...)
		outFrags = append(outFrags, st.template.WithChildren(children))
		outMeas = append(outMeas, buildMeasurement(append(append([]float64{}, st.headerH...), st.heights...), len(st.headerH)))
	}
	return outFrags, outMeas
}

// ensureNext returns the fragment after index i, creating an empty one with
// the same headers and template when the overflow happens on the last
// fragment.
func ensureNext(states *[]*fragState, i int, cur *fragState) *fragState {
	if i+1 < len(*states) {
		return (*states)[i+1]
	}
	next := &fragState{
		template: cur.template,
		headers:  cur.headers,
		headerH:  append([]float64{}, cur.headerH...),
	}
	*states = append(*states, next)
	return next
}
