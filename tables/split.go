package tables

import (
	"github.com/google/uuid"

	"pageflow/document"
)

// RowSpan locates a run of body rows of the original table inside one
// fragment: Start is the index of the first body row (header rows excluded),
// Count the number of rows carried.
type RowSpan struct {
	Start int
	Count int
}

// SplitResult is the outcome of splitting one table.
type SplitResult struct {
	Fragments    []*document.Node
	Measurements []Measurement
	RowMapping   []RowSpan
	GroupID      string
}

// Split fragments a table so that the first fragment fits available (the
// room left on the current page) and every other fragment fits pageHeight.
// Header rows are repeated in every fragment. A table that already fits is
// returned as a single-fragment group. The function is pure: fragments are
// fresh nodes sharing row subtrees with the input, and the row mapping of a
// recursive step is expressed in offsets relative to that step, composed
// into absolute body row indexes before returning.
//
// Base case: a single body row taller than a full page is emitted on its
// own, over budget, rather than dropped.
func Split(table *document.Node, meas Measurement, available, pageHeight float64) SplitResult {
	id := GroupID(table)
	if id == "" {
		id = uuid.NewString()
	}
	fragments, measurements, mapping := split(table, meas, available, pageHeight, id)
	return SplitResult{
		Fragments:    fragments,
		Measurements: measurements,
		RowMapping:   mapping,
		GroupID:      id,
	}
}

func split(table *document.Node, meas Measurement, available, pageHeight float64, id string) ([]*document.Node, []Measurement, []RowSpan) {
	body := meas.bodyStart()
	bodyCount := len(meas.RowHeights) - body

	if meas.Total <= available || bodyCount <= 1 {
		frag := table.WithAttr(GroupAttr, id)
		return []*document.Node{frag}, []Measurement{meas}, []RowSpan{{Start: 0, Count: bodyCount}}
	}

	// Largest body row prefix whose cumulative height, headers included,
	// still fits. At least one row is always taken so that a row taller
	// than the budget cannot stall the split.
	take := 0
	for i := body; i < len(meas.RowHeights); i++ {
		if meas.Cumulative[i] > available && take > 0 {
			break
		}
		take++
		if meas.Cumulative[i] > available {
			break
		}
	}
	if take >= bodyCount {
		take = bodyCount - 1
	}

	first := fragment(table, id, body, body, body+take)
	firstMeas := buildMeasurement(append(append([]float64{}, meas.RowHeights[:body]...), meas.RowHeights[body:body+take]...), body)

	rest := fragment(table, id, body, body+take, len(meas.RowHeights))
	restMeas := buildMeasurement(append(append([]float64{}, meas.RowHeights[:body]...), meas.RowHeights[body+take:]...), body)

	if restMeas.Total <= pageHeight {
		return []*document.Node{first, rest},
			[]Measurement{firstMeas, restMeas},
			[]RowSpan{{Start: 0, Count: take}, {Start: take, Count: bodyCount - take}}
	}

	tailFrags, tailMeas, tailMap := split(rest, restMeas, pageHeight, pageHeight, id)
	for i := range tailMap {
		tailMap[i].Start += take
	}
	return append([]*document.Node{first}, tailFrags...),
		append([]Measurement{firstMeas}, tailMeas...),
		append([]RowSpan{{Start: 0, Count: take}}, tailMap...)
}

// fragment builds one table fragment carrying the header rows plus the body
// rows [from, to).
func fragment(table *document.Node, id string, headerRows, from, to int) *document.Node {
	rows := make([]*document.Node, 0, headerRows+(to-from))
	rows = append(rows, table.Children[:headerRows]...)
	rows = append(rows, table.Children[from:to]...)
	return table.WithAttr(GroupAttr, id).WithChildren(rows)
}
