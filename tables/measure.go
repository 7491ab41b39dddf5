// Package tables implements table flow across page boundaries: measuring a
// table row by row, splitting an oversized table into fragments that share a
// group identity, and rebalancing rows between the fragments of a group.
package tables

import "pageflow/document"

// HeaderRowsAttr marks how many leading rows of a table are header rows,
// repeated in every fragment the table is split into.
const HeaderRowsAttr = "headerRows"

// RowMeasurer returns the rendered height of a table row located at the
// given position.
type RowMeasurer func(row *document.Node, pos int) float64

// Measurement is the per-row height breakdown of one table.
type Measurement struct {
	RowHeights  []float64
	HeaderRows  int
	Total       float64
	Cumulative  []float64
	BreakPoints []int
}

// Measure produces the measurement of a table whose opening slot sits at
// pos. Row positions are derived by prefix-summing row sizes.
func Measure(table *document.Node, pos int, measure RowMeasurer) Measurement {
	heights := make([]float64, 0, table.ChildCount())
	rowPos := pos + 1
	for _, row := range table.Children {
		heights = append(heights, measure(row, rowPos))
		rowPos += row.Size()
	}
	return buildMeasurement(heights, table.AttrInt(HeaderRowsAttr, 0))
}

// Empty reports whether the table produced no measurable rows.
func (m Measurement) Empty() bool { return len(m.RowHeights) == 0 }

// bodyStart returns the index of the first non-header row.
func (m Measurement) bodyStart() int {
	if m.HeaderRows < 0 {
		return 0
	}
	if m.HeaderRows > len(m.RowHeights) {
		return len(m.RowHeights)
	}
	return m.HeaderRows
}

// headerHeight is the combined height of the header rows.
func (m Measurement) headerHeight() float64 {
	h := 0.0
	for i := 0; i < m.bodyStart(); i++ {
		h += m.RowHeights[i]
	}
	return h
}

// MinFragmentHeight is the height of the smallest fragment the table can be
// split into: the header rows plus the first body row. When even that does
// not fit the room left on a page, splitting there is pointless and the table
// should start on the next page.
func (m Measurement) MinFragmentHeight() float64 {
	h := m.headerHeight()
	if b := m.bodyStart(); b < len(m.RowHeights) {
		h += m.RowHeights[b]
	}
	return h
}

// buildMeasurement derives the cumulative sums, total and break points from
// raw row heights. Break points are the body row indexes before which the
// table may be split.
func buildMeasurement(rowHeights []float64, headerRows int) Measurement {
	m := Measurement{RowHeights: rowHeights, HeaderRows: headerRows}
	if headerRows > len(rowHeights) {
		m.HeaderRows = len(rowHeights)
	}
	sum := 0.0
	m.Cumulative = make([]float64, len(rowHeights))
	for i, h := range rowHeights {
		sum += h
		m.Cumulative[i] = sum
	}
	m.Total = sum
	for i := m.bodyStart() + 1; i < len(rowHeights); i++ {
		m.BreakPoints = append(m.BreakPoints, i)
	}
	return m
}
