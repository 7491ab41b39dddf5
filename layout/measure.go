package layout

import (
	"math"

	"pageflow/document"
)

// DefaultMinBlockHeight is the fallback height floor for text-bearing blocks
// whose rendered height comes back zero or unavailable, preventing collapsed
// empty blocks from disappearing during packing.
const DefaultMinBlockHeight = 16.0

// Measurer is the port into the rendering host: given a node and its
// position, return its rendered pixel height. This is the only point where
// the engine consults externally maintained state.
type Measurer interface {
	Measure(node *document.Node, pos int) float64
}

// MeasurerFunc adapts a plain function to the Measurer port.
type MeasurerFunc func(node *document.Node, pos int) float64

func (f MeasurerFunc) Measure(node *document.Node, pos int) float64 { return f(node, pos) }

// EstimateMeasurer approximates rendered heights from text length alone:
// wrapped line count at CharsPerLine times LineHeight. It backs the CLI and
// tests, where no rendering host exists.
type EstimateMeasurer struct {
	LineHeight   float64
	CharsPerLine int
}

func (m EstimateMeasurer) Measure(node *document.Node, pos int) float64 {
	switch node.Kind {
	case document.KindText:
		return m.textHeight(node.Text)
	case document.KindParagraph:
		return m.textHeight(node.TextContent())
	case document.KindTableRow:
		h := 0.0
		for _, cell := range node.Children {
			if ch := m.textHeight(cell.TextContent()); ch > h {
				h = ch
			}
		}
		return h
	case document.KindTable:
		h := 0.0
		rowPos := pos + 1
		for _, row := range node.Children {
			h += m.Measure(row, rowPos)
			rowPos += row.Size()
		}
		return h
	case document.KindPage, document.KindBody, document.KindDoc:
		h := 0.0
		childPos := pos + 1
		for _, ch := range node.Children {
			h += m.Measure(ch, childPos)
			childPos += ch.Size()
		}
		return h
	default:
		return 0
	}
}

func (m EstimateMeasurer) textHeight(text string) float64 {
	runes := len([]rune(text))
	if runes == 0 {
		return 0
	}
	perLine := m.CharsPerLine
	if perLine < 1 {
		perLine = 1
	}
	lines := int(math.Ceil(float64(runes) / float64(perLine)))
	return float64(lines) * m.LineHeight
}
