// Package layout implements the repagination engine: collecting the flat
// content stream of a document, measuring it, packing it into page
// containers under per-page height budgets, and remapping cursor positions
// from the pre-layout document to the post-layout one.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"pageflow/common"
	"pageflow/document"
)

// Attribute names stamped on page nodes.
const (
	PaperAttr       = "paper"
	OrientationAttr = "orientation"
	ColourAttr      = "colour"
	MarginsAttr     = "margins"
)

type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (m Margins) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", m.Top, m.Right, m.Bottom, m.Left)
}

func ParseMargins(s string) (Margins, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Margins{}, fmt.Errorf("malformed margins '%s', want 'top,right,bottom,left'", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Margins{}, fmt.Errorf("malformed margins '%s': %w", s, err)
		}
		vals[i] = v
	}
	return Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
}

// PageAttrs are the per-page attributes that determine the usable content
// budget of a page.
type PageAttrs struct {
	Paper       common.PaperSize
	Orientation common.Orientation
	Colour      string
	Margins     Margins
}

// PageMetrics is the usable content area derived from page attributes.
type PageMetrics struct {
	ContentWidth  float64
	ContentHeight float64
}

// Metrics derives the content budget: paper dimensions minus margins, axes
// swapped under landscape orientation.
func (a PageAttrs) Metrics() PageMetrics {
	w, h := a.Paper.Dimensions()
	if a.Orientation == common.OrientationLandscape {
		w, h = h, w
	}
	return PageMetrics{
		ContentWidth:  w - a.Margins.Left - a.Margins.Right,
		ContentHeight: h - a.Margins.Top - a.Margins.Bottom,
	}
}

// NodeAttrs renders the page attributes into the attribute map stamped on a
// created page node.
func (a PageAttrs) NodeAttrs() map[string]any {
	return map[string]any{
		PaperAttr:       a.Paper.String(),
		OrientationAttr: a.Orientation.String(),
		ColourAttr:      a.Colour,
		MarginsAttr:     a.Margins.String(),
	}
}

// PageAttrsOf reads page attributes back from a page node, falling back to
// def for absent or malformed values.
func PageAttrsOf(page *document.Node, def PageAttrs) PageAttrs {
	out := def
	if v := page.Attr(PaperAttr); v != "" {
		if p, err := common.ParsePaperSize(v); err == nil {
			out.Paper = p
		}
	}
	if v := page.Attr(OrientationAttr); v != "" {
		if o, err := common.ParseOrientation(v); err == nil {
			out.Orientation = o
		}
	}
	if v := page.Attr(ColourAttr); v != "" {
		out.Colour = v
	}
	if v := page.Attr(MarginsAttr); v != "" {
		if m, err := ParseMargins(v); err == nil {
			out.Margins = m
		}
	}
	return out
}

// AttributeResolver yields the attributes of the page at a given index. When
// pagination runs past the resolver's known page count the resolver is still
// consulted; finite resolvers clamp to their last known entry.
type AttributeResolver interface {
	AttributesForPage(index int) PageAttrs
}

// FixedResolver resolves from an explicit per-page list, falling back to the
// last entry (or Default when the list is empty) past the end.
type FixedResolver struct {
	Pages   []PageAttrs
	Default PageAttrs
}

func (r FixedResolver) AttributesForPage(index int) PageAttrs {
	if len(r.Pages) == 0 {
		return r.Default
	}
	if index < 0 {
		index = 0
	}
	if index >= len(r.Pages) {
		index = len(r.Pages) - 1
	}
	return r.Pages[index]
}
