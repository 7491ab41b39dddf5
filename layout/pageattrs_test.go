package layout

import (
	"testing"

	"pageflow/common"
	"pageflow/document"
)

func TestMetrics(t *testing.T) {
	w, h := common.PaperA4.Dimensions()
	attrs := PageAttrs{
		Paper:   common.PaperA4,
		Margins: Margins{Top: 56, Right: 40, Bottom: 56, Left: 40},
	}

	m := attrs.Metrics()
	if m.ContentWidth != w-40-40 {
		t.Errorf("ContentWidth = %g, want %g", m.ContentWidth, w-40-40)
	}
	if m.ContentHeight != h-56-56 {
		t.Errorf("ContentHeight = %g, want %g", m.ContentHeight, h-56-56)
	}

	attrs.Orientation = common.OrientationLandscape
	m = attrs.Metrics()
	if m.ContentWidth != h-40-40 || m.ContentHeight != w-56-56 {
		t.Errorf("landscape metrics = %+v, want axes swapped", m)
	}
}

func TestParseMargins(t *testing.T) {
	m, err := ParseMargins("10, 20,30 ,40")
	if err != nil {
		t.Fatalf("ParseMargins: %v", err)
	}
	if m != (Margins{Top: 10, Right: 20, Bottom: 30, Left: 40}) {
		t.Errorf("ParseMargins = %+v", m)
	}
	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,4,5"} {
		if _, err := ParseMargins(bad); err == nil {
			t.Errorf("ParseMargins(%q) succeeded, want error", bad)
		}
	}
}

func TestPageAttrsRoundTrip(t *testing.T) {
	attrs := PageAttrs{
		Paper:       common.PaperLetter,
		Orientation: common.OrientationLandscape,
		Colour:      "#fdf6e3",
		Margins:     Margins{Top: 56, Right: 40, Bottom: 56, Left: 40},
	}
	page := document.NewPage(attrs.NodeAttrs())

	def := PageAttrs{Paper: common.PaperA4}
	if got := PageAttrsOf(page, def); got != attrs {
		t.Errorf("PageAttrsOf = %+v, want %+v", got, attrs)
	}

	// absent and malformed values fall back to the default
	broken := document.NewPage(map[string]any{PaperAttr: "bogus"})
	if got := PageAttrsOf(broken, def); got != def {
		t.Errorf("PageAttrsOf(broken) = %+v, want default", got)
	}
}

func TestFixedResolver(t *testing.T) {
	a := PageAttrs{Colour: "a"}
	b := PageAttrs{Colour: "b"}
	r := FixedResolver{Pages: []PageAttrs{a, b}, Default: PageAttrs{Colour: "def"}}

	if got := r.AttributesForPage(0); got != a {
		t.Errorf("page 0 = %+v, want a", got)
	}
	if got := r.AttributesForPage(1); got != b {
		t.Errorf("page 1 = %+v, want b", got)
	}
	// past the known range the resolver clamps to the last entry
	if got := r.AttributesForPage(7); got != b {
		t.Errorf("page 7 = %+v, want the last entry", got)
	}
	if got := r.AttributesForPage(-1); got != a {
		t.Errorf("page -1 = %+v, want the first entry", got)
	}

	empty := FixedResolver{Default: PageAttrs{Colour: "def"}}
	if got := empty.AttributesForPage(3); got.Colour != "def" {
		t.Errorf("empty resolver = %+v, want the default", got)
	}
}
