package common

import "testing"

func TestPaperSizeRoundTrip(t *testing.T) {
	for _, name := range PaperSizeNames() {
		p, err := ParsePaperSize(name)
		if err != nil {
			t.Errorf("ParsePaperSize(%q): %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("String() = %q, want %q", p.String(), name)
		}
		w, h := p.Dimensions()
		if w <= 0 || h <= 0 || w >= h {
			t.Errorf("%s portrait dimensions %gx%g look wrong", name, w, h)
		}
	}
	if _, err := ParsePaperSize("B5"); err == nil {
		t.Error("ParsePaperSize accepted an unsupported size")
	}
}

func TestOrientationRoundTrip(t *testing.T) {
	for _, name := range []string{"portrait", "landscape"} {
		o, err := ParseOrientation(name)
		if err != nil {
			t.Errorf("ParseOrientation(%q): %v", name, err)
			continue
		}
		if o.String() != name {
			t.Errorf("String() = %q, want %q", o.String(), name)
		}
	}
	if _, err := ParseOrientation("upside-down"); err == nil {
		t.Error("ParseOrientation accepted an unknown orientation")
	}
}
