// Package common holds enums shared between configuration and the layout
// engine, so config does not have to import engine packages to describe page
// geometry.
package common

import "fmt"

// Specification of supported paper sizes.
type PaperSize int

const (
	PaperA4 PaperSize = iota
	PaperA5
	PaperA3
	PaperLetter
	PaperLegal
)

var paperNames = map[PaperSize]string{
	PaperA4:     "A4",
	PaperA5:     "A5",
	PaperA3:     "A3",
	PaperLetter: "letter",
	PaperLegal:  "legal",
}

// Paper dimensions in points (1/72 inch), portrait.
var paperDims = map[PaperSize][2]float64{
	PaperA4:     {595.28, 841.89},
	PaperA5:     {419.53, 595.28},
	PaperA3:     {841.89, 1190.55},
	PaperLetter: {612.00, 792.00},
	PaperLegal:  {612.00, 1008.00},
}

func (p PaperSize) String() string {
	if n, ok := paperNames[p]; ok {
		return n
	}
	// this should never happen
	panic("unsupported paper size requested")
}

// Dimensions returns portrait width and height in points.
func (p PaperSize) Dimensions() (w, h float64) {
	d, ok := paperDims[p]
	if !ok {
		panic("unsupported paper size requested")
	}
	return d[0], d[1]
}

func ParsePaperSize(name string) (PaperSize, error) {
	for p, n := range paperNames {
		if n == name {
			return p, nil
		}
	}
	return PaperA4, fmt.Errorf("unknown paper size '%s'", name)
}

func PaperSizeNames() []string {
	return []string{"A4", "A5", "A3", "letter", "legal"}
}

// Specification of page orientation.
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		panic("unsupported orientation requested")
	}
}

func ParseOrientation(name string) (Orientation, error) {
	switch name {
	case "portrait":
		return OrientationPortrait, nil
	case "landscape":
		return OrientationLandscape, nil
	default:
		return OrientationPortrait, fmt.Errorf("unknown orientation '%s'", name)
	}
}
