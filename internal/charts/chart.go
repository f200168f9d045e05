// Package charts derives renderable chart descriptions from song collections.
//
// A Figure is plain data: panels holding bars or scatter series. Turning it
// into an image is the job of a renderer.
package charts

import "image/color"

// Figure is a stack of panels drawn top to bottom.
type Figure struct {
	Width  float64 // inches
	Height float64 // inches
	Panels []Panel
	// DegenerateFit reports that a regression behind the figure was
	// underdetermined or rank-deficient.
	DegenerateFit bool
}

// Panel is a single set of axes.
type Panel struct {
	Title         string
	XLabel        string
	YLabel        string
	Bars          []Bar
	BarColor      color.Color
	Series        []Series
	LegendTitle   string
	Grid          bool
	XTickRotation float64 // degrees, counter-clockwise
}

// Bar is one labeled bar of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// Series is a named group of scatter points drawn in one color.
type Series struct {
	Name   string
	Color  color.Color
	Points []Point
}

// Point is a single scatter point.
type Point struct {
	X, Y float64
}

// Named colors used by the builders.
var (
	SkyBlue = color.NRGBA{R: 135, G: 206, B: 235, A: 255}
	Red     = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	Orange  = color.NRGBA{R: 255, G: 165, B: 0, A: 255}
	Green   = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
)

// withAlpha returns c with its alpha set to a (0-1).
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a * 255)
	return c
}
