// Package render draws a plan snapshot onto a Surface.
//
// All coordinates handed to a Surface are screen pixels. The same drawing
// code feeds the interactive canvas and the PDF, SVG and DXF exporters.
package render

import (
	"image/color"

	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// Stroke describes how a line is drawn. A nil Color or zero Width draws
// nothing. Dash lengths are in pixels, alternating on and off.
type Stroke struct {
	Color color.Color
	Width float64
	Dash  []float64
}

// Visible reports whether the stroke draws anything.
func (s Stroke) Visible() bool {
	return s.Color != nil && s.Width > 0
}

// Align is the horizontal text alignment relative to the anchor point.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// TextStyle describes a text run. The anchor passed to Surface.Text is the
// vertical middle of the text at the aligned edge.
type TextStyle struct {
	Size  float64 // px
	Color color.Color
	Align Align
	Bold  bool
}

// Surface is a drawing backend.
type Surface interface {
	Line(a, b geometry.Point, s Stroke)
	Polyline(pts []geometry.Point, s Stroke)
	Polygon(pts []geometry.Point, fill color.Color, s Stroke)
	Rect(r geometry.Rect, fill color.Color, s Stroke)
	Circle(c geometry.Point, radius float64, fill color.Color, s Stroke)
	Text(text string, at geometry.Point, style TextStyle)
}

// Measurer sizes text for label placement.
type Measurer = dimension.Measurer

// DashSegments splits a-b into the visible pieces of a dash pattern. Backends
// without native dashes draw these instead.
func DashSegments(a, b geometry.Point, dash []float64) []geometry.Segment {
	total := a.Distance(b)
	if len(dash) == 0 || total == 0 {
		return []geometry.Segment{geometry.Seg(a, b)}
	}
	var period float64
	for _, d := range dash {
		period += d
	}
	if period <= 0 {
		return []geometry.Segment{geometry.Seg(a, b)}
	}

	var out []geometry.Segment
	pos, i := 0.0, 0
	for pos < total {
		l := dash[i%len(dash)]
		end := pos + l
		if end > total {
			end = total
		}
		if i%2 == 0 && end > pos {
			out = append(out, geometry.Seg(a.Lerp(b, pos/total), a.Lerp(b, end/total)))
		}
		pos = end
		i++
	}
	return out
}
