// Package dimension places dimension annotations on the plan drawing.
//
// Every frame the engine is reset and fed one Request per dimension. Each
// request gets two extension lines, a dimension line and a text box whose
// bounds avoid all boxes placed earlier in the same frame. The side a
// dimension was first drawn on is remembered across frames so labels do not
// jump when the view is zoomed.
package dimension

import (
	"image/color"
	"math"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// Side is where a label sits relative to the dimensioned geometry.
type Side int

const (
	SideNone Side = iota
	SideAbove
	SideBelow
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideAbove:
		return "above"
	case SideBelow:
		return "below"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Horizontal reports whether s belongs to a horizontal dimension.
func (s Side) Horizontal() bool {
	return s == SideAbove || s == SideBelow
}

// Sides returns side 1 and side 2 for a dimension orientation.
func Sides(horizontal bool) (first, second Side) {
	if horizontal {
		return SideAbove, SideBelow
	}
	return SideLeft, SideRight
}

// Kind tags what a dimension measures. It is part of the placement key.
type Kind string

const (
	KindRoomWidth  Kind = "room_width"
	KindRoomHeight Kind = "room_height"
	KindPanelGroup Kind = "panel_group"
	KindPanel      Kind = "panel"
	KindCutPanel   Kind = "cut_panel"
	KindWall       Kind = "wall"
)

// IsHorizontal classifies a dimension by the angle of its measured line:
// within 45° of the X axis it is horizontal, otherwise vertical.
func IsHorizontal(dx, dy float64) bool {
	a := math.Abs(geometry.AngleDeg(dx, dy))
	return a < 45 || a > 135
}

// Request describes one dimension to place. Start and End are in model space.
type Request struct {
	Start              geometry.Point
	End                geometry.Point
	Length             float64 // printed value in mm; measured from Start/End when 0
	Text               string  // overrides the formatted value
	Quantity           int
	Kind               Kind
	Color              color.Color
	AvoidArea          *geometry.Rect // model space
	HorizontalOverride *bool
	PreferredSide      Side
}

// Label is one text box produced by the engine, in screen space. Labels live
// for a single frame.
type Label struct {
	Bounds     geometry.Rect
	Text       string
	Color      color.Color
	Anchor     geometry.Point // box centre
	FontSize   float64
	Horizontal bool
	Kind       Kind
}

// Placement is the full result for one request, in screen space.
type Placement struct {
	Label         Label
	Side          Side
	Extension1    geometry.Segment
	Extension2    geometry.Segment
	DimensionLine geometry.Segment
	Locked        bool // side came from placement memory
	Degraded      bool // no collision-free spot was found
	Skipped       bool // final box was off canvas; nothing should be drawn
}

// Measurer reports the size in pixels of text drawn at a font size.
type Measurer interface {
	MeasureText(text string, size float64) (w, h float64)
}

// ApproxMeasurer estimates text size from average glyph proportions. It is
// used when no font backend is available.
type ApproxMeasurer struct{}

func (ApproxMeasurer) MeasureText(text string, size float64) (float64, float64) {
	n := 0
	for range text {
		n++
	}
	return float64(n) * size * 0.6, size * 1.2
}
