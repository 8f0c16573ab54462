package render

import (
	"image/color"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpLine OpKind = iota
	OpPolyline
	OpPolygon
	OpRect
	OpCircle
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpLine:
		return "line"
	case OpPolyline:
		return "polyline"
	case OpPolygon:
		return "polygon"
	case OpRect:
		return "rect"
	case OpCircle:
		return "circle"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Points []geometry.Point
	Rect   geometry.Rect
	Radius float64
	Fill   color.Color
	Stroke Stroke
	Text   string
	Style  TextStyle
}

// Recorder is a Surface that keeps every call. The canvas widget replays it
// into fyne objects; tests inspect it directly.
type Recorder struct {
	Ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Line(a, b geometry.Point, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []geometry.Point{a, b}, Stroke: s})
}

func (r *Recorder) Polyline(pts []geometry.Point, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpPolyline, Points: append([]geometry.Point(nil), pts...), Stroke: s})
}

func (r *Recorder) Polygon(pts []geometry.Point, fill color.Color, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: append([]geometry.Point(nil), pts...), Fill: fill, Stroke: s})
}

func (r *Recorder) Rect(rect geometry.Rect, fill color.Color, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Rect: rect, Fill: fill, Stroke: s})
}

func (r *Recorder) Circle(c geometry.Point, radius float64, fill color.Color, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []geometry.Point{c}, Radius: radius, Fill: fill, Stroke: s})
}

func (r *Recorder) Text(text string, at geometry.Point, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []geometry.Point{at}, Text: text, Style: style})
}

// Reset drops all recorded calls and keeps the backing array.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many calls of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns every recorded text run in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Replay draws the recorded calls onto dst.
func (r *Recorder) Replay(dst Surface) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpLine:
			dst.Line(op.Points[0], op.Points[1], op.Stroke)
		case OpPolyline:
			dst.Polyline(op.Points, op.Stroke)
		case OpPolygon:
			dst.Polygon(op.Points, op.Fill, op.Stroke)
		case OpRect:
			dst.Rect(op.Rect, op.Fill, op.Stroke)
		case OpCircle:
			dst.Circle(op.Points[0], op.Radius, op.Fill, op.Stroke)
		case OpText:
			dst.Text(op.Text, op.Points[0], op.Style)
		}
	}
}

// Bounds returns the extent of all recorded geometry. Text contributes its
// anchor only.
func (r *Recorder) Bounds() (geometry.Rect, bool) {
	var pts []geometry.Point
	for _, op := range r.Ops {
		switch op.Kind {
		case OpRect:
			pts = append(pts, op.Rect.Min(), op.Rect.Max())
		case OpCircle:
			c := op.Points[0]
			pts = append(pts, geometry.Pt(c.X-op.Radius, c.Y-op.Radius), geometry.Pt(c.X+op.Radius, c.Y+op.Radius))
		default:
			pts = append(pts, op.Points...)
		}
	}
	return geometry.BoundsOf(pts)
}
