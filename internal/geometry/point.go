// Package geometry is the computational kernel behind the plan drawing:
// model/screen transforms, polygon hit testing, segment intersection and the
// double-line wall construction used for architectural walls.
//
// All model coordinates are millimetres. Screen coordinates are pixels with
// Y growing downwards, which matches the model convention of the plan data.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the length below which vectors are treated as degenerate.
const Epsilon = 1e-9

// Point represents a 2D coordinate. In model space the unit is mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point        { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Scale(k float64) Point    { return Point{X: p.X * k, Y: p.Y * k} }
func (p Point) Dot(q Point) float64      { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64             { return math.Hypot(p.X, p.Y) }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Len() }
func (p Point) Perp() Point              { return Point{X: -p.Y, Y: p.X} }
func (p Point) Midpoint(q Point) Point   { return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2} }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Unit returns the normalised vector, or false when p is (near) zero length.
func (p Point) Unit() (Point, bool) {
	l := p.Len()
	if l < Epsilon {
		return Point{}, false
	}
	return Point{X: p.X / l, Y: p.Y / l}, true
}

// NearlyEqual reports whether two points coincide within tol on both axes.
func (p Point) NearlyEqual(q Point, tol float64) bool {
	return scalar.EqualWithinAbs(p.X, q.X, tol) && scalar.EqualWithinAbs(p.Y, q.Y, tol)
}

// Segment is a straight line between two points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment { return Segment{A: a, B: b} }

func (s Segment) Dir() Point       { return s.B.Sub(s.A) }
func (s Segment) Len() float64     { return s.Dir().Len() }
func (s Segment) Mid() Point       { return s.A.Midpoint(s.B) }
func (s Segment) Reverse() Segment { return Segment{A: s.B, B: s.A} }

// Translate shifts both ends of the segment by v.
func (s Segment) Translate(v Point) Segment {
	return Segment{A: s.A.Add(v), B: s.B.Add(v)}
}

// AngleDeg returns atan2(dy, dx) in degrees, in (-180, 180].
func AngleDeg(dx, dy float64) float64 {
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	return scalar.Round(v, places)
}

// Round2 rounds v to two decimals, the tolerance used when grouping panel sizes.
func Round2(v float64) float64 {
	return scalar.Round(v, 2)
}
