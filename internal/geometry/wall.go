package geometry

import "math"

// Joint constants. The 45° joint pulls the inner face back from the shared
// end by a fixed on-screen gap that never drops below MinJointGap in mm.
const (
	JointGapPx     = 4.5
	MinJointGap    = 30.0
	MiterCapFactor = math.Sqrt2
)

// End identifies one end of a wall.
type End int

const (
	EndStart End = iota
	EndEnd
)

// DoubleLine is the two-face rendering of a wall. Line1 runs along the wall
// itself, Line2 is offset along Normal, on the side away from the plan centre.
type DoubleLine struct {
	Line1   Segment
	Line2   Segment
	Normal  Point   // unit vector from Line1 towards Line2
	Spacing float64 // distance between the faces in mm
	Flipped bool    // Line2 was mirrored to the centre side by a 45° joint
}

// OffsetLines computes the double-line geometry of a wall. gapPx is the
// on-screen half spacing; the faces end up 2*gapPx/scale mm apart. It
// returns false for zero-length walls or a non-positive scale.
func OffsetLines(start, end, center Point, gapPx, scale float64) (DoubleLine, bool) {
	if scale <= 0 {
		return DoubleLine{}, false
	}
	dir, ok := end.Sub(start).Unit()
	if !ok {
		return DoubleLine{}, false
	}
	n := dir.Perp()
	mid := start.Midpoint(end)
	if n.Dot(center.Sub(mid)) > 0 {
		n = n.Scale(-1)
	}
	spacing := 2 * gapPx / scale
	off := n.Scale(spacing)
	return DoubleLine{
		Line1:   Segment{A: start, B: end},
		Line2:   Segment{A: start.Add(off), B: end.Add(off)},
		Normal:  n,
		Spacing: spacing,
	}, true
}

// Endpoint returns the point of s at the given end.
func (s Segment) Endpoint(e End) Point {
	if e == EndStart {
		return s.A
	}
	return s.B
}

// SharedEnd reports which end of s lies within tol of p.
func SharedEnd(s Segment, p Point, tol float64) (End, bool) {
	switch {
	case s.A.Distance(p) <= tol:
		return EndStart, true
	case s.B.Distance(p) <= tol:
		return EndEnd, true
	}
	return EndStart, false
}

// JointShortening is the model-space amount trimmed from an inner face at a
// 45° joint for the given scale.
func JointShortening(scale float64) float64 {
	if scale <= 0 {
		return MinJointGap
	}
	return math.Max(JointGapPx/scale, MinJointGap)
}

func sign(v float64) int {
	switch {
	case v > Epsilon:
		return 1
	case v < -Epsilon:
		return -1
	}
	return 0
}

// ResolveMiterJoint adjusts the inner face of dl for a 45° joint at end e.
// The face is mirrored to the other side of Line1 when the joining wall's
// midpoint and the plan centre fall on opposite sides of the normal, then it
// is shortened at the shared end.
func ResolveMiterJoint(dl DoubleLine, e End, center, joiningMid Point, scale float64) DoubleLine {
	mid := dl.Line1.Mid()
	toCenter := sign(dl.Normal.Dot(center.Sub(mid)))
	toJoin := sign(dl.Normal.Dot(joiningMid.Sub(mid)))
	if toCenter != 0 && toJoin != 0 && toCenter != toJoin {
		dl.Normal = dl.Normal.Scale(-1)
		dl.Line2 = dl.Line1.Translate(dl.Normal.Scale(dl.Spacing))
		dl.Flipped = true
	}

	cut := math.Min(JointShortening(scale), dl.Line2.Len()/2)
	dir, ok := dl.Line2.Dir().Unit()
	if !ok {
		return dl
	}
	if e == EndStart {
		dl.Line2.A = dl.Line2.A.Add(dir.Scale(cut))
	} else {
		dl.Line2.B = dl.Line2.B.Sub(dir.Scale(cut))
	}
	return dl
}

// MiterBisector averages the two wall directions, both oriented away from the
// shared point. It fails when the walls are collinear and opposite.
func MiterBisector(shared, farA, farB Point) (Point, bool) {
	a, okA := farA.Sub(shared).Unit()
	b, okB := farB.Sub(shared).Unit()
	if !okA || !okB {
		return Point{}, false
	}
	return a.Add(b).Scale(0.5).Unit()
}

// MiterCap is the 45° cut line drawn from a face endpoint along the bisector.
func MiterCap(from, bisector Point, thickness float64) Segment {
	return Segment{A: from, B: from.Add(bisector.Scale(thickness * MiterCapFactor))}
}

// ButtCap is the perpendicular closing segment between the two faces at end e.
func ButtCap(dl DoubleLine, e End) Segment {
	return Segment{A: dl.Line1.Endpoint(e), B: dl.Line2.Endpoint(e)}
}
