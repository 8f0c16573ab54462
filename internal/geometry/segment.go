package geometry

import "math"

// ParallelEpsilon is the determinant below which two segments are treated as
// parallel and never intersect.
const ParallelEpsilon = 1e-3

// SegmentIntersection intersects segment a1-a2 with b1-b2 using the
// parametric form. Both parameters must lie in [0, 1].
func SegmentIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	denom := (b2.Y-b1.Y)*(a2.X-a1.X) - (b2.X-b1.X)*(a2.Y-a1.Y)
	if math.Abs(denom) < ParallelEpsilon {
		return Point{}, false
	}
	ua := ((b2.X-b1.X)*(a1.Y-b1.Y) - (b2.Y-b1.Y)*(a1.X-b1.X)) / denom
	ub := ((a2.X-a1.X)*(a1.Y-b1.Y) - (a2.Y-a1.Y)*(a1.X-b1.X)) / denom
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}
	return a1.Lerp(a2, ua), true
}

// SegmentIntersectsRect reports whether segment a-b touches rectangle r:
// either endpoint is inside, or the segment crosses one of the four edges.
func SegmentIntersectsRect(a, b Point, r Rect) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	c := r.Corners()
	for i := 0; i < 4; i++ {
		if _, ok := SegmentIntersection(a, b, c[i], c[(i+1)%4]); ok {
			return true
		}
	}
	return false
}

// ClipSegmentToRect returns the part of segment a-b inside r
// (Liang-Barsky). The boolean is false when nothing is inside.
func ClipSegmentToRect(a, b Point, r Rect) (Segment, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if math.Abs(p) < Epsilon {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}
	if !clip(-d.X, a.X-r.MinX) || !clip(d.X, r.MaxX-a.X) ||
		!clip(-d.Y, a.Y-r.MinY) || !clip(d.Y, r.MaxY-a.Y) {
		return Segment{}, false
	}
	return Segment{A: a.Lerp(b, t0), B: a.Lerp(b, t1)}, true
}

// SnapTo90 snaps end so that start-end is axis aligned when the segment is
// within toleranceDeg of horizontal or vertical.
func SnapTo90(start, end Point, toleranceDeg float64) (Point, bool) {
	d := end.Sub(start)
	if d.Len() < Epsilon {
		return end, false
	}
	a := math.Abs(AngleDeg(d.X, d.Y))
	switch {
	case a <= toleranceDeg || a >= 180-toleranceDeg:
		return Point{X: end.X, Y: start.Y}, true
	case math.Abs(a-90) <= toleranceDeg:
		return Point{X: start.X, Y: end.Y}, true
	}
	return end, false
}
