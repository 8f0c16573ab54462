package geometry

import "math"

// PointInPolygon is the ray-casting parity test. The polygon is implicitly
// closed: the last vertex connects back to the first.
func PointInPolygon(p Point, poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// PolygonArea computes the absolute area of a polygon using the shoelace formula.
func PolygonArea(poly []Point) float64 {
	return math.Abs(signedArea(poly))
}

func signedArea(poly []Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i].X * poly[j].Y
		area -= poly[j].X * poly[i].Y
	}
	return area / 2
}

// PolygonCentroid returns the area centroid, falling back to the vertex
// average for degenerate (zero-area) polygons.
func PolygonCentroid(poly []Point) Point {
	n := len(poly)
	if n == 0 {
		return Point{}
	}
	a := signedArea(poly)
	if math.Abs(a) < Epsilon {
		var sum Point
		for _, p := range poly {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float64(n))
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		cx += (poly[i].X + poly[j].X) * cross
		cy += (poly[i].Y + poly[j].Y) * cross
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}
