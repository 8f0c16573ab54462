package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// chainTolerance is the endpoint gap, in mm, bridged when chaining LINEs.
const chainTolerance = 0.5

// minRoomSide rejects outlines that are slivers rather than rooms.
const minRoomSide = 100.0

// segment is a loose edge waiting to be chained into an outline.
type segment struct {
	start model.Point
	end   model.Point
}

// ImportRoomsDXF reads room outlines from a DXF drawing. Each closed
// LWPOLYLINE and each closed chain of LINE/ARC entities becomes a room.
// Coordinates are taken as millimetres and kept in place.
func ImportRoomsDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]model.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Arc:
			pts := arcToPoints(e, 16)
			for i := 0; i+1 < len(pts); i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed outlines found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return geometry.PolygonArea(outlines[i]) > geometry.PolygonArea(outlines[j])
	})

	for _, outline := range outlines {
		b, _ := geometry.BoundsOf(outline)
		if b.Width() < minRoomSide || b.Height() < minRoomSide {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped outline smaller than a room (%.0f x %.0f mm)", b.Width(), b.Height()))
			continue
		}
		result.Rooms = append(result.Rooms, model.Room{
			ID:     uuid.New().String()[:8],
			Name:   fmt.Sprintf("Room %d", len(result.Rooms)+1),
			Points: outline,
		})
	}

	return result
}

// lwPolylineToOutline converts an LWPOLYLINE to outline points. Bulged
// vertices are expanded into arc points.
func lwPolylineToOutline(lw *entity.LwPolyline) []model.Point {
	var outline []model.Point
	n := len(lw.Vertices)
	for i := 0; i < n; i++ {
		v := lw.Vertices[i]
		current := model.Point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 {
			nv := lw.Vertices[(i+1)%n]
			arc := bulgeArcPoints(current, model.Point{X: nv[0], Y: nv[1]}, bulge, 16)
			outline = append(outline, arc[:len(arc)-1]...)
			continue
		}
		outline = append(outline, current)
	}
	if len(outline) > 3 && outline[0].NearlyEqual(outline[len(outline)-1], chainTolerance) {
		outline = outline[:len(outline)-1]
	}
	return outline
}

// bulgeArcPoints samples the arc between two vertices. The bulge is the
// tangent of a quarter of the included angle; positive bulges turn
// counter-clockwise.
func bulgeArcPoints(p1, p2 model.Point, bulge float64, steps int) []model.Point {
	chord := p2.Sub(p1)
	c := chord.Len()
	if c < geometry.Epsilon {
		return []model.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * c / 2
	radius := (c*c/(4*sagitta) + sagitta) / 2
	perp := chord.Perp().Scale(1 / c)
	if bulge > 0 {
		perp = perp.Scale(-1)
	}
	center := p1.Midpoint(p2).Add(perp.Scale(radius - sagitta))

	start := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	end := math.Atan2(p2.Y-center.Y, p2.X-center.X)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	} else if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]model.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := start + float64(i)/float64(steps)*(end-start)
		pts = append(pts, model.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)})
	}
	return pts
}

// arcToPoints samples an ARC entity counter-clockwise from its start angle.
func arcToPoints(a *entity.Arc, steps int) []model.Point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]model.Point, steps+1)
	for i := 0; i <= steps; i++ {
		ang := start + float64(i)/float64(steps)*(end-start)
		pts[i] = model.Point{X: cx + r*math.Cos(ang), Y: cy + r*math.Sin(ang)}
	}
	return pts
}

// chainSegments joins loose segments into closed outlines. Open chains are
// dropped since they cannot bound a room.
func chainSegments(segs []segment, tolerance float64) [][]model.Point {
	used := make([]bool, len(segs))
	var outlines [][]model.Point

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}

		for changed := true; changed; {
			changed = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case tail.NearlyEqual(s.start, tolerance):
					chain = append(chain, s.end)
				case tail.NearlyEqual(s.end, tolerance):
					chain = append(chain, s.start)
				default:
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		if len(chain) >= 4 && chain[0].NearlyEqual(chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}
	return outlines
}
