package model

import (
	"math"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// AutoSupports places nylon hangers on every panel of a room that exceeds the
// support threshold. Hangers split the long axis into equal bays no longer
// than the threshold and sit on the centre line of the short axis.
func AutoSupports(panels []Panel) []Support {
	needs := NeedsSupport(panels)
	if len(panels) == 0 {
		return nil
	}
	alongX := IsSupportCriticalHorizontal(panels[0])

	var out []Support
	for i, p := range panels {
		if !needs[i] {
			continue
		}
		span := SupportSpan(p, panels[0])
		bays := int(math.Ceil(span / SupportThreshold))
		b := p.Bounds()
		for k := 1; k < bays; k++ {
			t := float64(k) / float64(bays)
			var at Point
			if alongX {
				at = geometry.Pt(b.MinX+t*b.Width(), b.Center().Y)
			} else {
				at = geometry.Pt(b.Center().X, b.MinY+t*b.Height())
			}
			s := NewSupport(SupportNylon, at)
			s.PanelID = p.ID
			out = append(out, s)
		}
	}
	return out
}

// SupportsForLine generates aluminium supports where a support line enters
// and leaves each panel it crosses. A point on the boundary of two panels is
// emitted once and marked as an intersection point.
func SupportsForLine(line SupportLine, panels []Panel) []Support {
	type key struct{ x, y int64 }
	index := make(map[key]int)
	var out []Support

	for _, p := range panels {
		chord, ok := geometry.ClipSegmentToRect(line.Start, line.End, p.Bounds())
		if !ok {
			continue
		}
		for _, pt := range []Point{chord.A, chord.B} {
			k := key{int64(math.Round(pt.X)), int64(math.Round(pt.Y))}
			if i, seen := index[k]; seen {
				if out[i].PanelID != p.ID {
					out[i].IsIntersectionPoint = true
				}
				continue
			}
			s := NewSupport(SupportAlu, pt)
			s.PanelID = p.ID
			l := line
			s.SupportLine = &l
			index[k] = len(out)
			out = append(out, s)
		}
	}
	return out
}
