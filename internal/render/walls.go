package render

import (
	"math"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// endTolerance is how close, in mm, an intersection point must be to a wall
// end to count as a joint at that end.
const endTolerance = 1.0

const (
	hatchStepPx = 8.0
	maxHatch    = 400
)

var (
	strokeWallOuter = Stroke{Color: ColorWall, Width: 1.5}
	strokeWallInner = Stroke{Color: ColorWallInner, Width: 1, Dash: dashWallInner}
	strokeWallCap   = Stroke{Color: ColorWall, Width: 1}
	strokeHatch     = Stroke{Color: ColorHatch, Width: 0.5}
	strokeTick      = Stroke{Color: ColorWallInner, Width: 0.75}
)

// drawWalls draws every wall as a double line. Caps shared by two walls are
// drawn by whichever wall is reached first.
func (f *frame) drawWalls() {
	walls := make([]model.Wall, len(f.plan.Walls))
	byID := make(map[string]model.Wall, len(walls))
	for i, w := range f.plan.Walls {
		walls[i] = model.NormalizeWall(w)
		byID[w.ID] = walls[i]
	}
	capped := make(map[int]bool)
	for _, w := range walls {
		f.drawWall(w, byID, capped)
	}
}

func (f *frame) wallGap(w model.Wall) float64 {
	if w.Thickness > 0 {
		return w.Thickness * f.view.Scale / 2
	}
	return f.r.Settings.WallGapPx
}

func (f *frame) line(a, b geometry.Point, s Stroke) {
	f.s.Line(f.view.ModelToScreen(a), f.view.ModelToScreen(b), s)
}

func (f *frame) drawWall(w model.Wall, byID map[string]model.Wall, capped map[int]bool) {
	seg := w.Segment()
	if !finite(seg.A) || !finite(seg.B) {
		f.report.warn("wall %s: non-finite coordinates, skipped", w.ID)
		return
	}
	dl, ok := geometry.OffsetLines(seg.A, seg.B, f.center, f.wallGap(w), f.view.Scale)
	if !ok {
		f.report.warn("wall %s: degenerate geometry, drawn as centreline", w.ID)
		f.line(seg.A, seg.B, strokeWallOuter)
		return
	}

	var caps []geometry.Segment
	var buttEnds []geometry.End
	for _, e := range []geometry.End{geometry.EndStart, geometry.EndEnd} {
		joined := false
		for i, ix := range f.plan.Intersections {
			if !ix.Involves(w.ID) || seg.Endpoint(e).Distance(ix.Point) > endTolerance {
				continue
			}
			joined = true
			other, found := byID[ix.Other(w.ID)]
			if ix.JoiningMethod == model.Join45Cut && found {
				dl = geometry.ResolveMiterJoint(dl, e, f.center, other.Segment().Mid(), f.view.Scale)
				if capped[i] {
					continue
				}
				capped[i] = true
				far := seg.Endpoint(otherEnd(e))
				otherFar := farEnd(other.Segment(), ix.Point)
				if bis, ok := geometry.MiterBisector(ix.Point, far, otherFar); ok {
					// the cut runs towards the face side of the joint
					if bis.Dot(dl.Normal) < 0 {
						bis = bis.Scale(-1)
					}
					caps = append(caps, geometry.MiterCap(seg.Endpoint(e), bis, dl.Spacing))
				}
				continue
			}
			if !capped[i] {
				capped[i] = true
				buttEnds = append(buttEnds, e)
			}
		}
		if !joined {
			buttEnds = append(buttEnds, e)
		}
	}
	for _, e := range buttEnds {
		caps = append(caps, geometry.ButtCap(dl, e))
	}

	if w.IsPartition() {
		f.hatch(dl)
	}
	f.line(dl.Line1.A, dl.Line1.B, strokeWallOuter)
	f.line(dl.Line2.A, dl.Line2.B, strokeWallInner)
	for _, c := range caps {
		f.line(c.A, c.B, strokeWallCap)
	}
	f.panelTicks(w, dl)
}

// hatch fills the space between the faces of a partition with 45° strokes.
func (f *frame) hatch(dl geometry.DoubleLine) {
	length := dl.Line1.Len()
	dir, ok := dl.Line1.Dir().Unit()
	if !ok || dl.Spacing <= 0 {
		return
	}
	step := f.view.ToModelLength(hatchStepPx)
	if step <= 0 || length/step > maxHatch {
		step = length / maxHatch
	}
	across := dl.Normal.Scale(dl.Spacing)
	for t := 0.0; t+dl.Spacing <= length; t += step {
		a := dl.Line1.A.Add(dir.Scale(t))
		b := a.Add(dir.Scale(dl.Spacing)).Add(across)
		f.line(a, b, strokeHatch)
	}
}

// panelTicks marks where panel edges meet an axis-aligned wall.
func (f *frame) panelTicks(w model.Wall, dl geometry.DoubleLine) {
	seg := w.Segment()
	horizontal := w.IsHorizontal()
	if horizontal && math.Abs(seg.A.Y-seg.B.Y) > endTolerance ||
		!horizontal && math.Abs(seg.A.X-seg.B.X) > endTolerance {
		return
	}
	reach := dl.Spacing + endTolerance
	seen := make(map[int64]bool)
	across := dl.Normal.Scale(dl.Spacing)

	for _, p := range f.plan.AllPanels() {
		b := p.Bounds()
		var lo, hi, wallPos, near float64
		var edges [2]float64
		if horizontal {
			lo, hi, wallPos = seg.A.X, seg.B.X, seg.A.Y
			near = math.Min(math.Abs(b.MinY-wallPos), math.Abs(b.MaxY-wallPos))
			edges = [2]float64{b.MinX, b.MaxX}
		} else {
			lo, hi, wallPos = seg.A.Y, seg.B.Y, seg.A.X
			near = math.Min(math.Abs(b.MinX-wallPos), math.Abs(b.MaxX-wallPos))
			edges = [2]float64{b.MinY, b.MaxY}
		}
		if near > reach {
			continue
		}
		for _, c := range edges {
			if c <= lo+endTolerance || c >= hi-endTolerance {
				continue
			}
			k := int64(math.Round(c))
			if seen[k] {
				continue
			}
			seen[k] = true
			a := geometry.Pt(c, wallPos)
			if !horizontal {
				a = geometry.Pt(wallPos, c)
			}
			f.line(a, a.Add(across), strokeTick)
		}
	}
}

func otherEnd(e geometry.End) geometry.End {
	if e == geometry.EndStart {
		return geometry.EndEnd
	}
	return geometry.EndStart
}

func farEnd(s geometry.Segment, p geometry.Point) geometry.Point {
	if s.A.Distance(p) >= s.B.Distance(p) {
		return s.A
	}
	return s.B
}

func finite(p geometry.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
