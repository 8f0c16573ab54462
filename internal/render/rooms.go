package render

import (
	"image/color"
	"math"

	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// dedupeKey identifies a dimension value within one room. Two panels with the
// same derived value produce one label.
type dedupeKey struct {
	kind  dimension.Kind
	value float64
	qty   int
}

type roomPass struct {
	f    *frame
	seen map[dedupeKey]bool
}

func (rp *roomPass) emit(req dimension.Request) {
	k := dedupeKey{kind: req.Kind, value: geometry.Round2(req.Length), qty: req.Quantity}
	if rp.seen[k] {
		return
	}
	rp.seen[k] = true
	rp.f.dimension(req)
}

// drawRooms draws every room. Rooms that belong to a zone keep their outline
// but their panels are drawn with the zone.
func (f *frame) drawRooms() {
	zoned := f.plan.ZonedRoomIDs()
	for _, r := range f.plan.Rooms {
		f.drawRoom(model.RoomToView(r, f.plan.Panels[r.ID]), !zoned[r.ID])
	}
}

func (f *frame) drawZones() {
	for _, z := range f.plan.Zones {
		f.drawRoom(model.ZoneToRoomView(z), true)
	}
}

func (f *frame) drawRoom(v model.RoomView, withPanels bool) {
	if len(v.Points) < 3 {
		f.report.warn("room %s: outline has %d points, skipped", v.ID, len(v.Points))
		return
	}
	pts := make([]geometry.Point, len(v.Points))
	for i, p := range v.Points {
		if !finite(p) {
			f.report.warn("room %s: non-finite outline point, skipped", v.ID)
			return
		}
		pts[i] = f.view.ModelToScreen(p)
	}

	var fill color.Color = ColorRoomFill
	outline := Stroke{Color: ColorRoomOutline, Width: 1}
	if v.IsZone {
		fill = ColorZoneFill
		outline = Stroke{Color: ColorZoneOutline, Width: 2, Dash: dashZone}
	}
	if v.ID == f.state.SelectedRoomID || v.ID == f.state.HoverRoomID {
		fill = ColorRoomSelected
	}
	f.s.Polygon(pts, fill, outline)

	f.roomName(v)
	// Dedupe is scoped to one room: equal dimensions in two rooms both show.
	rp := &roomPass{f: f, seen: make(map[dedupeKey]bool)}
	f.roomDimensions(rp, v)
	if withPanels {
		f.drawPanels(rp, v)
	}
}

func (f *frame) roomName(v model.RoomView) {
	if v.Name == "" {
		return
	}
	size := f.r.engine.FontSizePx() * 1.15
	w, h := f.r.measure.MeasureText(v.Name, size)
	at := f.view.ModelToScreen(v.LabelAnchor())
	box := geometry.RectXYWH(at.X-w/2, at.Y-h/2, w, h)
	f.r.engine.Reserve(box)
	f.names = append(f.names, dimension.Label{
		Bounds:   box,
		Text:     v.Name,
		Color:    ColorRoomName,
		Anchor:   at,
		FontSize: size,
	})
}

// roomDimensions adds the overall width and height of a room. They are
// measured against the project boundary so large rooms stack outside it.
func (f *frame) roomDimensions(rp *roomPass, v model.RoomView) {
	b, ok := v.Bounds()
	if !ok {
		return
	}
	avoid := f.bounds
	var area *geometry.Rect
	if f.hasPlan {
		area = &avoid
	}
	if b.Width() > 0 {
		rp.emit(dimension.Request{
			Start:         b.Min(),
			End:           geometry.Pt(b.MaxX, b.MinY),
			Length:        b.Width(),
			Kind:          dimension.KindRoomWidth,
			AvoidArea:     area,
			PreferredSide: dimension.SideAbove,
		})
	}
	if b.Height() > 0 {
		rp.emit(dimension.Request{
			Start:         b.Min(),
			End:           geometry.Pt(b.MinX, b.MaxY),
			Length:        b.Height(),
			Kind:          dimension.KindRoomHeight,
			AvoidArea:     area,
			PreferredSide: dimension.SideLeft,
		})
	}
}

func validPanel(p model.Panel) bool {
	return finite(geometry.Pt(p.StartX, p.StartY)) && p.Width > 0 && p.Length > 0 &&
		!math.IsInf(p.Width, 0) && !math.IsInf(p.Length, 0)
}

func (f *frame) drawPanels(rp *roomPass, v model.RoomView) {
	panels := make([]model.Panel, 0, len(v.Panels))
	for _, p := range v.Panels {
		if !validPanel(p) {
			f.report.warn("panel %s in %s: invalid size, skipped", p.ID, v.ID)
			continue
		}
		panels = append(panels, p)
	}

	for _, p := range panels {
		var fill color.Color = ColorPanelFull
		switch {
		case p.ID == f.state.SelectedPanelID:
			fill = ColorPanelSelected
		case p.ID == f.state.HoverPanelID:
			fill = ColorPanelHover
		case p.IsCut:
			fill = ColorPanelCut
		}
		f.s.Rect(f.view.ModelRectToScreen(p.Bounds()), fill, Stroke{Color: ColorPanelOutline, Width: 0.75})
	}

	for _, g := range model.GroupFullPanels(panels) {
		switch {
		case len(g.Panels) > 1:
			rp.emit(panelRequest(g.Panels[0], g.Size, len(g.Panels), dimension.KindPanelGroup))
		case len(panels) <= f.r.Settings.PanelDimLimit:
			rp.emit(panelRequest(g.Panels[0], g.Size, 1, dimension.KindPanel))
		}
	}
	for _, p := range model.CutPanels(panels) {
		b := p.Bounds()
		rp.emit(dimension.Request{
			Start:         b.Min(),
			End:           geometry.Pt(b.MaxX, b.MinY),
			Length:        model.CutDimension(p),
			Quantity:      1,
			Kind:          dimension.KindCutPanel,
			Color:         ColorCutDimension,
			PreferredSide: dimension.SideBelow,
		})
	}

	f.drawAutoSupports(panels)
}

// panelRequest dimensions the grouping dimension of p along the matching
// panel edge, with the label preferring the inside of the panel.
func panelRequest(p model.Panel, size float64, qty int, kind dimension.Kind) dimension.Request {
	b := p.Bounds()
	if model.IsDimensionallyHorizontal(p) {
		return dimension.Request{
			Start:         b.Min(),
			End:           geometry.Pt(b.MinX, b.MaxY),
			Length:        size,
			Quantity:      qty,
			Kind:          kind,
			PreferredSide: dimension.SideRight,
		}
	}
	return dimension.Request{
		Start:         b.Min(),
		End:           geometry.Pt(b.MaxX, b.MinY),
		Length:        size,
		Quantity:      qty,
		Kind:          kind,
		PreferredSide: dimension.SideBelow,
	}
}

func (f *frame) drawAutoSupports(panels []model.Panel) {
	s := f.r.Settings
	if !s.EnableNylonHangers || s.SupportType == model.SupportAlu {
		return
	}
	for _, sp := range model.AutoSupports(panels) {
		f.supportMarker(sp)
	}
}

func (f *frame) drawCustomSupports() {
	if !f.r.Settings.EnableAluSuspension {
		return
	}
	type lineKey struct{ x1, y1, x2, y2 int64 }
	drawn := make(map[lineKey]bool)
	for _, sp := range f.plan.CustomSupports {
		if l := sp.SupportLine; l != nil {
			k := lineKey{
				int64(math.Round(l.Start.X)), int64(math.Round(l.Start.Y)),
				int64(math.Round(l.End.X)), int64(math.Round(l.End.Y)),
			}
			if !drawn[k] {
				drawn[k] = true
				f.line(l.Start, l.End, Stroke{Color: ColorSupportLine, Width: 1, Dash: dashSupport})
			}
		}
	}
	for _, sp := range f.plan.CustomSupports {
		f.supportMarker(sp)
	}
}

func (f *frame) supportMarker(sp model.Support) {
	at := f.view.ModelToScreen(geometry.Pt(sp.X, sp.Y))
	if !finite(at) {
		f.report.warn("support %s: non-finite position, skipped", sp.ID)
		return
	}
	f.report.Supports++
	if sp.Type == model.SupportAlu {
		var outline Stroke
		if sp.IsIntersectionPoint {
			outline = Stroke{Color: ColorWall, Width: 1}
		}
		f.s.Rect(geometry.RectXYWH(at.X-3.5, at.Y-3.5, 7, 7), ColorAlu, outline)
		return
	}
	f.s.Circle(at, 3.5, ColorNylon, Stroke{})
}
