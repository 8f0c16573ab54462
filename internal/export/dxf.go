package export

import (
	"fmt"
	"image/color"
	"math"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"

	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/render"
)

// DXF layers, with their ACI colour.
var dxfLayers = []struct {
	name  string
	color dxfcolor.ColorNumber
}{
	{"WALLS", dxfcolor.White},
	{"HATCH", dxfcolor.Grey128},
	{"ROOMS", dxfcolor.Cyan},
	{"PANELS", dxfcolor.Green},
	{"DIMENSIONS", dxfcolor.Blue},
	{"SUPPORTS", dxfcolor.Magenta},
	{"TEXT", dxfcolor.Yellow},
	{"GRID", dxfcolor.Grey192},
}

// layerFor sorts drawing calls into layers by their palette colour.
func layerFor(c color.Color) string {
	switch c {
	case render.ColorWall, render.ColorWallInner:
		return "WALLS"
	case render.ColorHatch:
		return "HATCH"
	case render.ColorRoomOutline, render.ColorZoneOutline:
		return "ROOMS"
	case render.ColorPanelOutline:
		return "PANELS"
	case render.ColorDimension, render.ColorCutDimension:
		return "DIMENSIONS"
	case render.ColorNylon, render.ColorAlu, render.ColorSupportLine:
		return "SUPPORTS"
	case render.ColorGrid:
		return "GRID"
	case render.ColorRoomName, render.ColorTitle:
		return "TEXT"
	}
	return "0"
}

// dxfSurface writes line work back in model millimetres. Fills have no DXF
// equivalent and only outlines are kept.
type dxfSurface struct {
	d       *dxf.Drawing
	view    *geometry.ViewState
	measure dimension.Measurer
	current string
	err     error
}

func (s *dxfSurface) model(p geometry.Point) geometry.Point { return s.view.ScreenToModel(p) }

func (s *dxfSurface) layer(c color.Color) {
	name := layerFor(c)
	if s.err != nil || name == s.current {
		return
	}
	if err := s.d.ChangeLayer(name); err != nil {
		s.err = fmt.Errorf("change layer %s: %w", name, err)
		return
	}
	s.current = name
}

func (s *dxfSurface) line(a, b geometry.Point) {
	if s.err != nil {
		return
	}
	a, b = s.model(a), s.model(b)
	if _, err := s.d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
		s.err = fmt.Errorf("line: %w", err)
	}
}

func (s *dxfSurface) Line(a, b geometry.Point, st render.Stroke) {
	if !st.Visible() {
		return
	}
	s.layer(st.Color)
	for _, seg := range render.DashSegments(a, b, st.Dash) {
		s.line(seg.A, seg.B)
	}
}

func (s *dxfSurface) Polyline(pts []geometry.Point, st render.Stroke) {
	for i := 0; i+1 < len(pts); i++ {
		s.Line(pts[i], pts[i+1], st)
	}
}

func (s *dxfSurface) Polygon(pts []geometry.Point, _ color.Color, st render.Stroke) {
	if len(pts) < 3 {
		return
	}
	s.Polyline(append(pts[:len(pts):len(pts)], pts[0]), st)
}

func (s *dxfSurface) Rect(r geometry.Rect, _ color.Color, st render.Stroke) {
	c := r.Corners()
	s.Polygon(c[:], nil, st)
}

func (s *dxfSurface) Circle(c geometry.Point, radius float64, fill color.Color, st render.Stroke) {
	col := st.Color
	if !st.Visible() {
		col = fill
	}
	if col == nil || s.err != nil {
		return
	}
	s.layer(col)
	m := s.model(c)
	if _, err := s.d.Circle(m.X, m.Y, 0, s.view.ToModelLength(radius)); err != nil {
		s.err = fmt.Errorf("circle: %w", err)
	}
}

func (s *dxfSurface) Text(text string, at geometry.Point, ts render.TextStyle) {
	if s.err != nil || ts.Size <= 0 {
		return
	}
	layer := ts.Color
	if layerFor(layer) == "0" {
		layer = render.ColorRoomName
	}
	s.layer(layer)

	w, _ := s.measure.MeasureText(text, ts.Size)
	switch ts.Align {
	case render.AlignCenter:
		at.X -= w / 2
	case render.AlignRight:
		at.X -= w
	}
	at.Y += ts.Size / 2
	m := s.model(at)
	if _, err := s.d.Text(text, m.X, m.Y, 0, s.view.ToModelLength(ts.Size)); err != nil {
		s.err = fmt.Errorf("text: %w", err)
	}
}

// ExportDXF writes the plan as a layered DXF drawing in model millimetres.
// Coordinates are written as they are in the plan, matching ImportRoomsDXF.
func ExportDXF(path string, plan model.Plan, opts Options) error {
	bounds, ok := plan.Bounds()
	if !ok {
		return fmt.Errorf("plan %q has nothing to draw", plan.Name)
	}

	// One pixel is one millimetre; the padding leaves room for the outer
	// dimension chains.
	pad := 0.1*math.Max(bounds.Width(), bounds.Height()) + 500
	view := &geometry.ViewState{
		Scale:        1,
		InitialScale: 1,
		OffsetX:      pad - bounds.MinX,
		OffsetY:      pad - bounds.MinY,
		CanvasW:      bounds.Width() + 2*pad,
		CanvasH:      bounds.Height() + 2*pad,
	}
	rec, _ := drawView(plan, view, opts, false)

	d := dxf.NewDrawing()
	for _, l := range dxfLayers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}
	s := &dxfSurface{d: d, view: view, measure: measurer(), current: "0"}
	if err := d.ChangeLayer("0"); err != nil {
		return fmt.Errorf("change layer 0: %w", err)
	}
	rec.Replay(s)
	if s.err != nil {
		return s.err
	}
	return d.SaveAs(path)
}
