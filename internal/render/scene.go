package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/piwi3910/CeilPlan/internal/applog"
	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// pxPerMM is the nominal screen resolution used for the scale readout (96 dpi).
const pxPerMM = 96 / 25.4

// State is the interaction state the drawing reflects.
type State struct {
	SelectedRoomID  string
	SelectedPanelID string
	HoverRoomID     string
	HoverPanelID    string
	SupportDraft    *model.SupportLine // support line being dragged
}

// Report summarises one frame. Problems with individual entities end up in
// Warnings; they never stop the frame.
type Report struct {
	Dimensions int
	Skipped    int
	Degraded   int
	Supports   int
	Warnings   []string
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Renderer draws plans. It owns the label engine and therefore the placement
// memory; keep one renderer per canvas.
type Renderer struct {
	Settings model.RenderSettings
	Title    bool // draw the title block
	engine   *dimension.Engine
	measure  Measurer
	log      *slog.Logger
}

// NewRenderer creates a renderer. memory may be shared with an interaction
// controller so Reset Zoom clears it.
func NewRenderer(settings model.RenderSettings, memory *dimension.Memory, measure Measurer) *Renderer {
	settings = settings.Validate()
	if measure == nil {
		measure = dimension.ApproxMeasurer{}
	}
	return &Renderer{
		Settings: settings,
		Title:    true,
		engine:   dimension.NewEngine(dimension.OptionsFrom(settings, 0), memory, measure),
		measure:  measure,
		log:      applog.WithComponent("render"),
	}
}

// Engine exposes the label engine.
func (r *Renderer) Engine() *dimension.Engine { return r.engine }

// frame is the state of one Draw call.
type frame struct {
	r       *Renderer
	s       Surface
	plan    model.Plan
	view    *geometry.ViewState
	state   State
	report  *Report
	bounds  geometry.Rect
	hasPlan bool
	center  geometry.Point
	names   []dimension.Label
}

// Draw renders plan onto s. The order is fixed: grid, walls, rooms with their
// panels, zones, then all label text, then the title block. Later layers
// cover earlier ones and label text needs every dimension of the frame to
// have been placed first.
func (r *Renderer) Draw(s Surface, plan model.Plan, view *geometry.ViewState, state State) Report {
	var rep Report
	f := &frame{r: r, s: s, plan: plan, view: view, state: state, report: &rep}
	f.bounds, f.hasPlan = plan.Bounds()
	f.center = plan.Center()

	var projectSize float64
	if f.hasPlan {
		projectSize = math.Max(f.bounds.Width(), f.bounds.Height())
	}
	r.engine.SetOptions(dimension.OptionsFrom(r.Settings, projectSize))
	r.engine.BeginFrame(view, dimension.FontSize(view, r.Settings.BaseFontSize, r.Settings.MinFontSize))

	if r.Settings.ShowGrid {
		f.drawGrid()
	}
	f.drawWalls()
	f.drawRooms()
	f.drawZones()
	f.drawCustomSupports()
	f.drawSupportDraft()
	f.drawLabels()
	if r.Title {
		f.drawTitle()
	}

	if len(rep.Warnings) > 0 {
		r.log.Debug("frame drawn with warnings", slog.Int("warnings", len(rep.Warnings)))
	}
	return rep
}

func (f *frame) drawGrid() {
	spacing := f.r.Settings.GridSpacing
	if spacing*f.view.Scale < 8 {
		return
	}
	visible := f.view.ScreenRectToModel(f.view.CanvasRect())
	st := Stroke{Color: ColorGrid, Width: 0.5}
	for x := math.Ceil(visible.MinX/spacing) * spacing; x <= visible.MaxX; x += spacing {
		f.s.Line(f.view.ModelToScreen(geometry.Pt(x, visible.MinY)), f.view.ModelToScreen(geometry.Pt(x, visible.MaxY)), st)
	}
	for y := math.Ceil(visible.MinY/spacing) * spacing; y <= visible.MaxY; y += spacing {
		f.s.Line(f.view.ModelToScreen(geometry.Pt(visible.MinX, y)), f.view.ModelToScreen(geometry.Pt(visible.MaxX, y)), st)
	}
}

// dimension places one dimension and draws its lines. The text is drawn
// later by drawLabels.
func (f *frame) dimension(req dimension.Request) {
	if req.Color == nil {
		req.Color = ColorDimension
	}
	p := f.r.engine.Place(req)
	f.report.Dimensions++
	if p.Skipped {
		f.report.Skipped++
		return
	}
	if p.Degraded {
		f.report.Degraded++
	}
	st := Stroke{Color: req.Color, Width: 0.75}
	f.s.Line(p.Extension1.A, p.Extension1.B, st)
	f.s.Line(p.Extension2.A, p.Extension2.B, st)
	f.s.Line(p.DimensionLine.A, p.DimensionLine.B, st)

	// architectural ticks at both ends
	const tick = 4.0
	d := geometry.Pt(tick, -tick)
	for _, end := range []geometry.Point{p.DimensionLine.A, p.DimensionLine.B} {
		f.s.Line(end.Sub(d), end.Add(d), st)
	}
}

// drawLabels is the text pass: every label box is painted over the line
// work of the frame, followed by the room names.
func (f *frame) drawLabels() {
	for _, l := range f.r.engine.Labels() {
		f.s.Rect(l.Bounds, ColorLabelBack, Stroke{})
		f.s.Text(l.Text, l.Anchor, TextStyle{Size: l.FontSize, Color: l.Color})
	}
	for _, l := range f.names {
		f.s.Text(l.Text, l.Anchor, TextStyle{Size: l.FontSize, Color: l.Color, Bold: true})
	}
}

func (f *frame) drawSupportDraft() {
	d := f.state.SupportDraft
	if d == nil {
		return
	}
	a, b := f.view.ModelToScreen(d.Start), f.view.ModelToScreen(d.End)
	f.s.Line(a, b, Stroke{Color: ColorSupportLine, Width: 1.5, Dash: dashSupport})
	f.s.Circle(a, 3, ColorSupportLine, Stroke{})
	f.s.Circle(b, 3, ColorSupportLine, Stroke{})
}

func (f *frame) drawTitle() {
	size := f.r.Settings.MinFontSize + 3
	x := 12.0
	y := f.view.CanvasH - 12 - 2*size*1.3
	if f.view.CanvasH <= 0 {
		y = 12
	}
	name := f.plan.Name
	if name == "" {
		name = "Untitled"
	}
	f.s.Text(name, geometry.Pt(x, y), TextStyle{Size: size + 2, Color: ColorTitle, Align: AlignLeft, Bold: true})

	sum := model.Summarize(f.plan)
	line := fmt.Sprintf("%s  |  %d rooms  |  %d panels (%d cut)  |  ceiling %.0f mm",
		ScaleText(f.view.Scale), len(sum.Rooms), sum.TotalPanels, sum.TotalCut, f.r.Settings.CeilingThickness)
	f.s.Text(line, geometry.Pt(x, y+size*1.6), TextStyle{Size: size, Color: ColorTitle, Align: AlignLeft})
}

// ScaleText prints the drawing scale for a view scale in px per mm.
func ScaleText(scale float64) string {
	if scale <= 0 {
		return "Scale n/a"
	}
	return fmt.Sprintf("Scale 1:%d", int(math.Round(pxPerMM/scale)))
}
