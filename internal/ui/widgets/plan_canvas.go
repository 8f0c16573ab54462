package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/interaction"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/render"
)

// PlanCanvas is the interactive plan view. It draws through the shared
// renderer and forwards pointer input to an interaction controller.
type PlanCanvas struct {
	widget.BaseWidget

	ctrl     *interaction.Controller
	renderer *render.Renderer
	rec      *render.Recorder
	report   render.Report

	dragging bool
	last     fyne.Position

	// OnReport is called after every frame.
	OnReport func(render.Report)
}

var (
	_ fyne.Draggable      = (*PlanCanvas)(nil)
	_ fyne.Scrollable     = (*PlanCanvas)(nil)
	_ fyne.Tappable       = (*PlanCanvas)(nil)
	_ desktop.Hoverable   = (*PlanCanvas)(nil)
	_ fyne.WidgetRenderer = (*planCanvasRenderer)(nil)
)

// NewPlanCanvas creates a canvas driven by ctrl. The controller's redraw
// callback is taken over by the canvas.
func NewPlanCanvas(ctrl *interaction.Controller, settings model.RenderSettings) *PlanCanvas {
	pc := &PlanCanvas{
		ctrl:     ctrl,
		renderer: render.NewRenderer(settings, ctrl.Memory(), fyneMeasurer{}),
		rec:      render.NewRecorder(),
	}
	ctrl.OnRedraw = pc.Refresh
	pc.ExtendBaseWidget(pc)
	return pc
}

// Controller returns the interaction controller.
func (pc *PlanCanvas) Controller() *interaction.Controller { return pc.ctrl }

// Report returns the report of the last frame.
func (pc *PlanCanvas) Report() render.Report { return pc.report }

// SetSettings changes the render settings and redraws.
func (pc *PlanCanvas) SetSettings(s model.RenderSettings) {
	pc.renderer.Settings = s.Validate()
	pc.ctrl.SetSettings(s)
	pc.Refresh()
}

// Settings returns the active render settings.
func (pc *PlanCanvas) Settings() model.RenderSettings { return pc.renderer.Settings }

// Resize keeps the controller's canvas size in step with the widget.
func (pc *PlanCanvas) Resize(size fyne.Size) {
	pc.BaseWidget.Resize(size)
	pc.ctrl.SetCanvasSize(float64(size.Width), float64(size.Height))
}

func (pc *PlanCanvas) MinSize() fyne.Size {
	pc.ExtendBaseWidget(pc)
	return fyne.NewSize(200, 150)
}

func pt(p fyne.Position) geometry.Point {
	return geometry.Pt(float64(p.X), float64(p.Y))
}

// Dragged pans the view or draws a support line, depending on the tool.
func (pc *PlanCanvas) Dragged(e *fyne.DragEvent) {
	if !pc.dragging {
		pc.dragging = true
		start := e.Position.Subtract(e.Dragged)
		pc.ctrl.MouseDown(pt(start))
	}
	pc.last = e.Position
	pc.ctrl.MouseMove(pt(e.Position))
}

func (pc *PlanCanvas) DragEnd() {
	if !pc.dragging {
		return
	}
	pc.dragging = false
	pc.ctrl.MouseUp(pt(pc.last))
}

// Scrolled zooms around the pointer.
func (pc *PlanCanvas) Scrolled(e *fyne.ScrollEvent) {
	pc.ctrl.Scroll(pt(e.Position), float64(e.Scrolled.DY))
}

// Tapped selects what is under the pointer. The press is replayed first so
// a preceding pan does not swallow the click.
func (pc *PlanCanvas) Tapped(e *fyne.PointEvent) {
	at := pt(e.Position)
	pc.ctrl.MouseDown(at)
	pc.ctrl.MouseUp(at)
	pc.ctrl.Click(at)
}

func (pc *PlanCanvas) MouseIn(e *desktop.MouseEvent) {}

func (pc *PlanCanvas) MouseMoved(e *desktop.MouseEvent) {
	if pc.dragging {
		return
	}
	pc.ctrl.MouseMove(pt(e.Position))
}

func (pc *PlanCanvas) MouseOut() {
	pc.ctrl.MouseMove(geometry.Pt(-1, -1))
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPlanCanvasRenderer(pc)
}

// draw renders a frame into the recorder.
func (pc *PlanCanvas) draw() {
	pc.rec.Reset()
	pc.report = pc.renderer.Draw(pc.rec, pc.ctrl.Plan(), pc.ctrl.View(), pc.ctrl.State())
	if pc.OnReport != nil {
		pc.OnReport(pc.report)
	}
}

type planCanvasRenderer struct {
	pc      *PlanCanvas
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

func newPlanCanvasRenderer(pc *PlanCanvas) *planCanvasRenderer {
	r := &planCanvasRenderer{pc: pc, bg: canvas.NewRectangle(render.ColorBackground)}
	r.rebuild()
	return r
}

func (r *planCanvasRenderer) rebuild() {
	size := r.pc.Size()
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	r.pc.draw()
	s := &fyneSurface{objects: []fyne.CanvasObject{r.bg}}
	r.pc.rec.Replay(s)
	r.objects = s.objects
}

func (r *planCanvasRenderer) Layout(size fyne.Size)        { r.rebuild() }
func (r *planCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.pc) }
func (r *planCanvasRenderer) Destroy()                     {}
func (r *planCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *planCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(200, 150) }

// fyneSurface turns drawing calls into canvas objects. Dashes are emulated
// with short lines; polygons that are not axis-aligned rectangles are filled
// by a raster over their bounding box.
type fyneSurface struct {
	objects []fyne.CanvasObject
}

func pos(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (s *fyneSurface) line(a, b geometry.Point, c color.Color, w float64) {
	l := canvas.NewLine(c)
	l.StrokeWidth = float32(w)
	l.Position1, l.Position2 = pos(a), pos(b)
	s.objects = append(s.objects, l)
}

func (s *fyneSurface) Line(a, b geometry.Point, st render.Stroke) {
	if !st.Visible() {
		return
	}
	for _, seg := range render.DashSegments(a, b, st.Dash) {
		s.line(seg.A, seg.B, st.Color, st.Width)
	}
}

func (s *fyneSurface) Polyline(pts []geometry.Point, st render.Stroke) {
	for i := 0; i+1 < len(pts); i++ {
		s.Line(pts[i], pts[i+1], st)
	}
}

func (s *fyneSurface) Polygon(pts []geometry.Point, fill color.Color, st render.Stroke) {
	if len(pts) < 3 {
		return
	}
	if r, ok := axisRect(pts); ok {
		s.Rect(r, fill, st)
		return
	}
	if fill != nil {
		if b, ok := geometry.BoundsOf(pts); ok && b.Width() > 0 && b.Height() > 0 {
			poly := append([]geometry.Point(nil), pts...)
			raster := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
				p := geometry.Pt(b.MinX+(float64(x)+0.5)/float64(w)*b.Width(), b.MinY+(float64(y)+0.5)/float64(h)*b.Height())
				if geometry.PointInPolygon(p, poly) {
					return fill
				}
				return color.Transparent
			})
			raster.Move(pos(b.Min()))
			raster.Resize(fyne.NewSize(float32(b.Width()), float32(b.Height())))
			s.objects = append(s.objects, raster)
		}
	}
	closed := append(pts[:len(pts):len(pts)], pts[0])
	s.Polyline(closed, st)
}

// axisRect reports whether a four-point polygon is an axis-aligned rectangle.
func axisRect(pts []geometry.Point) (geometry.Rect, bool) {
	if len(pts) != 4 {
		return geometry.Rect{}, false
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		if math.Abs(a.X-b.X) > 1e-6 && math.Abs(a.Y-b.Y) > 1e-6 {
			return geometry.Rect{}, false
		}
	}
	r, ok := geometry.BoundsOf(pts)
	return r, ok
}

func (s *fyneSurface) Rect(r geometry.Rect, fill color.Color, st render.Stroke) {
	if fill == nil && !st.Visible() {
		return
	}
	if fill == nil {
		fill = color.Transparent
	}
	rect := canvas.NewRectangle(fill)
	if st.Visible() && len(st.Dash) == 0 {
		rect.StrokeColor = st.Color
		rect.StrokeWidth = float32(st.Width)
	}
	rect.Move(pos(r.Min()))
	rect.Resize(fyne.NewSize(float32(r.Width()), float32(r.Height())))
	s.objects = append(s.objects, rect)

	if st.Visible() && len(st.Dash) > 0 {
		c := r.Corners()
		s.Polyline([]geometry.Point{c[0], c[1], c[2], c[3], c[0]}, st)
	}
}

func (s *fyneSurface) Circle(c geometry.Point, radius float64, fill color.Color, st render.Stroke) {
	if fill == nil && !st.Visible() {
		return
	}
	if fill == nil {
		fill = color.Transparent
	}
	circle := canvas.NewCircle(fill)
	if st.Visible() {
		circle.StrokeColor = st.Color
		circle.StrokeWidth = float32(st.Width)
	}
	circle.Position1 = pos(geometry.Pt(c.X-radius, c.Y-radius))
	circle.Position2 = pos(geometry.Pt(c.X+radius, c.Y+radius))
	s.objects = append(s.objects, circle)
}

func (s *fyneSurface) Text(text string, at geometry.Point, ts render.TextStyle) {
	c := ts.Color
	if c == nil {
		c = color.Black
	}
	t := canvas.NewText(text, c)
	t.TextSize = float32(ts.Size)
	t.TextStyle = fyne.TextStyle{Bold: ts.Bold}
	size := t.MinSize()

	x := float32(at.X)
	switch ts.Align {
	case render.AlignCenter:
		x -= size.Width / 2
	case render.AlignRight:
		x -= size.Width
	}
	t.Move(fyne.NewPos(x, float32(at.Y)-size.Height/2))
	t.Resize(size)
	s.objects = append(s.objects, t)
}

// fyneMeasurer sizes label text with the toolkit's own font metrics so
// collision boxes match what is drawn.
type fyneMeasurer struct{}

func (fyneMeasurer) MeasureText(text string, size float64) (float64, float64) {
	s := fyne.MeasureText(text, float32(size), fyne.TextStyle{})
	return float64(s.Width), float64(s.Height)
}
