package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

func corridorPlan() model.Plan {
	plan := model.NewPlan()
	plan.Name = "Corridor"
	plan.Rooms = []model.Room{{
		ID:     "r1",
		Name:   "Corridor",
		Points: []model.Point{{X: 0, Y: 0}, {X: 5000, Y: 0}, {X: 5000, Y: 1000}, {X: 0, Y: 1000}},
	}}
	var panels []model.Panel
	for i := 0; i < 4; i++ {
		panels = append(panels, model.NewPanel("r1", float64(i)*1150, 0, 1150, 1000, false))
	}
	panels = append(panels, model.NewPanel("r1", 4600, 0, 400, 1000, true))
	plan.Panels["r1"] = panels
	return plan
}

func newTestRenderer() *Renderer {
	r := NewRenderer(model.DefaultRenderSettings(), nil, dimension.ApproxMeasurer{})
	r.Title = false
	return r
}

func countText(rec *Recorder, text string) int {
	n := 0
	for _, s := range rec.Texts() {
		if s == text {
			n++
		}
	}
	return n
}

func TestDrawGroupsPanelDimensions(t *testing.T) {
	view := &geometry.ViewState{Scale: 0.05, InitialScale: 0.05, OffsetX: 275, OffsetY: 275, CanvasW: 800, CanvasH: 600}
	rec := NewRecorder()

	rep := newTestRenderer().Draw(rec, corridorPlan(), view, State{})

	assert.Equal(t, 4, rep.Dimensions, "room width, room height, one group, one cut")
	assert.Zero(t, rep.Skipped)
	assert.Empty(t, rep.Warnings)
	assert.Equal(t, 1, countText(rec, "4 × 1150"))
	assert.Equal(t, 1, countText(rec, "400 (CUT)"))
	assert.Equal(t, 1, countText(rec, "5000"))
	assert.Equal(t, 1, countText(rec, "1000"))
	assert.Zero(t, countText(rec, "1150"))

	for _, op := range rec.Ops {
		if op.Kind == OpText && op.Text == "400 (CUT)" {
			assert.Equal(t, ColorCutDimension, op.Style.Color)
		}
	}
}

func TestDrawDeduplicatesCutDimensions(t *testing.T) {
	view := &geometry.ViewState{Scale: 0.05, InitialScale: 0.05, OffsetX: 275, OffsetY: 275, CanvasW: 800, CanvasH: 600}
	plan := corridorPlan()
	plan.Rooms[0].Points[1].X = 5400
	plan.Rooms[0].Points[2].X = 5400
	plan.Panels["r1"] = append(plan.Panels["r1"], model.NewPanel("r1", 5000, 0, 400, 1000, true))

	rec := NewRecorder()
	rep := newTestRenderer().Draw(rec, plan, view, State{})
	assert.Equal(t, 1, countText(rec, "400 (CUT)"))
	assert.Equal(t, 4, rep.Dimensions)
}

func TestDrawDimensionLinesBeforeLabels(t *testing.T) {
	view := &geometry.ViewState{Scale: 0.05, InitialScale: 0.05, OffsetX: 150, OffsetY: 150, CanvasW: 900, CanvasH: 700}
	plan := corridorPlan()
	plan.Rooms = append(plan.Rooms, model.Room{
		ID:     "r2",
		Name:   "Office",
		Points: []model.Point{{X: 0, Y: 2000}, {X: 4000, Y: 2000}, {X: 4000, Y: 5000}, {X: 0, Y: 5000}},
	})
	for i := 0; i < 3; i++ {
		plan.Panels["r2"] = append(plan.Panels["r2"], model.NewPanel("r2", float64(i)*1150, 2000, 1150, 3000, false))
	}
	plan.Panels["r2"] = append(plan.Panels["r2"], model.NewPanel("r2", 3450, 2000, 550, 3000, true))

	rec := NewRecorder()
	rep := newTestRenderer().Draw(rec, plan, view, State{})
	require.Greater(t, rep.Dimensions, 4)

	lastLine, firstBox := -1, -1
	for i, op := range rec.Ops {
		switch {
		case op.Kind == OpLine && (op.Stroke.Color == ColorDimension || op.Stroke.Color == ColorCutDimension):
			lastLine = i
		case op.Kind == OpRect && op.Fill == ColorLabelBack && firstBox < 0:
			firstBox = i
		}
	}
	require.GreaterOrEqual(t, lastLine, 0, "no dimension lines drawn")
	require.GreaterOrEqual(t, firstBox, 0, "no label boxes drawn")
	assert.Less(t, lastLine, firstBox)

	for i, op := range rec.Ops[:firstBox] {
		assert.NotEqual(t, OpText, op.Kind, "text op %d %q drawn before the label pass", i, op.Text)
	}
}

func TestDrawPanelDensityLimit(t *testing.T) {
	view := &geometry.ViewState{Scale: 0.05, InitialScale: 0.05, OffsetX: 275, OffsetY: 275, CanvasW: 800, CanvasH: 600}
	plan := corridorPlan()
	plan.Panels["r1"] = []model.Panel{
		model.NewPanel("r1", 0, 0, 1200, 1000, false),
		model.NewPanel("r1", 1200, 0, 1100, 1000, false),
		model.NewPanel("r1", 2300, 0, 1000, 1000, false),
	}

	r := newTestRenderer()
	rep := r.Draw(NewRecorder(), plan, view, State{})
	assert.Equal(t, 2+3, rep.Dimensions)

	r.Settings.PanelDimLimit = 2
	r.Engine().Memory().Reset()
	rep = r.Draw(NewRecorder(), plan, view, State{})
	assert.Equal(t, 2, rep.Dimensions, "singleton dimensions are hidden above the limit")
}

func cornerPlan(method model.JoiningMethod) model.Plan {
	plan := model.NewPlan()
	plan.Walls = []model.Wall{
		{ID: "a", Start: geometry.Pt(0, 0), End: geometry.Pt(1000, 0)},
		{ID: "b", Start: geometry.Pt(1000, 1000), End: geometry.Pt(1000, 0)},
	}
	plan.Intersections = []model.Intersection{
		{WallA: "a", WallB: "b", JoiningMethod: method, Point: geometry.Pt(1000, 0)},
	}
	return plan
}

func capLines(rec *Recorder) []Op {
	var out []Op
	for _, op := range rec.Ops {
		if op.Kind == OpLine && op.Stroke.Width == strokeWallCap.Width && op.Stroke.Color == strokeWallCap.Color {
			out = append(out, op)
		}
	}
	return out
}

func TestDrawButtJointCappedOnce(t *testing.T) {
	view := geometry.NewViewState(2000, 2000)
	r := newTestRenderer()
	r.Settings.ShowGrid = false
	rec := NewRecorder()

	rep := r.Draw(rec, cornerPlan(model.JoinButt), view, State{})
	require.Empty(t, rep.Warnings)

	caps := capLines(rec)
	require.Len(t, caps, 3, "one joint cap and two free-end caps")

	corner := geometry.Pt(1000, 0)
	var atCorner []Op
	for _, c := range caps {
		if c.Points[0].NearlyEqual(corner, 1e-9) || c.Points[1].NearlyEqual(corner, 1e-9) {
			atCorner = append(atCorner, c)
		}
	}
	require.Len(t, atCorner, 1)
	seg := geometry.Seg(atCorner[0].Points[0], atCorner[0].Points[1])
	assert.InDelta(t, 6.0, seg.Len(), 1e-9)
	assert.InDelta(t, 0.0, seg.Dir().X, 1e-9, "cap is perpendicular to the horizontal wall")
}

func TestDrawMiterJoint(t *testing.T) {
	view := geometry.NewViewState(2000, 2000)
	r := newTestRenderer()
	r.Settings.ShowGrid = false
	rec := NewRecorder()

	r.Draw(rec, cornerPlan(model.Join45Cut), view, State{})

	caps := capLines(rec)
	require.Len(t, caps, 3)
	var miter *Op
	for i := range caps {
		if caps[i].Points[0].NearlyEqual(geometry.Pt(1000, 0), 1e-9) {
			miter = &caps[i]
		}
	}
	require.NotNil(t, miter)
	assert.InDelta(t, 1006.0, miter.Points[1].X, 1e-9)
	assert.InDelta(t, -6.0, miter.Points[1].Y, 1e-9)
}

func TestDrawDegenerateWallFallsBack(t *testing.T) {
	plan := model.NewPlan()
	plan.Walls = []model.Wall{
		{ID: "z", Start: geometry.Pt(10, 10), End: geometry.Pt(10, 10)},
		{ID: "ok", Start: geometry.Pt(0, 0), End: geometry.Pt(500, 0)},
	}
	r := newTestRenderer()
	r.Settings.ShowGrid = false
	rec := NewRecorder()

	rep := r.Draw(rec, plan, geometry.NewViewState(1000, 1000), State{})
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "wall z")
	assert.Len(t, capLines(rec), 2, "the valid wall is still drawn with caps")
}

func TestDrawSkipsInvalidPanels(t *testing.T) {
	view := &geometry.ViewState{Scale: 0.05, InitialScale: 0.05, OffsetX: 275, OffsetY: 275, CanvasW: 800, CanvasH: 600}
	plan := corridorPlan()
	plan.Panels["r1"] = append(plan.Panels["r1"], model.Panel{ID: "bad", Width: 0, Length: 1000})

	rep := newTestRenderer().Draw(NewRecorder(), plan, view, State{})
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "panel bad")
	assert.Equal(t, 4, rep.Dimensions)
}

func TestDrawSupports(t *testing.T) {
	view := geometry.NewViewState(20000, 20000)
	view.Scale, view.InitialScale = 1, 1
	plan := model.NewPlan()
	plan.Rooms = []model.Room{{ID: "r1", Points: []model.Point{{X: 0, Y: 0}, {X: 2300, Y: 0}, {X: 2300, Y: 7000}, {X: 0, Y: 7000}}}}
	plan.Panels["r1"] = []model.Panel{
		model.NewPanel("r1", 0, 0, 1150, 7000, false),
		model.NewPanel("r1", 1150, 0, 1150, 7000, false),
	}
	line := model.SupportLine{Start: geometry.Pt(-100, 3000), End: geometry.Pt(2400, 3000)}
	plan.CustomSupports = model.SupportsForLine(line, plan.Panels["r1"])

	r := newTestRenderer()
	r.Settings.ShowGrid = false
	rep := r.Draw(NewRecorder(), plan, view, State{})
	assert.Equal(t, 2, rep.Supports, "alu suspension is off by default")

	r.Settings.EnableAluSuspension = true
	rep = r.Draw(NewRecorder(), plan, view, State{})
	assert.Equal(t, 2+3, rep.Supports)

	r.Settings.SupportType = model.SupportAlu
	rep = r.Draw(NewRecorder(), plan, view, State{})
	assert.Equal(t, 3, rep.Supports)
}

func TestDashSegments(t *testing.T) {
	segs := DashSegments(geometry.Pt(0, 0), geometry.Pt(20, 0), []float64{6, 4})
	require.Len(t, segs, 2)
	assert.InDelta(t, 6.0, segs[0].Len(), 1e-9)
	assert.InDelta(t, 10.0, segs[1].A.X, 1e-9)

	solid := DashSegments(geometry.Pt(0, 0), geometry.Pt(5, 5), nil)
	assert.Len(t, solid, 1)
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder()
	src.Line(geometry.Pt(0, 0), geometry.Pt(1, 1), Stroke{Color: ColorWall, Width: 1})
	src.Circle(geometry.Pt(5, 5), 2, ColorNylon, Stroke{})
	src.Text("x", geometry.Pt(3, 3), TextStyle{Size: 9})

	dst := NewRecorder()
	src.Replay(dst)
	assert.Equal(t, src.Ops, dst.Ops)

	b, ok := dst.Bounds()
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{MinX: 0, MinY: 0, MaxX: 7, MaxY: 7}, b)
}

func TestScaleText(t *testing.T) {
	assert.Equal(t, "Scale 1:38", ScaleText(0.1))
	assert.Equal(t, "Scale n/a", ScaleText(0))
}

func TestGoFontMeasurer(t *testing.T) {
	m, err := NewGoFontMeasurer()
	require.NoError(t, err)
	w1, h1 := m.MeasureText("1150", 10)
	w2, _ := m.MeasureText("4 × 1150", 10)
	assert.Greater(t, w1, 0.0)
	assert.Greater(t, h1, 0.0)
	assert.Greater(t, w2, w1)
}
