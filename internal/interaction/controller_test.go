package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

func testPlan() model.Plan {
	plan := model.NewPlan()
	plan.Rooms = []model.Room{{
		ID:     "r1",
		Name:   "Office",
		Points: []model.Point{{X: 0, Y: 0}, {X: 4000, Y: 0}, {X: 4000, Y: 3000}, {X: 0, Y: 3000}},
	}}
	p := model.NewPanel("r1", 1000, 1000, 1150, 1000, false)
	p.ID = "p1"
	plan.Panels["r1"] = []model.Panel{p}
	return plan
}

// identityController maps screen pixels to model millimetres one to one.
func identityController(plan model.Plan) *Controller {
	c := NewController(0, 0, model.DefaultRenderSettings())
	c.SetPlan(plan)
	c.view.Scale, c.view.InitialScale = 1, 1
	c.view.OffsetX, c.view.OffsetY = 0, 0
	c.view.CanvasW, c.view.CanvasH = 5000, 5000
	return c
}

func TestHitTestPanelBoundary(t *testing.T) {
	plan := model.NewPlan()
	plan.Rooms = []model.Room{{
		ID:     "r1",
		Points: []model.Point{{X: 1000, Y: 1000}, {X: 2150, Y: 1000}, {X: 2150, Y: 2000}, {X: 1000, Y: 2000}},
	}}
	p := model.NewPanel("r1", 1000, 1000, 1150, 1000, false)
	plan.Panels["r1"] = []model.Panel{p}

	inside := []geometry.Point{
		{X: 1000, Y: 1000}, {X: 2150, Y: 2000}, {X: 1000, Y: 2000}, {X: 1500, Y: 1500},
	}
	for _, pt := range inside {
		h := HitTest(plan, pt)
		assert.Equal(t, HitPanel, h.Kind, "%v", pt)
		assert.Equal(t, p.ID, h.ID)
		assert.Equal(t, "r1", h.RoomID)
	}

	outside := []geometry.Point{
		{X: 999, Y: 1500}, {X: 2151, Y: 1500}, {X: 1500, Y: 999}, {X: 1500, Y: 2001},
	}
	for _, pt := range outside {
		assert.Equal(t, HitNone, HitTest(plan, pt).Kind, "%v", pt)
	}
}

func TestHitTestZoneBeforeRoom(t *testing.T) {
	plan := testPlan()
	plan.Zones = []model.Zone{{
		ID:            "z1",
		OutlinePoints: []model.Point{{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 800}, {X: 0, Y: 800}},
		RoomIDs:       []string{"r1"},
	}}

	assert.Equal(t, Hit{Kind: HitZone, ID: model.ZoneIDPrefix + "z1"}, HitTest(plan, geometry.Pt(400, 400)))
	assert.Equal(t, Hit{Kind: HitRoom, ID: "r1"}, HitTest(plan, geometry.Pt(3000, 2500)))
	assert.Equal(t, Hit{Kind: HitRoom, ID: "r1"}, HitTest(plan, geometry.Pt(1500, 1500)),
		"panels of a zoned room are not drawn and must not be hit")
}

func TestHitTestZonePanelOverZonedRoomPanel(t *testing.T) {
	plan := testPlan()
	zp := model.NewPanel("z1", 1000, 1000, 1150, 1000, false)
	zp.ID = "zp1"
	plan.Zones = []model.Zone{{
		ID:            "z1",
		OutlinePoints: []model.Point{{X: 0, Y: 0}, {X: 4000, Y: 0}, {X: 4000, Y: 3000}, {X: 0, Y: 3000}},
		RoomIDs:       []string{"r1"},
		CeilingPanels: []model.Panel{zp},
	}}

	h := HitTest(plan, geometry.Pt(1500, 1500))
	assert.Equal(t, HitPanel, h.Kind)
	assert.Equal(t, "zp1", h.ID)
	assert.Equal(t, model.ZoneIDPrefix+"z1", h.RoomID)

	assert.Equal(t, Hit{Kind: HitZone, ID: model.ZoneIDPrefix + "z1"}, HitTest(plan, geometry.Pt(3500, 2500)))
}

func TestClickCallbacks(t *testing.T) {
	c := identityController(testPlan())
	var events []string
	c.OnRoomSelect = func(id string) { events = append(events, "room:"+id) }
	c.OnRoomDeselect = func() { events = append(events, "deselect") }
	c.OnPanelSelect = func(id string) { events = append(events, "panel:"+id) }

	c.Click(geometry.Pt(1500, 1500))
	c.Click(geometry.Pt(3500, 2500))
	c.Click(geometry.Pt(4500, 4500))
	c.Click(geometry.Pt(4600, 4600))

	assert.Equal(t, []string{"panel:p1", "panel:", "room:r1", "deselect", "panel:"}, events)
	assert.Empty(t, c.State().SelectedRoomID)
}

func TestDragPansAndSuppressesClick(t *testing.T) {
	c := identityController(testPlan())
	selected := false
	c.OnPanelSelect = func(string) { selected = true }

	c.MouseDown(geometry.Pt(100, 100))
	c.MouseMove(geometry.Pt(130, 90))
	c.MouseMove(geometry.Pt(150, 80))
	c.MouseUp(geometry.Pt(150, 80))
	c.Click(geometry.Pt(1500, 1500))

	assert.InDelta(t, 50.0, c.View().OffsetX, 1e-9)
	assert.InDelta(t, -20.0, c.View().OffsetY, 1e-9)
	assert.False(t, selected)
}

func TestScrollZoomKeepsPointerAnchored(t *testing.T) {
	c := identityController(testPlan())
	at := geometry.Pt(1234, 567)
	before := c.View().ScreenToModel(at)

	c.Scroll(at, 1)
	assert.InDelta(t, geometry.ZoomStep, c.View().Scale, 1e-9)
	after := c.View().ScreenToModel(at)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	c.Scroll(at, -1)
	assert.InDelta(t, 1.0, c.View().Scale, 1e-9)
}

func TestResetZoomClearsMemory(t *testing.T) {
	c := NewController(800, 600, model.DefaultRenderSettings())
	redraws := 0
	c.OnRedraw = func() { redraws++ }
	c.SetPlan(testPlan())
	initial := c.View().Scale

	c.Memory().Set(dimension.Key{Kind: dimension.KindRoomWidth}, dimension.SideBelow)
	c.ZoomIn()
	c.ZoomIn()
	require.Greater(t, c.View().Scale, initial)

	c.ResetZoom()
	assert.InDelta(t, initial, c.View().Scale, 1e-9)
	assert.Zero(t, c.Memory().Len())
	assert.Equal(t, 4, redraws)
}

func TestSupportToolSnapsAndEmits(t *testing.T) {
	plan := testPlan()
	p2 := model.NewPanel("r1", 2150, 1000, 1150, 1000, false)
	plan.Panels["r1"] = append(plan.Panels["r1"], p2)
	c := identityController(plan)

	var emitted []model.Support
	c.OnSupportsChange = func(s []model.Support) { emitted = s }
	c.SetTool(ToolSupport)

	c.MouseDown(geometry.Pt(500, 1500))
	c.MouseMove(geometry.Pt(3800, 1560))
	draft := c.State().SupportDraft
	require.NotNil(t, draft)
	assert.True(t, draft.IsSnapped)
	assert.InDelta(t, 1500.0, draft.End.Y, 1e-9)

	c.MouseUp(geometry.Pt(3800, 1560))
	assert.Nil(t, c.State().SupportDraft)
	require.Len(t, emitted, 3)
	for _, s := range emitted {
		assert.Equal(t, model.SupportAlu, s.Type)
		assert.InDelta(t, 1500.0, s.Y, 1e-9)
	}
	assert.Len(t, c.Plan().CustomSupports, 3)

	c.ClearSupports()
	assert.Empty(t, c.Supports())
}

func TestHoverTracksPanel(t *testing.T) {
	c := identityController(testPlan())
	c.MouseMove(geometry.Pt(1500, 1500))
	assert.Equal(t, "p1", c.State().HoverPanelID)
	c.MouseMove(geometry.Pt(3500, 2500))
	assert.Equal(t, "r1", c.State().HoverRoomID)
	assert.Empty(t, c.State().HoverPanelID)
}
