// Package interaction turns pointer input into view changes, selection and
// support placement for one plan canvas.
package interaction

import (
	"log/slog"

	"github.com/piwi3910/CeilPlan/internal/applog"
	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/render"
)

// FitPadding is the screen margin kept around the plan on Reset Zoom.
const FitPadding = 60.0

// Tool is the active pointer tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolSupport
)

func (t Tool) String() string {
	if t == ToolSupport {
		return "support"
	}
	return "select"
}

// Callbacks are invoked synchronously from the event handlers. Nil callbacks
// are skipped.
type Callbacks struct {
	OnRoomSelect     func(id string)
	OnRoomDeselect   func()
	OnPanelSelect    func(id string) // "" clears the panel selection
	OnSupportsChange func(supports []model.Support)
	OnRedraw         func()
}

// Controller owns the view state and the placement memory of one canvas.
// All methods must be called from the UI event loop.
type Controller struct {
	Callbacks

	view     *geometry.ViewState
	memory   *dimension.Memory
	settings model.RenderSettings
	plan     model.Plan
	supports []model.Support
	state    render.State
	tool     Tool
	fitted   bool

	dragging  bool
	moved     bool
	dragStart geometry.Point // screen
	last      geometry.Point // screen

	log *slog.Logger
}

// NewController creates a controller for a canvas of the given size.
func NewController(canvasW, canvasH float64, settings model.RenderSettings) *Controller {
	return &Controller{
		view:     geometry.NewViewState(canvasW, canvasH),
		memory:   dimension.NewMemory(),
		settings: settings.Validate(),
		plan:     model.NewPlan(),
		log:      applog.WithComponent("interaction"),
	}
}

// View returns the live view state. Drawing code reads it; only the
// controller writes it.
func (c *Controller) View() *geometry.ViewState { return c.view }

// Memory returns the placement memory to share with the renderer.
func (c *Controller) Memory() *dimension.Memory { return c.memory }

// State returns the selection and hover state to draw.
func (c *Controller) State() render.State { return c.state }

// Tool returns the active tool.
func (c *Controller) Tool() Tool { return c.tool }

// SetTool switches tools and drops any support line in progress.
func (c *Controller) SetTool(t Tool) {
	c.tool = t
	c.state.SupportDraft = nil
	c.dragging = false
	c.redraw()
}

// SetSettings updates the settings used for snapping.
func (c *Controller) SetSettings(s model.RenderSettings) { c.settings = s.Validate() }

// Plan returns the current plan with the user's custom supports applied.
func (c *Controller) Plan() model.Plan {
	p := c.plan
	p.CustomSupports = c.Supports()
	return p
}

// Supports returns a copy of the custom support list.
func (c *Controller) Supports() []model.Support {
	return append([]model.Support(nil), c.supports...)
}

// SetPlan replaces the scene. Selection and placement memory are reset and
// the view is fitted to the new plan.
func (c *Controller) SetPlan(p model.Plan) {
	c.plan = p
	c.supports = append([]model.Support(nil), p.CustomSupports...)
	c.state = render.State{}
	c.ResetZoom()
}

// SetCanvasSize records a new canvas size. The first call with a usable size
// fits the plan.
func (c *Controller) SetCanvasSize(w, h float64) {
	c.view.CanvasW, c.view.CanvasH = w, h
	if !c.fitted && w > 0 && h > 0 {
		c.ResetZoom()
		return
	}
	c.redraw()
}

// ResetZoom fits the plan to the canvas and forgets every label placement.
func (c *Controller) ResetZoom() {
	if b, ok := c.plan.Bounds(); ok && c.view.CanvasW > 0 && c.view.CanvasH > 0 {
		c.view.Fit(b, FitPadding)
		c.fitted = true
	}
	c.memory.Reset()
	c.redraw()
}

// ZoomIn zooms one step around the canvas centre.
func (c *Controller) ZoomIn() { c.zoomCentre(geometry.ZoomStep) }

// ZoomOut zooms out one step around the canvas centre.
func (c *Controller) ZoomOut() { c.zoomCentre(1 / geometry.ZoomStep) }

func (c *Controller) zoomCentre(factor float64) {
	c.view.ZoomAt(c.view.CanvasRect().Center(), factor)
	c.redraw()
}

// Scroll zooms around the pointer. Positive dy zooms in.
func (c *Controller) Scroll(at geometry.Point, dy float64) {
	switch {
	case dy > 0:
		c.view.ZoomAt(at, geometry.ZoomStep)
	case dy < 0:
		c.view.ZoomAt(at, 1/geometry.ZoomStep)
	default:
		return
	}
	c.redraw()
}

// MouseDown starts a pan, or a support line with the support tool.
func (c *Controller) MouseDown(at geometry.Point) {
	c.dragging = true
	c.moved = false
	c.dragStart, c.last = at, at
	if c.tool == ToolSupport {
		m := c.view.ScreenToModel(at)
		c.state.SupportDraft = &model.SupportLine{Start: m, End: m}
		c.redraw()
	}
}

// MouseMove pans or extends the support line while dragging and updates the
// hover state otherwise.
func (c *Controller) MouseMove(at geometry.Point) {
	if !c.dragging {
		c.hover(at)
		return
	}
	if at != c.dragStart {
		c.moved = true
	}
	if c.tool == ToolSupport && c.state.SupportDraft != nil {
		d := c.state.SupportDraft
		end, snapped := geometry.SnapTo90(d.Start, c.view.ScreenToModel(at), c.settings.SnapToleranceDeg)
		d.End, d.IsSnapped = end, snapped
	} else {
		c.view.Pan(at.X-c.last.X, at.Y-c.last.Y)
	}
	c.last = at
	c.redraw()
}

// MouseUp ends a drag. With the support tool it converts the drawn line into
// aluminium supports on every panel it crosses and emits the new list.
func (c *Controller) MouseUp(at geometry.Point) {
	if !c.dragging {
		return
	}
	c.dragging = false
	draft := c.state.SupportDraft
	c.state.SupportDraft = nil
	if c.tool != ToolSupport || draft == nil {
		return
	}
	if draft.Start.Distance(draft.End) < geometry.Epsilon {
		c.redraw()
		return
	}
	added := model.SupportsForLine(*draft, c.plan.AllPanels())
	c.log.Debug("support line placed", slog.Int("supports", len(added)), slog.Bool("snapped", draft.IsSnapped))
	if len(added) > 0 {
		c.supports = append(c.supports, added...)
		if c.OnSupportsChange != nil {
			c.OnSupportsChange(c.Supports())
		}
	}
	c.redraw()
}

// ClearSupports removes every custom support.
func (c *Controller) ClearSupports() {
	c.supports = nil
	if c.OnSupportsChange != nil {
		c.OnSupportsChange(nil)
	}
	c.redraw()
}

// Click selects what is under the pointer. Clicks that end a pan are
// ignored.
func (c *Controller) Click(at geometry.Point) {
	if c.moved || c.tool == ToolSupport {
		c.moved = false
		return
	}
	h := c.HitTest(at)
	switch h.Kind {
	case HitPanel:
		c.state.SelectedPanelID = h.ID
		c.state.SelectedRoomID = h.RoomID
		if c.OnPanelSelect != nil {
			c.OnPanelSelect(h.ID)
		}
	case HitZone, HitRoom:
		hadPanel := c.state.SelectedPanelID != ""
		c.state.SelectedRoomID = h.ID
		c.state.SelectedPanelID = ""
		if hadPanel && c.OnPanelSelect != nil {
			c.OnPanelSelect("")
		}
		if c.OnRoomSelect != nil {
			c.OnRoomSelect(h.ID)
		}
	default:
		had := c.state.SelectedRoomID != "" || c.state.SelectedPanelID != ""
		c.state.SelectedRoomID, c.state.SelectedPanelID = "", ""
		if had {
			if c.OnRoomDeselect != nil {
				c.OnRoomDeselect()
			}
			if c.OnPanelSelect != nil {
				c.OnPanelSelect("")
			}
		}
	}
	c.redraw()
}

func (c *Controller) hover(at geometry.Point) {
	h := c.HitTest(at)
	var room, panel string
	switch h.Kind {
	case HitPanel:
		panel = h.ID
	case HitZone, HitRoom:
		room = h.ID
	}
	if room == c.state.HoverRoomID && panel == c.state.HoverPanelID {
		return
	}
	c.state.HoverRoomID, c.state.HoverPanelID = room, panel
	c.redraw()
}

func (c *Controller) redraw() {
	if c.OnRedraw != nil {
		c.OnRedraw()
	}
}
