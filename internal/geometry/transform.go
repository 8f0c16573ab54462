package geometry

import "math"

// Zoom limits are relative to the fit-to-window scale.
const (
	MinZoomRatio = 0.1
	MaxZoomRatio = 50.0
	ZoomStep     = 1.2
)

// ViewState is the pan/zoom state of one plan canvas. It is owned by the
// interaction controller and handed by pointer to the drawing code.
//
//	screen = model*Scale + Offset
type ViewState struct {
	Scale        float64 `json:"scale"`         // px per mm
	OffsetX      float64 `json:"offset_x"`      // px
	OffsetY      float64 `json:"offset_y"`      // px
	InitialScale float64 `json:"initial_scale"` // scale after the last fit-to-window
	CanvasW      float64 `json:"canvas_w"`      // px
	CanvasH      float64 `json:"canvas_h"`      // px
}

// NewViewState creates an identity view for a canvas of the given size.
func NewViewState(canvasW, canvasH float64) *ViewState {
	return &ViewState{
		Scale:        1,
		InitialScale: 1,
		CanvasW:      canvasW,
		CanvasH:      canvasH,
	}
}

// ModelToScreen maps a model point (mm) to screen pixels.
func (v *ViewState) ModelToScreen(p Point) Point {
	return Point{X: p.X*v.Scale + v.OffsetX, Y: p.Y*v.Scale + v.OffsetY}
}

// ScreenToModel is the exact inverse of ModelToScreen.
func (v *ViewState) ScreenToModel(p Point) Point {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return Point{X: (p.X - v.OffsetX) / s, Y: (p.Y - v.OffsetY) / s}
}

// ModelRectToScreen maps a model rectangle to screen space.
func (v *ViewState) ModelRectToScreen(r Rect) Rect {
	return RectFromPoints(v.ModelToScreen(r.Min()), v.ModelToScreen(r.Max()))
}

// ScreenRectToModel maps a screen rectangle back to model space.
func (v *ViewState) ScreenRectToModel(r Rect) Rect {
	return RectFromPoints(v.ScreenToModel(r.Min()), v.ScreenToModel(r.Max()))
}

// ToModelLength converts a pixel distance to mm at the current scale.
func (v *ViewState) ToModelLength(px float64) float64 {
	if v.Scale == 0 {
		return px
	}
	return px / v.Scale
}

// CanvasRect is the visible screen area.
func (v *ViewState) CanvasRect() Rect {
	return Rect{MaxX: v.CanvasW, MaxY: v.CanvasH}
}

// ZoomRatio is the current scale relative to the fit-to-window scale.
func (v *ViewState) ZoomRatio() float64 {
	if v.InitialScale <= 0 {
		return 1
	}
	return v.Scale / v.InitialScale
}

// Fit scales and centres bounds inside the canvas, leaving padding pixels on
// every side, and records the result as the initial scale.
func (v *ViewState) Fit(bounds Rect, padding float64) {
	availW := v.CanvasW - 2*padding
	availH := v.CanvasH - 2*padding
	bw, bh := bounds.Width(), bounds.Height()
	if availW <= 0 || availH <= 0 || bw <= 0 && bh <= 0 {
		v.Scale, v.InitialScale = 1, 1
		v.OffsetX, v.OffsetY = 0, 0
		return
	}

	scale := math.Inf(1)
	if bw > 0 {
		scale = availW / bw
	}
	if bh > 0 {
		scale = math.Min(scale, availH/bh)
	}

	v.Scale = scale
	v.InitialScale = scale
	c := bounds.Center()
	v.OffsetX = v.CanvasW/2 - c.X*scale
	v.OffsetY = v.CanvasH/2 - c.Y*scale
}

// ZoomAt multiplies the scale by factor while keeping the model point under
// the given screen position fixed.
func (v *ViewState) ZoomAt(screen Point, factor float64) {
	if factor <= 0 {
		return
	}
	anchor := v.ScreenToModel(screen)
	scale := v.Scale * factor
	if v.InitialScale > 0 {
		scale = math.Max(scale, v.InitialScale*MinZoomRatio)
		scale = math.Min(scale, v.InitialScale*MaxZoomRatio)
	}
	v.Scale = scale
	v.OffsetX = screen.X - anchor.X*scale
	v.OffsetY = screen.Y - anchor.Y*scale
}

// Pan shifts the view by a screen-space delta.
func (v *ViewState) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}
