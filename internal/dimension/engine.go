package dimension

import (
	"math"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// Options tunes label placement. Offsets are in screen pixels.
type Options struct {
	BaseOffset         float64 `json:"base_offset"`
	Increment          float64 `json:"increment"`
	MaxAttempts        int     `json:"max_attempts"`
	AvoidMargin        float64 `json:"avoid_margin"`
	AvoidAttempts      int     `json:"avoid_attempts"`
	SmallThreshold     float64 `json:"small_threshold"` // fraction of ProjectSize
	ProjectSize        float64 `json:"project_size"`    // mm, larger side of the plan bounds
	PaddingX           float64 `json:"padding_x"`
	PaddingY           float64 `json:"padding_y"`
	ExtensionOvershoot float64 `json:"extension_overshoot"`
}

// DefaultOptions returns the placement defaults.
func DefaultOptions() Options {
	return Options{
		BaseOffset:         18,
		Increment:          14,
		MaxAttempts:        8,
		AvoidMargin:        4,
		AvoidAttempts:      10,
		SmallThreshold:     0.1,
		PaddingX:           3,
		PaddingY:           1,
		ExtensionOvershoot: 3,
	}
}

// OptionsFrom derives options from render settings and the plan size.
func OptionsFrom(s model.RenderSettings, projectSize float64) Options {
	o := DefaultOptions()
	if s.LabelOffset > 0 {
		o.BaseOffset = s.LabelOffset
	}
	if s.LabelIncrement > 0 {
		o.Increment = s.LabelIncrement
	}
	if s.LabelMaxAttempts > 0 {
		o.MaxAttempts = s.LabelMaxAttempts
	}
	if s.SmallDimension > 0 {
		o.SmallThreshold = s.SmallDimension
	}
	o.ProjectSize = projectSize
	return o
}

// Engine places dimension labels for one frame at a time. It is not safe for
// concurrent use; the canvas owns one engine and drives it from its draw
// loop.
type Engine struct {
	opts     Options
	memory   *Memory
	measure  Measurer
	view     *geometry.ViewState
	fontSize float64
	placed   []geometry.Rect
	labels   []Label
}

// NewEngine creates an engine. A nil memory or measurer gets a fresh memory
// and ApproxMeasurer.
func NewEngine(opts Options, memory *Memory, measure Measurer) *Engine {
	if memory == nil {
		memory = NewMemory()
	}
	if measure == nil {
		measure = ApproxMeasurer{}
	}
	return &Engine{opts: opts, memory: memory, measure: measure}
}

// SetOptions replaces the placement options, e.g. after the plan changed size.
func (e *Engine) SetOptions(o Options) { e.opts = o }

// Options returns the current options.
func (e *Engine) Options() Options { return e.opts }

// Memory returns the placement memory shared across frames.
func (e *Engine) Memory() *Memory { return e.memory }

// BeginFrame clears the per-frame state. Placed boxes and queued labels from
// the previous frame are dropped; memory is kept.
func (e *Engine) BeginFrame(view *geometry.ViewState, fontSize float64) {
	e.view = view
	e.fontSize = fontSize
	e.placed = e.placed[:0]
	e.labels = e.labels[:0]
}

// FontSizePx returns the font size of the current frame.
func (e *Engine) FontSizePx() float64 { return e.fontSize }

// Placed returns the label boxes registered so far in this frame.
func (e *Engine) Placed() []geometry.Rect { return e.placed }

// Labels returns the labels queued for the text pass, in placement order.
func (e *Engine) Labels() []Label { return e.labels }

// Reserve registers an occupied screen area that later labels must avoid,
// e.g. the room name box.
func (e *Engine) Reserve(r geometry.Rect) {
	e.placed = append(e.placed, r)
}

func (e *Engine) collides(r geometry.Rect) bool {
	for _, p := range e.placed {
		if r.Overlaps(p) {
			return true
		}
	}
	return false
}

// candidate is one trial position: the dimension line coordinate on the
// perpendicular axis and the resulting label box.
type candidate struct {
	coord  float64
	offset float64
	box    geometry.Rect
}

type layout struct {
	s, t       geometry.Point // screen endpoints
	horizontal bool
	base       map[Side]float64
	w, h       float64
}

func (l layout) at(side Side, offset float64) candidate {
	var c float64
	switch side {
	case SideAbove, SideLeft:
		c = l.base[side] - offset
	default:
		c = l.base[side] + offset
	}
	var centre geometry.Point
	if l.horizontal {
		centre = geometry.Pt((l.s.X+l.t.X)/2, c)
	} else {
		centre = geometry.Pt(c, (l.s.Y+l.t.Y)/2)
	}
	box := geometry.RectXYWH(centre.X-l.w/2, centre.Y-l.h/2, l.w, l.h)
	return candidate{coord: c, offset: offset, box: box}
}

// search walks one side outward from the base offset and returns the first
// free candidate, or the last one tried.
func (e *Engine) search(l layout, side Side) (candidate, bool) {
	off := e.opts.BaseOffset
	var c candidate
	attempts := e.opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		c = l.at(side, off)
		if !e.collides(c.box) {
			return c, true
		}
		off += e.opts.Increment
	}
	return c, false
}

// isSmall reports whether a dimension is anchored at its own geometry rather
// than at the extremes of the avoid area.
func (e *Engine) isSmall(req Request, length float64) bool {
	if req.AvoidArea == nil || e.opts.ProjectSize <= 0 {
		return true
	}
	return length < e.opts.ProjectSize*e.opts.SmallThreshold
}

// Place positions one dimension. BeginFrame must have been called.
func (e *Engine) Place(req Request) Placement {
	view := e.view
	if view == nil {
		view = geometry.NewViewState(0, 0)
	}
	d := req.End.Sub(req.Start)
	horizontal := IsHorizontal(d.X, d.Y)
	if req.HorizontalOverride != nil {
		horizontal = *req.HorizontalOverride
	}

	length := req.Length
	if length == 0 {
		if horizontal {
			length = math.Abs(d.X)
		} else {
			length = math.Abs(d.Y)
		}
	}
	text := req.Text
	if text == "" {
		text = Format(length, req.Quantity, req.Kind == KindCutPanel)
	}

	w, h := e.measure.MeasureText(text, e.fontSize)
	l := layout{
		s:          view.ModelToScreen(req.Start),
		t:          view.ModelToScreen(req.End),
		horizontal: horizontal,
		base:       make(map[Side]float64, 2),
		w:          w + 2*e.opts.PaddingX,
		h:          h + 2*e.opts.PaddingY,
	}
	first, second := Sides(horizontal)
	if e.isSmall(req, length) {
		if horizontal {
			l.base[first] = math.Min(l.s.Y, l.t.Y)
			l.base[second] = math.Max(l.s.Y, l.t.Y)
		} else {
			l.base[first] = math.Min(l.s.X, l.t.X)
			l.base[second] = math.Max(l.s.X, l.t.X)
		}
	} else {
		av := view.ModelRectToScreen(*req.AvoidArea)
		if horizontal {
			l.base[first], l.base[second] = av.MinY, av.MaxY
		} else {
			l.base[first], l.base[second] = av.MinX, av.MaxX
		}
	}

	key := KeyFor(req.Start, req.End, req.Kind)
	var (
		side   Side
		chosen candidate
		ok     bool
		locked bool
	)
	if s, found := e.memory.Get(key); found && (s == first || s == second) {
		side, locked = s, true
		chosen, ok = e.search(l, side)
	} else {
		pref, other := first, second
		if req.PreferredSide == second {
			pref, other = second, first
		}
		c1, c2 := l.at(pref, e.opts.BaseOffset), l.at(other, e.opts.BaseOffset)
		if !e.collides(c1.box) && !e.collides(c2.box) {
			side, chosen, ok = pref, c1, true
		} else if chosen, ok = e.search(l, first); ok {
			side = first
		} else {
			side = second
			chosen, ok = e.search(l, second)
		}
		e.memory.Set(key, side)
	}

	if req.AvoidArea != nil {
		avoid := req.AvoidArea.Expand(view.ToModelLength(e.opts.AvoidMargin))
		blocked := func(c candidate) bool {
			return view.ScreenRectToModel(c.box).Overlaps(avoid) || e.collides(c.box)
		}
		if view.ScreenRectToModel(chosen.box).Overlaps(avoid) {
			off := chosen.offset
			for i := 0; i < e.opts.AvoidAttempts && blocked(chosen); i++ {
				off += e.opts.Increment
				chosen = l.at(side, off)
			}
			// A pushed box that still lands on another label is accepted as degraded.
			if e.collides(chosen.box) {
				ok = false
			}
		}
	}

	p := Placement{
		Side:     side,
		Locked:   locked,
		Degraded: !ok,
		Label: Label{
			Bounds:     chosen.box,
			Text:       text,
			Color:      req.Color,
			Anchor:     chosen.box.Center(),
			FontSize:   e.fontSize,
			Horizontal: horizontal,
			Kind:       req.Kind,
		},
	}
	p.Extension1, p.Extension2, p.DimensionLine = e.lines(l, side, chosen.coord)

	if view.CanvasW > 0 && view.CanvasH > 0 && !view.CanvasRect().ContainsRect(chosen.box) {
		p.Skipped = true
		return p
	}
	e.placed = append(e.placed, chosen.box)
	e.labels = append(e.labels, p.Label)
	return p
}

func (e *Engine) lines(l layout, side Side, c float64) (ext1, ext2, dim geometry.Segment) {
	over := e.opts.ExtensionOvershoot
	if side == SideAbove || side == SideLeft {
		over = -over
	}
	if l.horizontal {
		ext1 = geometry.Seg(l.s, geometry.Pt(l.s.X, c+over))
		ext2 = geometry.Seg(l.t, geometry.Pt(l.t.X, c+over))
		dim = geometry.Seg(geometry.Pt(l.s.X, c), geometry.Pt(l.t.X, c))
		return
	}
	ext1 = geometry.Seg(l.s, geometry.Pt(c+over, l.s.Y))
	ext2 = geometry.Seg(l.t, geometry.Pt(c+over, l.t.Y))
	dim = geometry.Seg(geometry.Pt(c, l.s.Y), geometry.Pt(c, l.t.Y))
	return
}
