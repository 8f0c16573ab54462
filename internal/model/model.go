package model

import (
	"github.com/google/uuid"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// Point is a model-space coordinate in mm.
type Point = geometry.Point

// ApplicationType distinguishes structural walls from partitions.
type ApplicationType string

const (
	ApplicationWall      ApplicationType = "wall"
	ApplicationPartition ApplicationType = "partition"
)

// JoiningMethod is how two walls meet at a shared end.
type JoiningMethod string

const (
	JoinButt  JoiningMethod = "butt_in"
	Join45Cut JoiningMethod = "45_cut"
)

func (j JoiningMethod) String() string {
	switch j {
	case Join45Cut:
		return "45° cut"
	default:
		return "Butt in"
	}
}

// SupportType is the kind of ceiling hanger.
type SupportType string

const (
	SupportNylon SupportType = "nylon"
	SupportAlu   SupportType = "alu"
)

// Wall is one straight wall segment. Start precedes End along the dominant
// axis (see NormalizeWall).
type Wall struct {
	ID              string          `json:"id"`
	Start           Point           `json:"start"`
	End             Point           `json:"end"`
	Height          float64         `json:"height"`    // mm
	Thickness       float64         `json:"thickness"` // mm
	ApplicationType ApplicationType `json:"application_type"`
}

// IsHorizontal reports whether the X extent dominates.
func (w Wall) IsHorizontal() bool {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx >= dy
}

// Segment returns the wall centreline.
func (w Wall) Segment() geometry.Segment {
	return geometry.Segment{A: w.Start, B: w.End}
}

// Length returns the wall length in mm.
func (w Wall) Length() float64 {
	return w.Segment().Len()
}

// IsPartition reports whether the wall is rendered with partition hatching.
func (w Wall) IsPartition() bool {
	return w.ApplicationType == ApplicationPartition
}

// NormalizeWall orders the endpoints so that start.x <= end.x for horizontal
// walls and start.y <= end.y for vertical ones.
func NormalizeWall(w Wall) Wall {
	if w.IsHorizontal() {
		if w.Start.X > w.End.X {
			w.Start, w.End = w.End, w.Start
		}
	} else if w.Start.Y > w.End.Y {
		w.Start, w.End = w.End, w.Start
	}
	if w.ApplicationType == "" {
		w.ApplicationType = ApplicationWall
	}
	return w
}

// Intersection records how two walls are joined.
type Intersection struct {
	WallA         string        `json:"wall_a"`
	WallB         string        `json:"wall_b"`
	JoiningMethod JoiningMethod `json:"joining_method"`
	Point         Point         `json:"point"`
}

// Involves reports whether the intersection references wall id.
func (i Intersection) Involves(id string) bool {
	return i.WallA == id || i.WallB == id
}

// Other returns the id of the wall joined to id.
func (i Intersection) Other(id string) string {
	if i.WallA == id {
		return i.WallB
	}
	return i.WallA
}

// Room is an externally authored room outline.
type Room struct {
	ID            string   `json:"id"`
	Points        []Point  `json:"room_points"` // closed implicitly
	Name          string   `json:"room_name"`
	LabelPosition *Point   `json:"label_position,omitempty"`
	WallIDs       []string `json:"walls,omitempty"`
}

// Panel is one rectangular ceiling panel. Width is its X extent and Length
// its Y extent.
type Panel struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"room_id"`
	StartX    float64 `json:"start_x"`
	StartY    float64 `json:"start_y"`
	EndX      float64 `json:"end_x"`
	EndY      float64 `json:"end_y"`
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	IsCut     bool    `json:"is_cut"`
	Thickness float64 `json:"thickness"`
}

// NewPanel creates a panel from its origin and size.
func NewPanel(roomID string, x, y, w, l float64, cut bool) Panel {
	return Panel{
		ID:     uuid.New().String()[:8],
		RoomID: roomID,
		StartX: x,
		StartY: y,
		EndX:   x + w,
		EndY:   y + l,
		Width:  w,
		Length: l,
		IsCut:  cut,
	}
}

// Bounds returns the panel rectangle in model space.
func (p Panel) Bounds() geometry.Rect {
	return geometry.RectFromPoints(geometry.Pt(p.StartX, p.StartY), geometry.Pt(p.StartX+p.Width, p.StartY+p.Length))
}

// Contains is the hit test used for panel selection; the edges are inclusive.
func (p Panel) Contains(pt Point) bool {
	return pt.X >= p.StartX && pt.X <= p.StartX+p.Width &&
		pt.Y >= p.StartY && pt.Y <= p.StartY+p.Length
}

// Zone merges several rooms under one outline and one panel layout.
type Zone struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	OutlinePoints []Point  `json:"outline_points"`
	RoomIDs       []string `json:"room_ids"`
	CeilingPanels []Panel  `json:"ceiling_panels"`
}

// SupportLine is the user-drawn line an aluminium suspension runs along.
type SupportLine struct {
	Start     Point `json:"start"`
	End       Point `json:"end"`
	IsSnapped bool  `json:"is_snapped"`
}

// Support is a hanger point on a panel.
type Support struct {
	ID                  string       `json:"id"`
	X                   float64      `json:"x"`
	Y                   float64      `json:"y"`
	Type                SupportType  `json:"type"`
	PanelID             string       `json:"panel_id,omitempty"`
	IsIntersectionPoint bool         `json:"is_intersection_point"`
	SupportLine         *SupportLine `json:"support_line,omitempty"`
}

// NewSupport creates a support with a fresh id.
func NewSupport(t SupportType, at Point) Support {
	return Support{
		ID:   uuid.New().String()[:8],
		X:    at.X,
		Y:    at.Y,
		Type: t,
	}
}

// Plan is a read-only snapshot of everything the drawing needs.
type Plan struct {
	Name           string             `json:"name"`
	Rooms          []Room             `json:"rooms"`
	Walls          []Wall             `json:"walls"`
	Intersections  []Intersection     `json:"intersections"`
	Panels         map[string][]Panel `json:"panels"` // keyed by room id
	Zones          []Zone             `json:"zones"`
	CustomSupports []Support          `json:"custom_supports"`
}

// NewPlan returns an empty plan.
func NewPlan() Plan {
	return Plan{
		Name:   "Untitled",
		Panels: map[string][]Panel{},
	}
}

// WallByID looks a wall up by id.
func (p Plan) WallByID(id string) (Wall, bool) {
	for _, w := range p.Walls {
		if w.ID == id {
			return w, true
		}
	}
	return Wall{}, false
}

// AllPanels returns room panels followed by zone panels.
func (p Plan) AllPanels() []Panel {
	var all []Panel
	for _, r := range p.Rooms {
		all = append(all, p.Panels[r.ID]...)
	}
	for _, z := range p.Zones {
		all = append(all, z.CeilingPanels...)
	}
	return all
}

// Bounds is the extent of walls and rooms, i.e. the project boundary.
func (p Plan) Bounds() (geometry.Rect, bool) {
	var pts []Point
	for _, w := range p.Walls {
		pts = append(pts, w.Start, w.End)
	}
	for _, r := range p.Rooms {
		pts = append(pts, r.Points...)
	}
	for _, z := range p.Zones {
		pts = append(pts, z.OutlinePoints...)
	}
	return geometry.BoundsOf(pts)
}

// Center is the plan centre used to orient double-line walls.
func (p Plan) Center() Point {
	b, ok := p.Bounds()
	if !ok {
		return Point{}
	}
	return b.Center()
}
