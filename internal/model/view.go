package model

import "github.com/piwi3910/CeilPlan/internal/geometry"

// ZoneIDPrefix namespaces zone ids so they cannot collide with room ids in
// selection state.
const ZoneIDPrefix = "zone-"

// RoomView is what the renderer and the hit tester see for both rooms and
// zones.
type RoomView struct {
	ID            string
	Name          string
	Points        []Point
	LabelPosition *Point
	Panels        []Panel
	IsZone        bool
}

// RoomToView projects a room and its panels.
func RoomToView(r Room, panels []Panel) RoomView {
	return RoomView{
		ID:            r.ID,
		Name:          r.Name,
		Points:        r.Points,
		LabelPosition: r.LabelPosition,
		Panels:        panels,
	}
}

// ZoneToRoomView projects a zone as a synthetic room.
func ZoneToRoomView(z Zone) RoomView {
	name := z.Name
	if name == "" {
		name = "Zone " + z.ID
	}
	return RoomView{
		ID:     ZoneIDPrefix + z.ID,
		Name:   name,
		Points: z.OutlinePoints,
		Panels: z.CeilingPanels,
		IsZone: true,
	}
}

// Bounds returns the outline bounding box.
func (v RoomView) Bounds() (geometry.Rect, bool) {
	return geometry.BoundsOf(v.Points)
}

// LabelAnchor is the explicit label position or the outline centroid.
func (v RoomView) LabelAnchor() Point {
	if v.LabelPosition != nil {
		return *v.LabelPosition
	}
	return geometry.PolygonCentroid(v.Points)
}

// RoomViews returns every room followed by every zone.
func (p Plan) RoomViews() []RoomView {
	views := make([]RoomView, 0, len(p.Rooms)+len(p.Zones))
	for _, r := range p.Rooms {
		views = append(views, RoomToView(r, p.Panels[r.ID]))
	}
	for _, z := range p.Zones {
		views = append(views, ZoneToRoomView(z))
	}
	return views
}

// ZonedRoomIDs is the set of rooms drawn as part of a zone.
func (p Plan) ZonedRoomIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, z := range p.Zones {
		for _, id := range z.RoomIDs {
			ids[id] = true
		}
	}
	return ids
}
