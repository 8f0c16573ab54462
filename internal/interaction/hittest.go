package interaction

import (
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// HitKind is what a hit test found.
type HitKind int

const (
	HitNone HitKind = iota
	HitPanel
	HitZone
	HitRoom
)

// Hit is the result of a hit test. For panels RoomID is the owning room or
// zone view id.
type Hit struct {
	Kind   HitKind
	ID     string
	RoomID string
}

// HitTest finds the entity under a screen point. Panels win over zones and
// zones win over rooms.
func (c *Controller) HitTest(at geometry.Point) Hit {
	return HitTest(c.plan, c.view.ScreenToModel(at))
}

// HitTest finds the entity at a model point.
func HitTest(plan model.Plan, pt geometry.Point) Hit {
	views := plan.RoomViews()
	zoned := plan.ZonedRoomIDs()
	for _, v := range views {
		// Rooms inside a zone are drawn without their own panels.
		if !v.IsZone && zoned[v.ID] {
			continue
		}
		for _, p := range v.Panels {
			if p.Contains(pt) {
				return Hit{Kind: HitPanel, ID: p.ID, RoomID: v.ID}
			}
		}
	}
	for _, v := range views {
		if v.IsZone && geometry.PointInPolygon(pt, v.Points) {
			return Hit{Kind: HitZone, ID: v.ID}
		}
	}
	for _, v := range views {
		if !v.IsZone && geometry.PointInPolygon(pt, v.Points) {
			return Hit{Kind: HitRoom, ID: v.ID}
		}
	}
	return Hit{}
}
