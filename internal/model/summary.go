package model

import "github.com/piwi3910/CeilPlan/internal/geometry"

// RoomSummary holds the panel statistics of one room or zone.
type RoomSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	FloorArea      float64 `json:"floor_area"`   // sq mm, from the outline
	CeilingArea    float64 `json:"ceiling_area"` // sq mm, sum of panel areas
	FullPanels     int     `json:"full_panels"`
	CutPanels      int     `json:"cut_panels"`
	SupportsNeeded int     `json:"supports_needed"` // panels over the support threshold
}

// PlanSummary aggregates the room summaries of a plan.
type PlanSummary struct {
	Rooms          []RoomSummary `json:"rooms"`
	TotalPanels    int           `json:"total_panels"`
	TotalCut       int           `json:"total_cut"`
	CeilingArea    float64       `json:"ceiling_area"`
	ProjectWidth   float64       `json:"project_width"`  // mm
	ProjectHeight  float64       `json:"project_height"` // mm
	SupportsNeeded int           `json:"supports_needed"`
	CustomSupports int           `json:"custom_supports"`
}

// sqmmPerSqm converts square millimetres to square metres.
const sqmmPerSqm = 1e6

// CeilingAreaM2 returns the ceiling area in square metres.
func (s PlanSummary) CeilingAreaM2() float64 {
	return s.CeilingArea / sqmmPerSqm
}

// CutRatio returns the share of cut panels in percent.
func (s PlanSummary) CutRatio() float64 {
	if s.TotalPanels == 0 {
		return 0
	}
	return float64(s.TotalCut) / float64(s.TotalPanels) * 100.0
}

// SummarizeRoom computes the statistics of one room view.
func SummarizeRoom(v RoomView) RoomSummary {
	rs := RoomSummary{
		ID:        v.ID,
		Name:      v.Name,
		FloorArea: geometry.PolygonArea(v.Points),
	}
	for i, needs := range NeedsSupport(v.Panels) {
		p := v.Panels[i]
		rs.CeilingArea += p.Width * p.Length
		if p.IsCut {
			rs.CutPanels++
		} else {
			rs.FullPanels++
		}
		if needs {
			rs.SupportsNeeded++
		}
	}
	return rs
}

// Summarize computes statistics for the whole plan.
func Summarize(p Plan) PlanSummary {
	var s PlanSummary
	for _, v := range p.RoomViews() {
		rs := SummarizeRoom(v)
		s.Rooms = append(s.Rooms, rs)
		s.TotalPanels += rs.FullPanels + rs.CutPanels
		s.TotalCut += rs.CutPanels
		s.CeilingArea += rs.CeilingArea
		s.SupportsNeeded += rs.SupportsNeeded
	}
	if b, ok := p.Bounds(); ok {
		s.ProjectWidth = b.Width()
		s.ProjectHeight = b.Height()
	}
	s.CustomSupports = len(p.CustomSupports)
	return s
}
