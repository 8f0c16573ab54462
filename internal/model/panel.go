package model

import "github.com/piwi3910/CeilPlan/internal/geometry"

// SupportThreshold is the span (mm) above which a panel needs a hanger.
const SupportThreshold = 6000.0

// The two orientation helpers below intentionally disagree: dimension
// grouping and support checks classify panels differently, and the drawing
// output depends on both conventions.

// IsDimensionallyHorizontal is the orientation used to pick a panel's
// grouping dimension.
func IsDimensionallyHorizontal(p Panel) bool {
	return p.Width < p.Length
}

// IsSupportCriticalHorizontal is the orientation used to pick the long axis
// for the support check.
func IsSupportCriticalHorizontal(p Panel) bool {
	return p.Width > p.Length
}

// GroupingDimension is the size a full panel is bucketed by, rounded to two
// decimals so float jitter does not split groups.
func GroupingDimension(p Panel) float64 {
	if IsDimensionallyHorizontal(p) {
		return geometry.Round2(p.Length)
	}
	return geometry.Round2(p.Width)
}

// CutDimension is the size printed for a cut panel: its trimmed width.
func CutDimension(p Panel) float64 {
	return geometry.Round2(p.Width)
}

// SupportSpan returns the long-axis length of p under the orientation of the
// room's first panel.
func SupportSpan(p Panel, first Panel) float64 {
	if IsSupportCriticalHorizontal(first) {
		return p.Width
	}
	return p.Length
}

// NeedsSupport reports which panels of a room exceed the support threshold.
// The long axis is decided once, from the room's first panel.
func NeedsSupport(panels []Panel) []bool {
	out := make([]bool, len(panels))
	if len(panels) == 0 {
		return out
	}
	first := panels[0]
	for i, p := range panels {
		out[i] = SupportSpan(p, first) > SupportThreshold
	}
	return out
}

// PanelGroup is a bucket of full panels sharing one grouping dimension.
type PanelGroup struct {
	Size   float64
	Panels []Panel
}

// GroupFullPanels buckets the non-cut panels by GroupingDimension. Groups are
// returned in first-seen order.
func GroupFullPanels(panels []Panel) []PanelGroup {
	var order []float64
	buckets := make(map[float64][]Panel)
	for _, p := range panels {
		if p.IsCut {
			continue
		}
		k := GroupingDimension(p)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], p)
	}
	groups := make([]PanelGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, PanelGroup{Size: k, Panels: buckets[k]})
	}
	return groups
}

// CutPanels returns the cut panels in input order.
func CutPanels(panels []Panel) []Panel {
	var cut []Panel
	for _, p := range panels {
		if p.IsCut {
			cut = append(cut, p)
		}
	}
	return cut
}
