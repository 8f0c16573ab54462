package dimension

import (
	"fmt"
	"math"
	"strconv"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// FormatLength prints a length in mm with at most one decimal.
func FormatLength(v float64) string {
	return strconv.FormatFloat(geometry.RoundTo(v, 1), 'f', -1, 64)
}

// Format builds the label text: "1150", "4 × 1150" or "400 (CUT)".
func Format(length float64, quantity int, cut bool) string {
	s := FormatLength(length)
	if quantity > 1 {
		s = fmt.Sprintf("%d × %s", quantity, s)
	}
	if cut {
		s += " (CUT)"
	}
	return s
}

// FontSize is the label font size in pixels. base is in model units and
// scales with the view, min is the legibility floor. Past the fit-to-window
// scale the floor grows with the square root of the zoom ratio so text size
// changes smoothly.
func FontSize(view *geometry.ViewState, base, min float64) float64 {
	size := math.Max(base*view.Scale, min)
	if r := view.ZoomRatio(); r > 1 {
		size = math.Max(size, min*math.Sqrt(r))
	}
	return size
}
