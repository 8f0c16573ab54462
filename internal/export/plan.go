// Package export writes plans to files: PDF, SVG and DXF drawings produced
// by the same renderer as the canvas, an Excel schedule and QR-coded
// installation tags for every panel.
package export

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/piwi3910/CeilPlan/internal/applog"
	"github.com/piwi3910/CeilPlan/internal/dimension"
	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/render"
)

// pxPerMM is the nominal drawing resolution (96 dpi). Sheets are laid out in
// pixels at this density so font sizes come out as on screen.
const pxPerMM = 96 / 25.4

// drawingPadding is the fit padding around the plan, in px.
const drawingPadding = 40.0

// Options configures a drawing export.
type Options struct {
	Paper    string // "A3" or "A4", landscape
	Settings model.RenderSettings
	Grid     bool
}

// DefaultOptions returns A3 with the default render settings and no grid.
func DefaultOptions() Options {
	return Options{Paper: "A3", Settings: model.DefaultRenderSettings()}
}

// PaperName normalises a paper size name. Unknown names fall back to A3.
func PaperName(name string) string {
	switch n := strings.ToUpper(strings.TrimSpace(name)); n {
	case "A2", "A4":
		return n
	default:
		return "A3"
	}
}

// PaperSize returns the landscape page size in mm.
func PaperSize(name string) (float64, float64) {
	switch PaperName(name) {
	case "A4":
		return 297, 210
	case "A2":
		return 594, 420
	default:
		return 420, 297
	}
}

// drawPlan fits plan into a w x h px canvas and records one frame. Export
// frames always start with empty placement memory.
func drawPlan(plan model.Plan, w, h float64, opts Options, title bool) (*render.Recorder, *geometry.ViewState, render.Report, error) {
	bounds, ok := plan.Bounds()
	if !ok {
		return nil, nil, render.Report{}, fmt.Errorf("plan %q has nothing to draw", plan.Name)
	}

	view := geometry.NewViewState(w, h)
	view.Fit(bounds, drawingPadding)
	rec, rep := drawView(plan, view, opts, title)
	return rec, view, rep, nil
}

// drawView records one frame of plan at a fixed view.
func drawView(plan model.Plan, view *geometry.ViewState, opts Options, title bool) (*render.Recorder, render.Report) {
	settings := opts.Settings
	settings.ShowGrid = opts.Grid
	r := render.NewRenderer(settings, dimension.NewMemory(), measurer())
	r.Title = title

	rec := render.NewRecorder()
	rep := r.Draw(rec, plan, view, render.State{})
	logReport(plan.Name, rep)
	return rec, rep
}

// measurer prefers real font metrics and falls back to the estimate.
func measurer() render.Measurer {
	m, err := render.NewGoFontMeasurer()
	if err != nil {
		applog.WithComponent("export").Warn("font metrics unavailable, using estimate", slog.Any("err", err))
		return dimension.ApproxMeasurer{}
	}
	return m
}

func logReport(name string, rep render.Report) {
	log := applog.WithComponent("export")
	for _, w := range rep.Warnings {
		log.Warn(w, slog.String("plan", name))
	}
	log.Debug("plan drawn",
		slog.String("plan", name),
		slog.Int("dimensions", rep.Dimensions),
		slog.Int("skipped", rep.Skipped),
		slog.Int("degraded", rep.Degraded))
}

// rgba returns 8-bit non-premultiplied components.
func rgba(c color.Color) (r, g, b, a int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B), int(n.A)
}
