package export

import (
	"fmt"
	"image/color"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/render"
)

// Page layout constants in mm.
const (
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	footerHeight = 8.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ptPerMM converts mm to PDF points.
const ptPerMM = 72 / 25.4

// pdfSurface draws screen-pixel geometry onto an fpdf page. Pixels map to mm
// through k and are shifted by the drawing origin.
type pdfSurface struct {
	pdf    *fpdf.Fpdf
	k      float64
	ox, oy float64
	tr     func(string) string
}

func newPDFSurface(pdf *fpdf.Fpdf, k, ox, oy float64) *pdfSurface {
	return &pdfSurface{pdf: pdf, k: k, ox: ox, oy: oy, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (s *pdfSurface) pt(p geometry.Point) (float64, float64) {
	return s.ox + p.X*s.k, s.oy + p.Y*s.k
}

func (s *pdfSurface) stroke(st render.Stroke) bool {
	if !st.Visible() {
		return false
	}
	r, g, b, _ := rgba(st.Color)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(st.Width * s.k)
	if len(st.Dash) > 0 {
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = d * s.k
		}
		s.pdf.SetDashPattern(dash, 0)
	} else {
		s.pdf.SetDashPattern([]float64{}, 0)
	}
	return true
}

// fill sets the fill colour. Translucent fills use the alpha channel of the
// page and must be closed with endFill.
func (s *pdfSurface) fill(c color.Color) bool {
	if c == nil {
		return false
	}
	r, g, b, a := rgba(c)
	if a == 0 {
		return false
	}
	s.pdf.SetFillColor(r, g, b)
	if a < 255 {
		s.pdf.SetAlpha(float64(a)/255, "Normal")
	}
	return true
}

func (s *pdfSurface) endFill() { s.pdf.SetAlpha(1, "Normal") }

func style(filled, stroked bool) string {
	switch {
	case filled && stroked:
		return "FD"
	case filled:
		return "F"
	default:
		return "D"
	}
}

func (s *pdfSurface) Line(a, b geometry.Point, st render.Stroke) {
	if !s.stroke(st) {
		return
	}
	x1, y1 := s.pt(a)
	x2, y2 := s.pt(b)
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *pdfSurface) Polyline(pts []geometry.Point, st render.Stroke) {
	for i := 0; i+1 < len(pts); i++ {
		s.Line(pts[i], pts[i+1], st)
	}
}

func (s *pdfSurface) Polygon(pts []geometry.Point, fill color.Color, st render.Stroke) {
	if len(pts) < 3 {
		return
	}
	filled := s.fill(fill)
	stroked := s.stroke(st)
	if !filled && !stroked {
		return
	}
	out := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = s.pt(p)
	}
	s.pdf.Polygon(out, style(filled, stroked))
	if filled {
		s.endFill()
	}
}

func (s *pdfSurface) Rect(r geometry.Rect, fill color.Color, st render.Stroke) {
	filled := s.fill(fill)
	stroked := s.stroke(st)
	if !filled && !stroked {
		return
	}
	x, y := s.pt(r.Min())
	s.pdf.Rect(x, y, r.Width()*s.k, r.Height()*s.k, style(filled, stroked))
	if filled {
		s.endFill()
	}
}

func (s *pdfSurface) Circle(c geometry.Point, radius float64, fill color.Color, st render.Stroke) {
	filled := s.fill(fill)
	stroked := s.stroke(st)
	if !filled && !stroked {
		return
	}
	x, y := s.pt(c)
	s.pdf.Circle(x, y, radius*s.k, style(filled, stroked))
	if filled {
		s.endFill()
	}
}

func (s *pdfSurface) Text(text string, at geometry.Point, ts render.TextStyle) {
	styleStr := ""
	if ts.Bold {
		styleStr = "B"
	}
	sizeMM := ts.Size * s.k
	s.pdf.SetFont("Helvetica", styleStr, sizeMM*ptPerMM)
	if ts.Color != nil {
		r, g, b, _ := rgba(ts.Color)
		s.pdf.SetTextColor(r, g, b)
	}

	text = s.tr(text)
	w := s.pdf.GetStringWidth(text)
	x, y := s.pt(at)
	switch ts.Align {
	case render.AlignCenter:
		x -= w / 2
	case render.AlignRight:
		x -= w
	}
	s.pdf.SetXY(x, y-sizeMM/2)
	s.pdf.CellFormat(w, sizeMM, text, "", 0, "L", false, 0, "")
	s.pdf.SetTextColor(0, 0, 0)
}

// ExportPDF writes the plan drawing on one landscape page followed by a
// room schedule page.
func ExportPDF(path string, plan model.Plan, opts Options) error {
	pageW, pageH := PaperSize(opts.Paper)
	drawW := pageW - marginLeft - marginRight
	drawH := pageH - drawAreaTop - marginBottom - footerHeight

	rec, view, _, err := drawPlan(plan, drawW*pxPerMM, drawH*pxPerMM, opts, false)
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", PaperName(opts.Paper), "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(plan.Name, true)
	pdf.SetCreator("CeilPlan", true)

	pdf.AddPage()
	sum := model.Summarize(plan)
	renderHeader(pdf, plan, sum, pageW, render.ScaleText(view.Scale))

	// drawing frame
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, drawAreaTop, drawW, drawH, "D")
	rec.Replay(newPDFSurface(pdf, 1/pxPerMM, marginLeft, drawAreaTop))
	pdf.SetDashPattern([]float64{}, 0)
	renderFooter(pdf, pageW, pageH)

	pdf.AddPage()
	renderSchedulePage(pdf, plan, sum, opts.Settings, pageW, pageH)
	renderFooter(pdf, pageW, pageH)

	return pdf.OutputFileAndClose(path)
}

// renderHeader draws the title and the statistics line above the drawing.
func renderHeader(pdf *fpdf.Fpdf, plan model.Plan, sum model.PlanSummary, pageW float64, scale string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	name := plan.Name
	if name == "" {
		name = "Untitled"
	}
	title := fmt.Sprintf("%s (%.0f x %.0f mm)", name, sum.ProjectWidth, sum.ProjectHeight)
	pdf.CellFormat(pageW-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("%s | Rooms: %d | Panels: %d (%d cut) | Ceiling area: %.2f m2",
		scale, len(sum.Rooms), sum.TotalPanels, sum.TotalCut, sum.CeilingAreaM2())
	pdf.CellFormat(pageW-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

func renderFooter(pdf *fpdf.Fpdf, pageW, pageH float64) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageH-marginBottom)
	pdf.CellFormat(pageW-marginLeft-marginRight, 4, "Generated by CeilPlan - Ceiling Panel Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderSchedulePage draws the per-room statistics table.
func renderSchedulePage(pdf *fpdf.Fpdf, plan model.Plan, sum model.PlanSummary, settings model.RenderSettings, pageW, pageH float64) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageW-marginLeft-marginRight, 10, "Room Schedule", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageW-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{60, 35, 35, 25, 25, 30}
	headers := []string{"Room", "Floor m2", "Ceiling m2", "Full", "Cut", "Hangers"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for i, rs := range sum.Rooms {
		if y > pageH-marginBottom-footerHeight-6 {
			break
		}
		name := rs.Name
		if name == "" {
			name = rs.ID
		}
		rowData := []string{
			tr(name),
			fmt.Sprintf("%.2f", rs.FloorArea/1e6),
			fmt.Sprintf("%.2f", rs.CeilingArea/1e6),
			fmt.Sprintf("%d", rs.FullPanels),
			fmt.Sprintf("%d", rs.CutPanels),
			fmt.Sprintf("%d", rs.SupportsNeeded),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Totals", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Panels", fmt.Sprintf("%d (%d cut, %.1f%%)", sum.TotalPanels, sum.TotalCut, sum.CutRatio())},
		{"Ceiling area", fmt.Sprintf("%.2f m2", sum.CeilingAreaM2())},
		{"Ceiling thickness", fmt.Sprintf("%.0f mm", settings.CeilingThickness)},
		{"Panels over 6 m", fmt.Sprintf("%d", sum.SupportsNeeded)},
		{"Custom supports", fmt.Sprintf("%d", sum.CustomSupports)},
		{"Walls", fmt.Sprintf("%d", len(plan.Walls))},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}
}
