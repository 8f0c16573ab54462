package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/render"
)

// svgUnits is the number of SVG user units per pixel. svgo takes integer
// coordinates, so the document is drawn oversampled and scaled back by its
// viewBox.
const svgUnits = 10

// svgSurface writes screen-pixel geometry through svgo.
type svgSurface struct {
	canvas *svg.SVG
}

func u(v float64) int { return int(math.Round(v * svgUnits)) }

func coords(pts []geometry.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = u(p.X), u(p.Y)
	}
	return xs, ys
}

func cssColor(c color.Color) (string, float64) {
	r, g, b, a := rgba(c)
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b), float64(a) / 255
}

// css builds the style attribute for a fill and stroke pair.
func css(fill color.Color, st render.Stroke) string {
	var parts []string
	if fill != nil {
		c, a := cssColor(fill)
		parts = append(parts, "fill:"+c)
		if a < 1 {
			parts = append(parts, fmt.Sprintf("fill-opacity:%.2f", a))
		}
	} else {
		parts = append(parts, "fill:none")
	}
	if st.Visible() {
		c, a := cssColor(st.Color)
		parts = append(parts, "stroke:"+c, fmt.Sprintf("stroke-width:%d", u(st.Width)))
		if a < 1 {
			parts = append(parts, fmt.Sprintf("stroke-opacity:%.2f", a))
		}
		if len(st.Dash) > 0 {
			dash := make([]string, len(st.Dash))
			for i, d := range st.Dash {
				dash[i] = fmt.Sprint(u(d))
			}
			parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
		}
	}
	return strings.Join(parts, ";")
}

func (s *svgSurface) Line(a, b geometry.Point, st render.Stroke) {
	if !st.Visible() {
		return
	}
	s.canvas.Line(u(a.X), u(a.Y), u(b.X), u(b.Y), css(nil, st))
}

func (s *svgSurface) Polyline(pts []geometry.Point, st render.Stroke) {
	if !st.Visible() || len(pts) < 2 {
		return
	}
	xs, ys := coords(pts)
	s.canvas.Polyline(xs, ys, css(nil, st))
}

func (s *svgSurface) Polygon(pts []geometry.Point, fill color.Color, st render.Stroke) {
	if len(pts) < 3 || fill == nil && !st.Visible() {
		return
	}
	xs, ys := coords(pts)
	s.canvas.Polygon(xs, ys, css(fill, st))
}

func (s *svgSurface) Rect(r geometry.Rect, fill color.Color, st render.Stroke) {
	if fill == nil && !st.Visible() {
		return
	}
	s.canvas.Rect(u(r.MinX), u(r.MinY), u(r.Width()), u(r.Height()), css(fill, st))
}

func (s *svgSurface) Circle(c geometry.Point, radius float64, fill color.Color, st render.Stroke) {
	if fill == nil && !st.Visible() {
		return
	}
	s.canvas.Circle(u(c.X), u(c.Y), u(radius), css(fill, st))
}

func (s *svgSurface) Text(text string, at geometry.Point, ts render.TextStyle) {
	anchor := "middle"
	switch ts.Align {
	case render.AlignLeft:
		anchor = "start"
	case render.AlignRight:
		anchor = "end"
	}
	fill := "rgb(0,0,0)"
	if ts.Color != nil {
		fill, _ = cssColor(ts.Color)
	}
	st := fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:%s;dominant-baseline:central;fill:%s",
		u(ts.Size), anchor, fill)
	if ts.Bold {
		st += ";font-weight:bold"
	}
	s.canvas.Text(u(at.X), u(at.Y), text, st)
}

// WriteSVG renders the plan as an SVG document sized like the paper in
// opts, at 96 dpi.
func WriteSVG(w io.Writer, plan model.Plan, opts Options) error {
	pageW, pageH := PaperSize(opts.Paper)
	cw, ch := pageW*pxPerMM, pageH*pxPerMM

	rec, _, _, err := drawPlan(plan, cw, ch, opts, true)
	if err != nil {
		return err
	}

	iw, ih := int(math.Round(cw)), int(math.Round(ch))
	canvas := svg.New(w)
	canvas.Startview(iw, ih, 0, 0, iw*svgUnits, ih*svgUnits)
	canvas.Title(plan.Name)
	canvas.Rect(0, 0, iw*svgUnits, ih*svgUnits, css(render.ColorBackground, render.Stroke{}))
	rec.Replay(&svgSurface{canvas: canvas})
	canvas.End()
	return nil
}

// ExportSVG writes the plan drawing to an SVG file.
func ExportSVG(path string, plan model.Plan, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	if err := WriteSVG(f, plan, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
