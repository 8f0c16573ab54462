package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/CeilPlan/internal/model"
)

// TagInfo holds the data encoded into each panel tag's QR code.
type TagInfo struct {
	PanelID   string  `json:"panel"`
	RoomID    string  `json:"room"`
	RoomName  string  `json:"room_name"`
	Width     float64 `json:"width_mm"`
	Length    float64 `json:"length_mm"`
	Cut       bool    `json:"cut"`
	X         float64 `json:"x_mm"`
	Y         float64 `json:"y_mm"`
	Thickness float64 `json:"thickness_mm,omitempty"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	tagMarginTop  = 12.7 // mm
	tagMarginLeft = 4.8  // mm
	tagWidth      = 66.7 // mm per label
	tagHeight     = 25.4 // mm per label
	tagCols       = 3
	tagRows       = 10
	tagsPerPage   = tagCols * tagRows
	qrSize        = 20.0 // QR code size in mm
	tagPadding    = 2.0  // mm internal padding
)

// CollectTagInfos lists one tag per panel, rooms first and zones after, in
// plan order.
func CollectTagInfos(plan model.Plan) []TagInfo {
	var tags []TagInfo
	for _, v := range plan.RoomViews() {
		for _, p := range v.Panels {
			tags = append(tags, TagInfo{
				PanelID:   p.ID,
				RoomID:    v.ID,
				RoomName:  v.Name,
				Width:     p.Width,
				Length:    p.Length,
				Cut:       p.IsCut,
				X:         p.StartX,
				Y:         p.StartY,
				Thickness: p.Thickness,
			})
		}
	}
	return tags
}

// ExportPanelTags generates a PDF of QR-coded installation tags, one per
// panel. Each tag shows the panel id, its size and room, and a QR code
// encoding the panel metadata as JSON. Tags are laid out on a standard label
// sheet (Avery 5160, 3 columns x 10 rows on US Letter).
func ExportPanelTags(path string, plan model.Plan) error {
	tags := CollectTagInfos(plan)
	if len(tags) == 0 {
		return fmt.Errorf("no panels to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, tag := range tags {
		if i%tagsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % tagsPerPage
		col := pos % tagCols
		row := pos / tagCols

		x := tagMarginLeft + float64(col)*tagWidth
		y := tagMarginTop + float64(row)*tagHeight

		if err := renderTag(pdf, tr, x, y, i, tag); err != nil {
			return fmt.Errorf("failed to render tag for panel %q: %w", tag.PanelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single tag at the given position.
func renderTag(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, idx int, info TagInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, tagWidth, tagHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Panel ids are unique per plan but imported ones may repeat across rooms.
	imgName := fmt.Sprintf("qr_%d_%s", idx, info.PanelID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + tagWidth - qrSize - tagPadding
	qrY := y + (tagHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + tagPadding
	textW := tagWidth - qrSize - 3*tagPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+tagPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, tr(info.PanelID), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+tagPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.Width, info.Length)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+tagPadding+9)
	room := info.RoomName
	if room == "" {
		room = info.RoomID
	}
	where := fmt.Sprintf("%s @ (%.0f, %.0f)", room, info.X, info.Y)
	pdf.CellFormat(textW, 3, truncate(pdf, tr(where), textW), "", 1, "L", false, 0, "")

	if info.Cut {
		pdf.SetXY(textX, y+tagPadding+12.5)
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(211, 47, 47)
		pdf.CellFormat(textW, 3, "CUT PANEL", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits w at the current font.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
