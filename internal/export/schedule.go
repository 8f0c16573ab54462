package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CeilPlan/internal/geometry"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// Schedule sheet names. Panels comes first so the workbook can be read back
// by the panel importer.
const (
	SheetPanels   = "Panels"
	SheetRooms    = "Rooms"
	SheetSupports = "Supports"
)

var (
	panelHeader   = []interface{}{"Panel", "Room", "X", "Y", "Width", "Length", "Cut", "Thickness"}
	roomHeader    = []interface{}{"Room", "Name", "Floor m2", "Ceiling m2", "Full", "Cut", "Hangers needed"}
	supportHeader = []interface{}{"Support", "Type", "X", "Y", "Panel", "Shared edge"}
)

// ScheduleSupports lists the supports a schedule reports: automatic hangers
// when nylon hangers are enabled, followed by the custom supports.
func ScheduleSupports(plan model.Plan, settings model.RenderSettings) []model.Support {
	var out []model.Support
	if settings.EnableNylonHangers && settings.SupportType != model.SupportAlu {
		for _, v := range plan.RoomViews() {
			out = append(out, model.AutoSupports(v.Panels)...)
		}
	}
	return append(out, plan.CustomSupports...)
}

// ExportSchedule writes the panel, room and support schedule to an Excel
// workbook.
func ExportSchedule(path string, plan model.Plan, settings model.RenderSettings) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPanels); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetRooms, SheetSupports} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	var panels [][]interface{}
	for _, v := range plan.RoomViews() {
		for _, p := range v.Panels {
			cut := "no"
			if p.IsCut {
				cut = "yes"
			}
			panels = append(panels, []interface{}{p.ID, v.ID, p.StartX, p.StartY, p.Width, p.Length, cut, p.Thickness})
		}
	}
	if err := writeSheet(f, SheetPanels, panelHeader, panels, bold); err != nil {
		return err
	}

	var rooms [][]interface{}
	for _, rs := range model.Summarize(plan).Rooms {
		rooms = append(rooms, []interface{}{
			rs.ID, rs.Name, geometry.Round2(rs.FloorArea / 1e6), geometry.Round2(rs.CeilingArea / 1e6),
			rs.FullPanels, rs.CutPanels, rs.SupportsNeeded,
		})
	}
	if err := writeSheet(f, SheetRooms, roomHeader, rooms, bold); err != nil {
		return err
	}

	var supports [][]interface{}
	for _, sp := range ScheduleSupports(plan, settings) {
		shared := ""
		if sp.IsIntersectionPoint {
			shared = "yes"
		}
		supports = append(supports, []interface{}{sp.ID, string(sp.Type), geometry.Round2(sp.X), geometry.Round2(sp.Y), sp.PanelID, shared})
	}
	if err := writeSheet(f, SheetSupports, supportHeader, supports, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	all := append([][]interface{}{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "H", 14)
}
