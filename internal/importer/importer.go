// Package importer reads plan data from outside sources: JSON plan
// snapshots, panel schedules in CSV or Excel form, and room outlines from DXF.
// Every wire shape is normalised into the canonical model types here so the
// drawing code only ever sees one shape.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CeilPlan/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Panels   []model.Panel
	Rooms    []model.Room
	Errors   []string
	Warnings []string
}

// PanelsByRoom groups the imported panels by room id, keeping row order.
func (r ImportResult) PanelsByRoom() map[string][]model.Panel {
	out := make(map[string][]model.Panel)
	for _, p := range r.Panels {
		out[p.RoomID] = append(out[p.RoomID], p)
	}
	return out
}

// ApplyTo merges the imported rooms and panels into a copy of plan. Panels
// whose room is not in the plan are still added but reported, since they
// cannot be drawn until a matching room arrives.
func (r ImportResult) ApplyTo(plan model.Plan) (model.Plan, []string) {
	out := plan
	out.Rooms = append(append([]model.Room(nil), plan.Rooms...), r.Rooms...)
	out.Panels = make(map[string][]model.Panel, len(plan.Panels))
	for id, panels := range plan.Panels {
		out.Panels[id] = append([]model.Panel(nil), panels...)
	}

	known := make(map[string]bool, len(out.Rooms))
	for _, room := range out.Rooms {
		known[room.ID] = true
	}

	var warnings []string
	for id, panels := range r.PanelsByRoom() {
		out.Panels[id] = append(out.Panels[id], panels...)
		if !known[id] {
			warnings = append(warnings, fmt.Sprintf("%d panels reference unknown room %q", len(panels), id))
		}
	}
	sort.Strings(warnings)
	return out, warnings
}

// ColumnMapping maps panel column roles to their indices in the data.
type ColumnMapping struct {
	ID        int
	Room      int
	X         int
	Y         int
	Width     int
	Length    int
	Cut       int
	Thickness int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":        {"id", "panel", "panel id", "panel_id", "tag"},
	"room":      {"room", "room id", "room_id", "zone"},
	"x":         {"x", "start_x", "x_start", "start x", "left"},
	"y":         {"y", "start_y", "y_start", "start y", "top"},
	"width":     {"width", "w", "panel width"},
	"length":    {"length", "l", "len", "height", "panel length"},
	"cut":       {"cut", "is_cut", "is cut", "type", "panel type"},
	"thickness": {"thickness", "thk", "t"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive. Without a recognised header the positional layout
// room, x, y, width, length, cut, thickness is assumed and false is returned.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Room: -1, X: -1, Y: -1, Width: -1, Length: -1, Cut: -1, Thickness: -1}
	slots := map[string]*int{
		"id":        &mapping.ID,
		"room":      &mapping.Room,
		"x":         &mapping.X,
		"y":         &mapping.Y,
		"width":     &mapping.Width,
		"length":    &mapping.Length,
		"cut":       &mapping.Cut,
		"thickness": &mapping.Thickness,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: -1, Room: 0, X: 1, Y: 2, Width: 3, Length: 4, Cut: 5, Thickness: 6}, false
	}
	return mapping, true
}

// parseCut converts a cut flag cell. The boolean reports whether the value
// was recognised.
func parseCut(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "cut", "x":
		return true, true
	case "", "no", "n", "false", "0", "full", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts plain numbers and the decimal comma used by European
// spreadsheets.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "mm")
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func requireNumber(row []string, idx int, rowLabel, name string) (float64, string) {
	str := getCell(row, idx)
	if str == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := parseNumber(str)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, str)
	}
	return v, ""
}

// parseRow extracts a Panel from a row using the given column mapping.
// Returns the panel, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel, defaultRoom string) (model.Panel, string, string) {
	x, msg := requireNumber(row, mapping.X, rowLabel, "x")
	if msg != "" {
		return model.Panel{}, msg, ""
	}
	y, msg := requireNumber(row, mapping.Y, rowLabel, "y")
	if msg != "" {
		return model.Panel{}, msg, ""
	}
	width, msg := requireNumber(row, mapping.Width, rowLabel, "width")
	if msg != "" {
		return model.Panel{}, msg, ""
	}
	length, msg := requireNumber(row, mapping.Length, rowLabel, "length")
	if msg != "" {
		return model.Panel{}, msg, ""
	}
	if width <= 0 || length <= 0 {
		return model.Panel{}, fmt.Sprintf("%s: Width and length must be positive", rowLabel), ""
	}

	room := getCell(row, mapping.Room)
	if room == "" {
		room = defaultRoom
	}

	var warning string
	cutStr := getCell(row, mapping.Cut)
	cut, ok := parseCut(cutStr)
	if !ok {
		warning = fmt.Sprintf("%s: Unknown cut flag '%s', treating as full panel", rowLabel, cutStr)
	}

	p := model.NewPanel(room, x, y, width, length, cut)
	if id := getCell(row, mapping.ID); id != "" {
		p.ID = id
	}
	if t := getCell(row, mapping.Thickness); t != "" {
		if v, err := parseNumber(t); err != nil || v < 0 {
			if warning == "" {
				warning = fmt.Sprintf("%s: Invalid thickness '%s', ignored", rowLabel, t)
			}
		} else {
			p.Thickness = v
		}
	}
	return p, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportPanelsCSV imports panels from a CSV file. Rows without a room column
// are assigned to defaultRoom.
func ImportPanelsCSV(path, defaultRoom string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", defaultRoom, result.Warnings)
}

// ImportPanelsCSVFromReader imports panels from a CSV reader with a known
// delimiter.
func ImportPanelsCSVFromReader(reader io.Reader, delimiter rune, defaultRoom string) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", defaultRoom, nil)
}

// ImportPanelsExcel imports panels from the first sheet of an Excel file.
func ImportPanelsExcel(path, defaultRoom string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", defaultRoom, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix, defaultRoom string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 5 {
		if _, err := parseNumber(rows[0][1]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	if defaultRoom == "" && mapping.Room == -1 {
		defaultRoom = "room-" + uuid.New().String()[:8]
		result.Warnings = append(result.Warnings, fmt.Sprintf("No room column, panels assigned to %s", defaultRoom))
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		panel, errMsg, warning := parseRow(row, mapping, rowLabel, defaultRoom)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Panels = append(result.Panels, panel)
	}

	return result
}
