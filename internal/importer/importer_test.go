package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CeilPlan/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Room,X,Y,Width,Length\nr1,0,0,1150,3000\nr1,1150,0,1150,3000\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Room;X;Y;Width;Length\nr1;0;0;1150;3000\nr1;1150;0;1150;3000\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Room\tX\tY\tWidth\tLength\nr1\t0\t0\t1150\t3000\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Room", "X", "Y", "Width", "Length", "Cut", "Thickness"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{ID: -1, Room: 0, X: 1, Y: 2, Width: 3, Length: 4, Cut: 5, Thickness: 6}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Panel ID", "start_x", "START_Y", "W", "Len", "is_cut", "zone"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.ID != 0 || mapping.X != 1 || mapping.Y != 2 || mapping.Width != 3 ||
		mapping.Length != 4 || mapping.Cut != 5 || mapping.Room != 6 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"r1", "0", "0", "1150", "3000"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Room != 0 || mapping.Width != 3 || mapping.Length != 4 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportPanelsCSVFromReader_WithHeaders(t *testing.T) {
	input := "Room,X,Y,Width,Length,Cut\nr1,0,0,1150,3000,no\nr1,1150,0,400,3000,yes\nr2,0,5000,1150,2000,\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ',', "")

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(result.Panels))
	}
	p := result.Panels[1]
	if p.RoomID != "r1" || p.StartX != 1150 || p.Width != 400 || !p.IsCut {
		t.Errorf("unexpected panel %+v", p)
	}
	if p.EndX != 1550 || p.EndY != 3000 {
		t.Errorf("expected end (1550, 3000), got (%v, %v)", p.EndX, p.EndY)
	}

	byRoom := result.PanelsByRoom()
	if len(byRoom["r1"]) != 2 || len(byRoom["r2"]) != 1 {
		t.Errorf("unexpected grouping: %d/%d", len(byRoom["r1"]), len(byRoom["r2"]))
	}
}

func TestImportPanelsCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "r1,0,0,1150,3000\nr1,1150,0,1150,3000,cut\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ',', "")

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(result.Panels))
	}
	if !result.Panels[1].IsCut {
		t.Error("expected second panel to be cut")
	}
}

func TestImportPanelsCSVFromReader_DefaultRoom(t *testing.T) {
	input := "X;Y;Width;Length\n0;0;1150;3000\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ';', "corridor")

	if len(result.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d (errors %v)", len(result.Panels), result.Errors)
	}
	if result.Panels[0].RoomID != "corridor" {
		t.Errorf("expected default room, got %q", result.Panels[0].RoomID)
	}
}

func TestImportPanelsCSVFromReader_GeneratedRoom(t *testing.T) {
	input := "X,Y,Width,Length\n0,0,1150,3000\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ',', "")

	if len(result.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(result.Panels))
	}
	if !strings.HasPrefix(result.Panels[0].RoomID, "room-") {
		t.Errorf("expected generated room id, got %q", result.Panels[0].RoomID)
	}
}

func TestImportPanelsCSVFromReader_DecimalComma(t *testing.T) {
	input := "Room;X;Y;Width;Length\nr1;0;0;1150,5;3000mm\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ';', "")

	if len(result.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d (errors %v)", len(result.Panels), result.Errors)
	}
	if result.Panels[0].Width != 1150.5 || result.Panels[0].Length != 3000 {
		t.Errorf("unexpected size %v x %v", result.Panels[0].Width, result.Panels[0].Length)
	}
}

func TestImportPanelsCSVFromReader_InvalidRows(t *testing.T) {
	input := "Room,X,Y,Width,Length\nr1,0,0,abc,3000\nr1,0,0,-5,3000\nr1,0,0,1150,3000\nr1,0,,1150,3000\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ',', "")

	if len(result.Panels) != 1 {
		t.Errorf("expected 1 valid panel, got %d", len(result.Panels))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportPanelsCSVFromReader_UnknownCutFlag(t *testing.T) {
	input := "Room,X,Y,Width,Length,Cut\nr1,0,0,1150,3000,maybe\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ',', "")

	if len(result.Panels) != 1 || result.Panels[0].IsCut {
		t.Fatalf("expected one full panel, got %+v", result.Panels)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown cut flag") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cut flag warning, got %v", result.Warnings)
	}
}

func TestImportPanelsCSVFromReader_MissingRequiredColumn(t *testing.T) {
	input := "Room,X,Y,Width\nr1,0,0,1150\n"
	result := ImportPanelsCSVFromReader(strings.NewReader(input), ',', "")

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing Length column")
	}
	if !strings.Contains(result.Errors[0], "Length") {
		t.Errorf("expected error to mention Length, got %q", result.Errors[0])
	}
}

func TestImportPanelsCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportPanelsCSVFromReader(strings.NewReader(""), ',', "")
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportPanelsCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panels.csv")
	content := "Panel;Room;X;Y;Width;Length;Thickness\nA1;r1;0;0;1150;3000;150\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportPanelsCSV(path, "")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 1 || result.Panels[0].ID != "A1" || result.Panels[0].Thickness != 150 {
		t.Errorf("unexpected panels %+v", result.Panels)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportPanelsCSV_FileNotFound(t *testing.T) {
	result := ImportPanelsCSV("/nonexistent/panels.csv", "")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panels.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportPanelsExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Room", "X", "Y", "Width", "Length", "Cut"},
		{"r1", 0, 0, 1150, 3000, "no"},
		{"r1", 1150, 0, 400, 3000, "yes"},
	})

	result := ImportPanelsExcel(path, "")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(result.Panels))
	}
	if result.Panels[1].Width != 400 || !result.Panels[1].IsCut {
		t.Errorf("unexpected cut panel %+v", result.Panels[1])
	}
}

func TestImportPanelsExcel_FileNotFound(t *testing.T) {
	result := ImportPanelsExcel("/nonexistent/panels.xlsx", "")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestParseCut(t *testing.T) {
	tests := []struct {
		input string
		want  bool
		ok    bool
	}{
		{"yes", true, true},
		{"CUT", true, true},
		{"1", true, true},
		{"", false, true},
		{"full", false, true},
		{"no", false, true},
		{"perhaps", false, false},
	}
	for _, tt := range tests {
		got, ok := parseCut(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseCut(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestImportResultApplyTo(t *testing.T) {
	plan := model.NewPlan()
	plan.Rooms = []model.Room{{ID: "r1", Name: "Hall"}}
	plan.Panels["r1"] = []model.Panel{model.NewPanel("r1", 0, 0, 1000, 1000, false)}

	res := ImportResult{
		Rooms: []model.Room{{ID: "r2", Name: "Office"}},
		Panels: []model.Panel{
			model.NewPanel("r1", 1000, 0, 1000, 1000, false),
			model.NewPanel("r2", 0, 0, 500, 1000, true),
			model.NewPanel("ghost", 0, 0, 500, 500, false),
		},
	}

	merged, warnings := res.ApplyTo(plan)
	if len(merged.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(merged.Rooms))
	}
	if len(merged.Panels["r1"]) != 2 {
		t.Errorf("expected 2 panels in r1, got %d", len(merged.Panels["r1"]))
	}
	if len(merged.Panels["r2"]) != 1 {
		t.Errorf("expected 1 panel in r2, got %d", len(merged.Panels["r2"]))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "ghost") {
		t.Errorf("expected one warning about ghost room, got %v", warnings)
	}
	if len(plan.Panels["r1"]) != 1 || len(plan.Rooms) != 1 {
		t.Error("ApplyTo must not modify the input plan")
	}
}
