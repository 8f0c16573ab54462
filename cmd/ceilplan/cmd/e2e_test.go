package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPlanJSON = `{
	"name": "Office",
	"rooms": [{"id": "r1", "room_name": "Corridor",
		"room_points": [{"x":0,"y":0},{"x":5000,"y":0},{"x":5000,"y":1000},{"x":0,"y":1000}]}],
	"walls": [
		{"id": "w1", "start": {"x": 0, "y": 0}, "end": {"x": 5000, "y": 0}, "thickness": 100},
		{"id": "w2", "start": {"x": 0, "y": 0}, "end": {"x": 0, "y": 1000}, "thickness": 100}
	],
	"intersections": [{"wall_a": "w1", "wall_b": "w2", "joining_method": "butt_in", "point": {"x": 0, "y": 0}}],
	"panels": {"r1": [
		{"id": "p1", "start_x": 0, "start_y": 0, "width": 1150, "length": 1000},
		{"id": "p2", "start_x": 1150, "start_y": 0, "width": 1150, "length": 1000},
		{"id": "p3", "start_x": 2300, "start_y": 0, "width": 1150, "length": 1000},
		{"id": "p4", "start_x": 3450, "start_y": 0, "width": 1150, "length": 1000},
		{"id": "p5", "start_x": 4600, "start_y": 0, "width": 400, "length": 1000, "is_cut": true}
	]}
}`

// writePlan writes the test plan and returns its path.
func writePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "office.json")
	if err := os.WriteFile(path, []byte(testPlanJSON), 0644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}
	return path
}

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags to prevent accumulation between tests
	verbose = false
	pdfOut, svgOut, dxfOut, paper, showGrid = "", "", "", "", false
	scheduleOut, tagsOut = "", ""
	outputJSON = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	args = append(args, "--config", filepath.Join(t.TempDir(), "config.json"))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestInfoE2E(t *testing.T) {
	plan := writePlan(t)

	out, err := run(t, "info", plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"Plan: Office", "Corridor", "Total panels: 5 (1 cut", "Extent: 5000 x 1000 mm"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, out)
		}
	}
}

func TestInfoJSONE2E(t *testing.T) {
	plan := writePlan(t)

	out, err := run(t, "info", plan, "--json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var info PlanInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if info.Walls != 2 || info.Intersections != 1 {
		t.Errorf("expected 2 walls and 1 intersection, got %d and %d", info.Walls, info.Intersections)
	}
	if info.Summary.TotalPanels != 5 || info.Summary.TotalCut != 1 {
		t.Errorf("expected 5 panels with 1 cut, got %d with %d", info.Summary.TotalPanels, info.Summary.TotalCut)
	}
}

func TestRenderE2E(t *testing.T) {
	plan := writePlan(t)
	dir := filepath.Dir(plan)

	tests := []struct {
		name  string
		args  []string
		files []string
	}{
		{
			name:  "default pdf",
			args:  []string{"render", plan},
			files: []string{filepath.Join(dir, "office.pdf")},
		},
		{
			name:  "svg and dxf",
			args:  []string{"render", plan, "--svg", filepath.Join(dir, "o.svg"), "--dxf", filepath.Join(dir, "o.dxf")},
			files: []string{filepath.Join(dir, "o.svg"), filepath.Join(dir, "o.dxf")},
		},
		{
			name:  "a4 with grid",
			args:  []string{"render", plan, "--pdf", filepath.Join(dir, "a4.pdf"), "--paper", "a4", "--grid"},
			files: []string{filepath.Join(dir, "a4.pdf")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, f := range tt.files {
				info, err := os.Stat(f)
				if err != nil {
					t.Errorf("expected %s to exist: %v", f, err)
					continue
				}
				if info.Size() == 0 {
					t.Errorf("%s is empty", f)
				}
				if !strings.Contains(out, "Wrote "+f) {
					t.Errorf("output does not mention %s:\n%s", f, out)
				}
			}
		})
	}
}

func TestScheduleAndTagsE2E(t *testing.T) {
	plan := writePlan(t)
	dir := filepath.Dir(plan)

	if _, err := run(t, "schedule", plan); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "office.xlsx")); err != nil {
		t.Errorf("expected default schedule path: %v", err)
	}

	tags := filepath.Join(dir, "labels.pdf")
	if _, err := run(t, "tags", plan, "-o", tags); err != nil {
		t.Fatalf("tags failed: %v", err)
	}
	if _, err := os.Stat(tags); err != nil {
		t.Errorf("expected tags file: %v", err)
	}
}

func TestCommandErrorsE2E(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"info", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "missing argument", args: []string{"render"}},
		{name: "too many arguments", args: []string{"schedule", "a.json", "b.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("Expected error but got none")
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("/tmp/plans/office.json", ".pdf"); got != "/tmp/plans/office.pdf" {
		t.Errorf("unexpected output path %q", got)
	}
	if got := outputPath("plan", "-tags.pdf"); got != "plan-tags.pdf" {
		t.Errorf("unexpected output path %q", got)
	}
}
