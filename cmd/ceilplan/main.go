// CeilPlan - Ceiling Panel Planner
//
// Draws architectural ceiling plans and exports them as PDF, SVG and DXF
// drawings, panel schedules and panel tags. Without a subcommand the
// desktop editor is started.
//
// Build:
//   go build -o ceilplan ./cmd/ceilplan
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import "github.com/piwi3910/CeilPlan/cmd/ceilplan/cmd"

func main() {
	cmd.Execute()
}
