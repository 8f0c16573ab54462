package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CeilPlan/internal/model"
)

var outputJSON bool

// PlanInfo is the machine readable summary printed by info --json.
type PlanInfo struct {
	Name          string            `json:"name"`
	Walls         int               `json:"walls"`
	Intersections int               `json:"intersections"`
	Zones         int               `json:"zones"`
	Summary       model.PlanSummary `json:"summary"`
}

var infoCmd = &cobra.Command{
	Use:   "info <plan>",
	Short: "Print the panel summary of a plan",
	Long: `Print room, panel and support counts of a project or plan snapshot.

Supports JSON output for integration with other tools.

Examples:
  ceilplan info office.json
  ceilplan info office.ceilplan --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&outputJSON, "json", false,
		"output as JSON (for programmatic access)")
}

func buildPlanInfo(plan model.Plan) PlanInfo {
	return PlanInfo{
		Name:          plan.Name,
		Walls:         len(plan.Walls),
		Intersections: len(plan.Intersections),
		Zones:         len(plan.Zones),
		Summary:       model.Summarize(plan),
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	info := buildPlanInfo(p.Plan)

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return outputHumanFormat(cmd.OutOrStdout(), info)
}

func outputHumanFormat(w io.Writer, info PlanInfo) error {
	s := info.Summary
	fmt.Fprintf(w, "Plan: %s\n", info.Name)
	fmt.Fprintf(w, "Extent: %.0f x %.0f mm\n", s.ProjectWidth, s.ProjectHeight)
	fmt.Fprintf(w, "Walls: %d, intersections: %d, zones: %d\n\n", info.Walls, info.Intersections, info.Zones)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM\tFLOOR m²\tCEILING m²\tFULL\tCUT\tSUPPORTS")
	for _, r := range s.Rooms {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%d\t%d\t%d\n",
			r.Name, r.FloorArea/1e6, r.CeilingArea/1e6, r.FullPanels, r.CutPanels, r.SupportsNeeded)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal panels: %d (%d cut, %.1f%%)\n", s.TotalPanels, s.TotalCut, s.CutRatio())
	fmt.Fprintf(w, "Ceiling area: %.2f m²\n", s.CeilingAreaM2())
	fmt.Fprintf(w, "Panels needing support: %d\n", s.SupportsNeeded)
	fmt.Fprintf(w, "Custom supports: %d\n", s.CustomSupports)
	return nil
}
