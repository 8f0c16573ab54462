package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CeilPlan/internal/export"
)

var (
	scheduleOut string
	tagsOut     string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <plan>",
	Short: "Write the panel schedule workbook",
	Long: `Write an Excel workbook with the panel, room and support schedules
of a plan. The panel sheet can be imported again.

Examples:
  ceilplan schedule office.json
  ceilplan schedule office.ceilplan -o panels.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

var tagsCmd = &cobra.Command{
	Use:   "tags <plan>",
	Short: "Write printable panel tags",
	Long: `Write a PDF of Avery 5160 labels, one per panel, each with a QR code
of the panel id.

Examples:
  ceilplan tags office.json -o office-tags.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(tagsCmd)

	scheduleCmd.Flags().StringVarP(&scheduleOut, "output", "o", "", "output path (default <plan>.xlsx)")
	tagsCmd.Flags().StringVarP(&tagsOut, "output", "o", "", "output path (default <plan>-tags.pdf)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	p, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	path := scheduleOut
	if path == "" {
		path = outputPath(args[0], ".xlsx")
	}
	if err := export.ExportSchedule(path, p.Plan, p.Settings); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	p, err := loadPlan(args[0])
	if err != nil {
		return err
	}
	path := tagsOut
	if path == "" {
		path = outputPath(args[0], "-tags.pdf")
	}
	if err := export.ExportPanelTags(path, p.Plan); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
