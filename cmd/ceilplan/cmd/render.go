package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CeilPlan/internal/export"
)

var (
	pdfOut   string
	svgOut   string
	dxfOut   string
	paper    string
	showGrid bool
)

var renderCmd = &cobra.Command{
	Use:   "render <plan>",
	Short: "Render a plan to PDF, SVG or DXF",
	Long: `Render a project or plan snapshot to drawing files. Without an output
flag a PDF is written next to the input.

Examples:
  ceilplan render office.json
  ceilplan render office.ceilplan --svg office.svg --dxf office.dxf
  ceilplan render office.json --pdf office-a4.pdf --paper A4 --grid`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&pdfOut, "pdf", "", "write a PDF drawing to this path")
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "write an SVG drawing to this path")
	renderCmd.Flags().StringVar(&dxfOut, "dxf", "", "write a DXF drawing to this path")
	renderCmd.Flags().StringVar(&paper, "paper", "", "paper size for PDF and SVG: A2, A3 or A4 (default from config)")
	renderCmd.Flags().BoolVar(&showGrid, "grid", false, "draw the reference grid")
}

// outputPath derives an output file name from the input path.
func outputPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := loadPlan(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Settings = p.Settings
	opts.Grid = showGrid
	opts.Paper = export.PaperName(config.DefaultPaperSize)
	if paper != "" {
		opts.Paper = export.PaperName(paper)
	}

	if pdfOut == "" && svgOut == "" && dxfOut == "" {
		pdfOut = outputPath(args[0], ".pdf")
	}

	out := cmd.OutOrStdout()
	if pdfOut != "" {
		if err := export.ExportPDF(pdfOut, p.Plan, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", pdfOut)
	}
	if svgOut != "" {
		if err := export.ExportSVG(svgOut, p.Plan, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", svgOut)
	}
	if dxfOut != "" {
		if err := export.ExportDXF(dxfOut, p.Plan, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", dxfOut)
	}
	return nil
}
