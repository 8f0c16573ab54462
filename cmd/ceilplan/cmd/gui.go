package cmd

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/CeilPlan/internal/applog"
	"github.com/piwi3910/CeilPlan/internal/ui"
)

var guiCmd = &cobra.Command{
	Use:   "gui [plan]",
	Short: "Start the desktop editor",
	Long: `Start the desktop plan editor, optionally opening a project or plan
snapshot.

Examples:
  ceilplan gui
  ceilplan gui office.ceilplan -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	applog.WithComponent("cli").Debug("starting editor")

	application := app.NewWithID("com.piwi3910.ceilplan")
	window := application.NewWindow("CeilPlan - Ceiling Panel Planner")

	appUI := ui.NewApp(window, configPath)
	application.Settings().SetTheme(appUI.Theme())
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	if len(args) == 1 {
		appUI.Open(args[0])
	}

	window.ShowAndRun()
	return nil
}
