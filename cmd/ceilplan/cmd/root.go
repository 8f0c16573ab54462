package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CeilPlan/internal/applog"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/project"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// config is loaded before every command runs.
	config = model.DefaultAppConfig()
)

var rootCmd = &cobra.Command{
	Use:   "ceilplan [plan]",
	Short: "Ceiling panel planner",
	Long: `CeilPlan draws architectural ceiling plans: walls, rooms, ceiling
panel layouts, dimensions and hanger positions.

Run without a subcommand to open the desktop editor.

Examples:
  ceilplan                                   # Start the editor
  ceilplan office.ceilplan                   # Open a project in the editor
  ceilplan render office.json --pdf out.pdf  # Render a plan to PDF
  ceilplan info office.json --json           # Print the panel summary`,
	Version:           project.FormatVersion,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE:              runGUI,
	SilenceUsage:      true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Fix Fyne locale parsing error when LANG=C
	if lang := os.Getenv("LANG"); lang == "" || lang == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "configuration file")
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration %s: %w", configPath, err)
	}
	config = cfg

	level := applog.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	applog.Init(cmd.ErrOrStderr(), level)
	return nil
}

// loadPlan opens a project or plan snapshot and logs its warnings.
func loadPlan(path string) (project.Project, error) {
	p, warnings, err := project.LoadProject(path, config.DefaultRender)
	if err != nil {
		return project.Project{}, err
	}
	log := applog.WithComponent("cli")
	for _, w := range warnings {
		log.Warn("plan warning", slog.String("path", path), slog.String("warning", w))
	}
	return p, nil
}
