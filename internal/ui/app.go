package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/CeilPlan/internal/applog"
	"github.com/piwi3910/CeilPlan/internal/interaction"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/project"
	"github.com/piwi3910/CeilPlan/internal/render"
	"github.com/piwi3910/CeilPlan/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window     fyne.Window
	config     model.AppConfig
	configPath string
	project    project.Project
	path       string // project file, empty until saved
	tabs       *container.AppTabs
	log        *slog.Logger

	canvas     *widgets.PlanCanvas
	status     *widget.Label
	selection  *widget.Label
	selectBtn  *ttwidget.Button
	supportBtn *ttwidget.Button
	settingsUI *settingsPanel
}

// NewApp creates the application state. The configuration is loaded from
// configPath; a missing file gives the defaults.
func NewApp(window fyne.Window, configPath string) *App {
	a := &App{
		window:     window,
		configPath: configPath,
		log:        applog.WithComponent("ui"),
	}
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		a.log.Warn("cannot load configuration, using defaults", slog.String("path", configPath), slog.Any("error", err))
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg
	a.project = project.New(model.NewPlan(), cfg.DefaultRender)

	ctrl := interaction.NewController(0, 0, a.project.Settings)
	a.canvas = widgets.NewPlanCanvas(ctrl, a.project.Settings)
	a.status = widget.NewLabel("")
	a.selection = widget.NewLabel("Nothing selected")
	a.selection.Wrapping = fyne.TextWrapWord

	ctrl.OnRoomSelect = a.onRoomSelect
	ctrl.OnRoomDeselect = func() { a.selection.SetText("Nothing selected") }
	ctrl.OnPanelSelect = a.onPanelSelect
	ctrl.OnSupportsChange = func(s []model.Support) {
		a.project.Plan.CustomSupports = s
		a.setStatus(fmt.Sprintf("%d custom supports", len(s)))
	}
	a.canvas.OnReport = a.onReport
	return a
}

// Theme returns the theme named in the configuration.
func (a *App) Theme() fyne.Theme { return NewCeilPlanTheme(a.config.Theme) }

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", a.newProject),
		fyne.NewMenuItem("Open Project...", a.openProject),
		fyne.NewMenuItem("Save Project", a.saveProject),
		fyne.NewMenuItem("Save Project As...", a.saveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Plan (JSON)...", a.importPlan),
		fyne.NewMenuItem("Import Panels from CSV...", func() { a.importPanels(false) }),
		fyne.NewMenuItem("Import Panels from Excel...", func() { a.importPanels(true) }),
		fyne.NewMenuItem("Import Rooms from DXF...", a.importRooms),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { a.exportDrawing(exportPDF) }),
		fyne.NewMenuItem("Export SVG...", func() { a.exportDrawing(exportSVG) }),
		fyne.NewMenuItem("Export DXF...", func() { a.exportDrawing(exportDXF) }),
		fyne.NewMenuItem("Export Panel Schedule...", a.exportSchedule),
		fyne.NewMenuItem("Export Panel Tags...", a.exportTags),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup All Data...", a.backupData),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)

	ctrl := a.canvas.Controller()
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", ctrl.ZoomIn),
		fyne.NewMenuItem("Zoom Out", ctrl.ZoomOut),
		fyne.NewMenuItem("Reset Zoom", ctrl.ResetZoom),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Grid", a.toggleGrid),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Select", func() { a.setTool(interaction.ToolSelect) }),
		fyne.NewMenuItem("Draw Support Line", func() { a.setTool(interaction.ToolSupport) }),
		fyne.NewMenuItem("Clear Custom Supports", ctrl.ClearSupports),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CeilPlan",
		"CeilPlan - Ceiling Panel Planner\n\n"+
			"Draws architectural ceiling plans with walls, rooms,\n"+
			"panel layouts, dimensions and hanger positions,\n"+
			"and exports them for the site crew.\n\n"+
			"Version "+project.FormatVersion,
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	planTab := container.NewTabItem("Plan", a.buildPlanPanel())
	a.settingsUI = newSettingsPanel(a.project.Settings, a.applySettings)
	settingsTab := container.NewTabItem("Settings", a.settingsUI.build())

	a.tabs = container.NewAppTabs(planTab, settingsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.updateTitle()

	return fynetooltip.AddWindowToolTipLayer(a.tabs, a.window.Canvas())
}

// ─── Plan Panel ────────────────────────────────────────────

func (a *App) buildPlanPanel() fyne.CanvasObject {
	ctrl := a.canvas.Controller()
	a.selectBtn = newIconButtonWithTooltip(theme.NavigateBackIcon(), "Select and pan", func() {
		a.setTool(interaction.ToolSelect)
	})
	a.supportBtn = newIconButtonWithTooltip(theme.ContentAddIcon(), "Draw aluminium support line", func() {
		a.setTool(interaction.ToolSupport)
	})
	a.highlightTool(interaction.ToolSelect)

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open project", a.openProject),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save project", a.saveProject),
		widget.NewSeparator(),
		a.selectBtn,
		a.supportBtn,
		newIconButtonWithTooltip(theme.DeleteIcon(), "Clear custom supports", ctrl.ClearSupports),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in", ctrl.ZoomIn),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out", ctrl.ZoomOut),
		newIconButtonWithTooltip(theme.ZoomFitIcon(), "Reset zoom", ctrl.ResetZoom),
		newIconButtonWithTooltip(theme.GridIcon(), "Toggle grid", a.toggleGrid),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF", func() { a.exportDrawing(exportPDF) }),
		layout.NewSpacer(),
		a.status,
	)

	side := container.NewVBox(
		widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.selection,
	)
	sideScroll := container.NewVScroll(side)
	sideScroll.SetMinSize(fyne.NewSize(220, 0))

	return container.NewBorder(toolbar, nil, nil, sideScroll, a.canvas)
}

func (a *App) setTool(t interaction.Tool) {
	a.canvas.Controller().SetTool(t)
	a.highlightTool(t)
	a.setStatus("Tool: " + t.String())
}

func (a *App) highlightTool(t interaction.Tool) {
	if a.selectBtn == nil {
		return
	}
	a.selectBtn.Importance = widget.MediumImportance
	a.supportBtn.Importance = widget.MediumImportance
	if t == interaction.ToolSupport {
		a.supportBtn.Importance = widget.HighImportance
	} else {
		a.selectBtn.Importance = widget.HighImportance
	}
	a.selectBtn.Refresh()
	a.supportBtn.Refresh()
}

func (a *App) toggleGrid() {
	s := a.canvas.Settings()
	s.ShowGrid = !s.ShowGrid
	a.applySettings(s)
}

func (a *App) applySettings(s model.RenderSettings) {
	a.project.Settings = s.Validate()
	a.canvas.SetSettings(a.project.Settings)
	if a.settingsUI != nil {
		a.settingsUI.set(a.project.Settings)
	}
}

// setPlan shows a new plan and refits the view.
func (a *App) setPlan(plan model.Plan) {
	a.project.Plan = plan
	a.canvas.Controller().SetPlan(plan)
	a.selection.SetText("Nothing selected")
	a.updateTitle()
}

// currentPlan is the plan with the supports drawn in this session.
func (a *App) currentPlan() model.Plan {
	return a.canvas.Controller().Plan()
}

func (a *App) updateTitle() {
	name := a.project.Plan.Name
	if name == "" {
		name = "Untitled"
	}
	a.window.SetTitle(name + " - CeilPlan")
}

func (a *App) setStatus(msg string) {
	a.status.SetText(msg)
}

func (a *App) onReport(rep render.Report) {
	if rep.Skipped > 0 {
		a.status.SetText(fmt.Sprintf("%d dimensions hidden at this zoom", rep.Skipped))
	}
}

// ─── Selection ─────────────────────────────────────────────

func (a *App) onRoomSelect(id string) {
	plan := a.currentPlan()
	for _, v := range plan.RoomViews() {
		if v.ID != id {
			continue
		}
		s := model.SummarizeRoom(v)
		kind := "Room"
		if v.IsZone {
			kind = "Zone"
		}
		a.selection.SetText(fmt.Sprintf("%s: %s\nFloor area: %.2f m²\nFull panels: %d\nCut panels: %d\nPanels needing support: %d",
			kind, v.Name, s.FloorArea/1e6, s.FullPanels, s.CutPanels, s.SupportsNeeded))
		return
	}
}

func (a *App) onPanelSelect(id string) {
	if id == "" {
		return
	}
	for _, p := range a.currentPlan().AllPanels() {
		if p.ID != id {
			continue
		}
		state := "Full"
		if p.IsCut {
			state = "Cut"
		}
		a.selection.SetText(fmt.Sprintf("Panel %s (%s)\nRoom: %s\nOrigin: %.0f, %.0f\nSize: %.0f x %.0f mm\nThickness: %.0f mm",
			p.ID, state, p.RoomID, p.StartX, p.StartY, p.Width, p.Length, p.Thickness))
		return
	}
}

// showWarnings logs import or load warnings and tells the user how many
// there were.
func (a *App) showWarnings(title string, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	for _, w := range warnings {
		a.log.Warn(title, slog.String("warning", w))
	}
	dialog.ShowInformation(title, strings.Join(warnings, "\n"), a.window)
}

// saveConfig persists the configuration; failures are logged only.
func (a *App) saveConfig() {
	if a.configPath == "" {
		return
	}
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		a.log.Warn("cannot save configuration", slog.Any("error", err))
	}
}
