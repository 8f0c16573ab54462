package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/CeilPlan/internal/export"
	"github.com/piwi3910/CeilPlan/internal/importer"
	"github.com/piwi3910/CeilPlan/internal/model"
	"github.com/piwi3910/CeilPlan/internal/project"
)

type drawingFormat int

const (
	exportPDF drawingFormat = iota
	exportSVG
	exportDXF
)

func (f drawingFormat) ext() string {
	switch f {
	case exportSVG:
		return ".svg"
	case exportDXF:
		return ".dxf"
	default:
		return ".pdf"
	}
}

// ─── Project Files ─────────────────────────────────────────

func (a *App) newProject() {
	a.project = project.New(model.NewPlan(), a.config.DefaultRender)
	a.path = ""
	a.applySettings(a.project.Settings)
	a.setPlan(a.project.Plan)
}

func (a *App) openProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.loadProjectFile(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.Extension, ".json"}))
	d.Show()
}

// loadProjectFile opens a project or a bare plan snapshot.
func (a *App) loadProjectFile(path string) {
	p, warnings, err := project.LoadProject(path, a.config.DefaultRender)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project = p
	a.path = path
	a.config.AddRecent(path)
	a.saveConfig()
	a.applySettings(p.Settings)
	a.setPlan(p.Plan)
	a.log.Info("project opened", slog.String("path", path), slog.Int("rooms", len(p.Plan.Rooms)))
	a.showWarnings("Project Warnings", warnings)
}

func (a *App) saveProject() {
	if a.path == "" {
		a.saveProjectAs()
		return
	}
	a.writeProject(a.path)
}

func (a *App) saveProjectAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		a.writeProject(project.WithExtension(path))
	}, a.window)
	d.SetFileName(a.project.Plan.Name + project.Extension)
	d.Show()
}

func (a *App) writeProject(path string) {
	a.project.Plan = a.currentPlan()
	if err := project.SaveProject(path, a.project); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.path = path
	a.config.AddRecent(path)
	a.saveConfig()
	a.setStatus("Saved " + filepath.Base(path))
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importPlan() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		plan, warnings, err := importer.ImportPlanJSON(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.path = ""
		a.setPlan(plan)
		a.showWarnings("Import Warnings", warnings)
	}, a.window)
}

func (a *App) importPanels(excel bool) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		room := a.canvas.Controller().State().SelectedRoomID
		var result importer.ImportResult
		if excel {
			result = importer.ImportPanelsExcel(path, room)
		} else {
			result = importer.ImportPanelsCSV(path, room)
		}
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importRooms() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(importer.ImportRoomsDXF(path))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.log.Debug("import warning", slog.String("warning", w))
	}
	if len(result.Panels) == 0 && len(result.Rooms) == 0 {
		return
	}

	plan, warnings := result.ApplyTo(a.currentPlan())
	a.setPlan(plan)

	msg := fmt.Sprintf("Imported %d rooms and %d panels.", len(result.Rooms), len(result.Panels))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	if len(warnings) > 0 {
		msg += "\n\n" + strings.Join(warnings, "\n")
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Export Functions ──────────────────────────────────────

// exportOptions are the export options for the current settings.
func (a *App) exportOptions() export.Options {
	opts := export.DefaultOptions()
	opts.Paper = export.PaperName(a.config.DefaultPaperSize)
	opts.Settings = a.project.Settings
	opts.Grid = a.project.Settings.ShowGrid
	return opts
}

// saveAs shows a save dialog seeded with the plan name and runs write on
// the chosen path.
func (a *App) saveAs(ext string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Info("exported", slog.String("path", path))
		dialog.ShowInformation("Export Complete", "Saved to "+path, a.window)
	}, a.window)
	d.SetFileName(a.project.Plan.Name + ext)
	if a.config.DefaultExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(a.config.DefaultExportDir)); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

func (a *App) exportDrawing(f drawingFormat) {
	plan := a.currentPlan()
	if len(plan.Rooms) == 0 && len(plan.Walls) == 0 && len(plan.Zones) == 0 {
		dialog.ShowInformation("Nothing to export", "Open or import a plan first.", a.window)
		return
	}
	opts := a.exportOptions()
	a.saveAs(f.ext(), func(path string) error {
		switch f {
		case exportSVG:
			return export.ExportSVG(path, plan, opts)
		case exportDXF:
			return export.ExportDXF(path, plan, opts)
		default:
			return export.ExportPDF(path, plan, opts)
		}
	})
}

func (a *App) exportSchedule() {
	plan := a.currentPlan()
	if len(plan.AllPanels()) == 0 {
		dialog.ShowInformation("No panels", "The plan has no panels to schedule.", a.window)
		return
	}
	settings := a.project.Settings
	a.saveAs(".xlsx", func(path string) error {
		return export.ExportSchedule(path, plan, settings)
	})
}

func (a *App) exportTags() {
	plan := a.currentPlan()
	if len(plan.AllPanels()) == 0 {
		dialog.ShowInformation("No panels", "The plan has no panels to tag.", a.window)
		return
	}
	a.saveAs("-tags.pdf", func(path string) error {
		return export.ExportPanelTags(path, plan)
	})
}

func (a *App) backupData() {
	a.project.Plan = a.currentPlan()
	p := a.project
	config := a.config
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.ExportAllData(path, config, p); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus("Backup written")
	}, a.window)
	d.SetFileName("ceilplan-backup.json")
	d.Show()
}

// Open loads a project or plan file, e.g. one named on the command line.
func (a *App) Open(path string) {
	a.loadProjectFile(path)
}
