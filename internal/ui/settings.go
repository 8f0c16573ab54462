package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CeilPlan/internal/model"
)

// settingsPanel edits a working copy of the render settings. Nothing
// reaches the canvas until Apply is pressed.
type settingsPanel struct {
	work    model.RenderSettings
	apply   func(model.RenderSettings)
	refresh []func()
}

func newSettingsPanel(s model.RenderSettings, apply func(model.RenderSettings)) *settingsPanel {
	return &settingsPanel{work: s, apply: apply}
}

// set replaces the working copy, e.g. after a project is opened.
func (p *settingsPanel) set(s model.RenderSettings) {
	p.work = s
	for _, f := range p.refresh {
		f()
	}
}

func (p *settingsPanel) floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	sync := func() { e.SetText(strconv.FormatFloat(*val, 'f', -1, 64)) }
	sync()
	p.refresh = append(p.refresh, sync)
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

func (p *settingsPanel) intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	sync := func() { e.SetText(fmt.Sprintf("%d", *val)) }
	sync()
	p.refresh = append(p.refresh, sync)
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			*val = v
		}
	}
	return e
}

func (p *settingsPanel) check(val *bool) *widget.Check {
	c := widget.NewCheck("", func(b bool) { *val = b })
	sync := func() { c.SetChecked(*val) }
	sync()
	p.refresh = append(p.refresh, sync)
	return c
}

func (p *settingsPanel) build() *container.Scroll {
	s := &p.work

	supportSelect := widget.NewSelect([]string{"Nylon hangers", "Aluminium suspension"}, func(selected string) {
		if selected == "Aluminium suspension" {
			s.SupportType = model.SupportAlu
		} else {
			s.SupportType = model.SupportNylon
		}
	})
	syncSupport := func() {
		if s.SupportType == model.SupportAlu {
			supportSelect.SetSelected("Aluminium suspension")
		} else {
			supportSelect.SetSelected("Nylon hangers")
		}
	}
	syncSupport()
	p.refresh = append(p.refresh, syncSupport)

	drawingSection := widget.NewCard("Drawing", "", container.NewGridWithColumns(2,
		widget.NewLabel("Wall Gap (px)"), p.floatEntry(&s.WallGapPx),
		widget.NewLabel("Ceiling Thickness (mm)"), p.floatEntry(&s.CeilingThickness),
		widget.NewLabel("Show Grid"), p.check(&s.ShowGrid),
		widget.NewLabel("Grid Spacing (mm)"), p.floatEntry(&s.GridSpacing),
	))

	labelSection := widget.NewCard("Dimension Labels", "", container.NewGridWithColumns(2,
		widget.NewLabel("Base Font Size (mm)"), p.floatEntry(&s.BaseFontSize),
		widget.NewLabel("Minimum Font Size (px)"), p.floatEntry(&s.MinFontSize),
		widget.NewLabel("Label Offset (px)"), p.floatEntry(&s.LabelOffset),
		widget.NewLabel("Offset Increment (px)"), p.floatEntry(&s.LabelIncrement),
		widget.NewLabel("Placement Attempts"), p.intEntry(&s.LabelMaxAttempts),
		widget.NewLabel("Small Dimension Ratio"), p.floatEntry(&s.SmallDimension),
		widget.NewLabel("Panel Dimension Limit"), p.intEntry(&s.PanelDimLimit),
	))

	supportSection := widget.NewCard("Supports", "", container.NewGridWithColumns(2,
		widget.NewLabel("Support Type"), supportSelect,
		widget.NewLabel("Nylon Hangers"), p.check(&s.EnableNylonHangers),
		widget.NewLabel("Aluminium Suspension"), p.check(&s.EnableAluSuspension),
		widget.NewLabel("Snap Tolerance (deg)"), p.floatEntry(&s.SnapToleranceDeg),
	))

	applyBtn := widget.NewButton("Apply", func() { p.apply(p.work) })
	applyBtn.Importance = widget.HighImportance
	resetBtn := widget.NewButton("Defaults", func() { p.set(model.DefaultRenderSettings()) })

	return container.NewVScroll(container.NewVBox(
		drawingSection,
		labelSection,
		supportSection,
		container.NewHBox(applyBtn, resetBtn),
	))
}
