package model

// RenderSettings holds drawing and dimensioning configuration.
type RenderSettings struct {
	// Walls
	WallGapPx        float64 `json:"wall_gap_px"`       // half face spacing for walls without thickness
	CeilingThickness float64 `json:"ceiling_thickness"` // mm, printed in the title block
	ShowGrid         bool    `json:"show_grid"`
	GridSpacing      float64 `json:"grid_spacing"` // mm

	// Dimension labels
	BaseFontSize     float64 `json:"base_font_size"` // mm, scaled with the view
	MinFontSize      float64 `json:"min_font_size"`  // px floor
	LabelOffset      float64 `json:"label_offset"`   // px from the dimensioned geometry
	LabelIncrement   float64 `json:"label_increment"`
	LabelMaxAttempts int     `json:"label_max_attempts"`
	SmallDimension   float64 `json:"small_dimension"` // fraction of the project size
	PanelDimLimit    int     `json:"panel_dim_limit"` // singleton panel dims shown up to this many panels

	// Supports
	SupportType         SupportType `json:"support_type"`
	EnableNylonHangers  bool        `json:"enable_nylon_hangers"`
	EnableAluSuspension bool        `json:"enable_alu_suspension"`
	SnapToleranceDeg    float64     `json:"snap_tolerance_deg"`
}

// DefaultRenderSettings returns the settings used for new plans.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		WallGapPx:           3.0,
		CeilingThickness:    150.0,
		ShowGrid:            true,
		GridSpacing:         1000.0,
		BaseFontSize:        180.0,
		MinFontSize:         9.0,
		LabelOffset:         18.0,
		LabelIncrement:      14.0,
		LabelMaxAttempts:    8,
		SmallDimension:      0.1,
		PanelDimLimit:       20,
		SupportType:         SupportNylon,
		EnableNylonHangers:  true,
		EnableAluSuspension: false,
		SnapToleranceDeg:    10.0,
	}
}

// Validate fills zero values with defaults so a partially written settings
// block from disk still renders.
func (s RenderSettings) Validate() RenderSettings {
	d := DefaultRenderSettings()
	if s.WallGapPx <= 0 {
		s.WallGapPx = d.WallGapPx
	}
	if s.GridSpacing <= 0 {
		s.GridSpacing = d.GridSpacing
	}
	if s.BaseFontSize <= 0 {
		s.BaseFontSize = d.BaseFontSize
	}
	if s.MinFontSize <= 0 {
		s.MinFontSize = d.MinFontSize
	}
	if s.LabelOffset <= 0 {
		s.LabelOffset = d.LabelOffset
	}
	if s.LabelIncrement <= 0 {
		s.LabelIncrement = d.LabelIncrement
	}
	if s.LabelMaxAttempts <= 0 {
		s.LabelMaxAttempts = d.LabelMaxAttempts
	}
	if s.SmallDimension <= 0 {
		s.SmallDimension = d.SmallDimension
	}
	if s.PanelDimLimit <= 0 {
		s.PanelDimLimit = d.PanelDimLimit
	}
	if s.SupportType == "" {
		s.SupportType = d.SupportType
	}
	if s.SnapToleranceDeg <= 0 {
		s.SnapToleranceDeg = d.SnapToleranceDeg
	}
	return s
}
