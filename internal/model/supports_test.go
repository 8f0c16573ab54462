package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

func TestAutoSupportsSplitsLongPanels(t *testing.T) {
	panels := []Panel{
		NewPanel("r1", 0, 0, 1150, 6500, false),
		NewPanel("r1", 1150, 0, 1150, 13000, false),
		NewPanel("r1", 2300, 0, 1150, 4000, false),
	}

	got := AutoSupports(panels)
	require.Len(t, got, 1+2)

	assert.Equal(t, panels[0].ID, got[0].PanelID)
	assert.InDelta(t, 575.0, got[0].X, 1e-9)
	assert.InDelta(t, 3250.0, got[0].Y, 1e-9)
	for _, s := range got {
		assert.Equal(t, SupportNylon, s.Type)
		assert.NotEqual(t, panels[2].ID, s.PanelID)
	}
}

func TestAutoSupportsEmpty(t *testing.T) {
	assert.Empty(t, AutoSupports(nil))
}

func TestSupportsForLineMarksSharedBoundary(t *testing.T) {
	panels := []Panel{
		NewPanel("r1", 0, 0, 1000, 1000, false),
		NewPanel("r1", 1000, 0, 1000, 1000, false),
		NewPanel("r1", 0, 2000, 1000, 1000, false),
	}
	line := SupportLine{Start: geometry.Pt(-500, 500), End: geometry.Pt(2500, 500)}

	got := SupportsForLine(line, panels)
	require.Len(t, got, 3)

	var shared int
	for _, s := range got {
		assert.Equal(t, SupportAlu, s.Type)
		require.NotNil(t, s.SupportLine)
		assert.InDelta(t, 500.0, s.Y, 1e-9)
		if s.IsIntersectionPoint {
			shared++
			assert.InDelta(t, 1000.0, s.X, 1e-9)
		}
	}
	assert.Equal(t, 1, shared)
}
