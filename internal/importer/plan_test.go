package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CeilPlan/internal/model"
)

func TestParsePlanCanonical(t *testing.T) {
	data := []byte(`{
		"name": "Office",
		"rooms": [{"id": "r1", "room_name": "Corridor",
			"room_points": [{"x":0,"y":0},{"x":5000,"y":0},{"x":5000,"y":1000},{"x":0,"y":1000}]}],
		"walls": [{"id": "w1", "start": {"x": 5000, "y": 0}, "end": {"x": 0, "y": 0}, "thickness": 100}],
		"intersections": [{"wall_a": "w1", "wall_b": "w2", "joining_method": "45_cut", "point": {"x": 0, "y": 0}}],
		"panels": {"r1": [{"id": "p1", "start_x": 0, "start_y": 0, "width": 1150, "length": 1000, "is_cut": false}]}
	}`)

	plan, warnings, err := ParsePlan(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "Office", plan.Name)
	require.Len(t, plan.Rooms, 1)
	assert.Equal(t, "Corridor", plan.Rooms[0].Name)
	assert.Len(t, plan.Rooms[0].Points, 4)

	require.Len(t, plan.Walls, 1)
	w := plan.Walls[0]
	assert.Equal(t, 0.0, w.Start.X, "walls are normalised so start precedes end")
	assert.Equal(t, 5000.0, w.End.X)
	assert.Equal(t, model.ApplicationWall, w.ApplicationType)

	require.Len(t, plan.Intersections, 1)
	assert.Equal(t, model.Join45Cut, plan.Intersections[0].JoiningMethod)

	require.Len(t, plan.Panels["r1"], 1)
	p := plan.Panels["r1"][0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "r1", p.RoomID)
	assert.Equal(t, 1150.0, p.EndX)
}

func TestParsePlanFieldFallbacks(t *testing.T) {
	data := []byte(`{
		"project_name": "Legacy",
		"rooms": [{"id": 7, "name": "Hall", "points": [[0,0],[3000,0],[3000,2000],[0,2000]],
			"label_position": [1500, 1000]}],
		"walls": [{"id": "w1", "start_x": "0", "start_y": 0, "end_x": 0, "end_y": 2000,
			"wall_thickness": 80, "type": "Partition"}],
		"intersections": [{"wall_1": "w1", "wall_2": "w2", "method": "bogus", "x": 0, "y": 0},
			{"wall_1": "w1"}],
		"ceiling_panels": [
			{"panel_id": "a", "room": "7", "x": 0, "y": 0, "x_end": 1150, "y_end": 2000, "panel_type": "full"},
			{"room_id": "7", "x_start": 1150, "y_start": "0", "width": "400", "height": 2000, "cut": "yes"},
			{"room_id": "7", "x": 0, "y": 0}
		]
	}`)

	plan, warnings, err := ParsePlan(data)
	require.NoError(t, err)

	assert.Equal(t, "Legacy", plan.Name)
	require.Len(t, plan.Rooms, 1)
	r := plan.Rooms[0]
	assert.Equal(t, "7", r.ID)
	assert.Equal(t, "Hall", r.Name)
	assert.Len(t, r.Points, 4)
	require.NotNil(t, r.LabelPosition)
	assert.Equal(t, 1500.0, r.LabelPosition.X)

	require.Len(t, plan.Walls, 1)
	assert.Equal(t, 80.0, plan.Walls[0].Thickness)
	assert.Equal(t, model.ApplicationPartition, plan.Walls[0].ApplicationType)

	require.Len(t, plan.Intersections, 1, "intersection without a second wall is skipped")
	assert.Equal(t, model.JoinButt, plan.Intersections[0].JoiningMethod)

	panels := plan.Panels["7"]
	require.Len(t, panels, 2)
	assert.Equal(t, "a", panels[0].ID)
	assert.Equal(t, 1150.0, panels[0].Width)
	assert.Equal(t, 2000.0, panels[0].Length)
	assert.False(t, panels[0].IsCut)

	assert.Len(t, panels[1].ID, 8, "missing ids are generated")
	assert.Equal(t, 400.0, panels[1].Width)
	assert.True(t, panels[1].IsCut)

	assert.Len(t, warnings, 2)
}

func TestParsePlanZones(t *testing.T) {
	data := []byte(`{
		"rooms": [{"id": "a", "room_points": [[0,0],[1000,0],[1000,1000]]}],
		"zones": [{"id": "z1", "points": [[0,0],[2000,0],[2000,1000],[0,1000]], "rooms": ["a", "b"],
			"panels": [{"x": 0, "y": 0, "width": 1150, "length": 1000}]}]
	}`)

	plan, _, err := ParsePlan(data)
	require.NoError(t, err)
	require.Len(t, plan.Zones, 1)

	z := plan.Zones[0]
	assert.Len(t, z.OutlinePoints, 4)
	assert.Equal(t, []string{"a", "b"}, z.RoomIDs)
	require.Len(t, z.CeilingPanels, 1)
	assert.Equal(t, model.ZoneIDPrefix+"z1", z.CeilingPanels[0].RoomID)
}

func TestParsePlanShortRoomWarns(t *testing.T) {
	plan, warnings, err := ParsePlan([]byte(`{"rooms": [{"id": "r", "room_points": [[0,0],[1,1]]}]}`))
	require.NoError(t, err)
	assert.Len(t, plan.Rooms, 1, "short rooms are kept and skipped at draw time")
	assert.Len(t, warnings, 1)
}

func TestParsePlanErrors(t *testing.T) {
	_, _, err := ParsePlan([]byte(`{"rooms": `))
	assert.Error(t, err)

	_, _, err = ParsePlan([]byte(`{"panels": 12}`))
	assert.Error(t, err)
}

func TestParsePlanDropsMalformedEntities(t *testing.T) {
	data := []byte(`{
		"rooms": [
			{"id": "r1", "room_points": [[0,0],[4000,0],[4000,3000],[0,3000]]},
			{"id": "r2", "room_points": [[0,"x"],[1,1],[2,2]]}
		],
		"walls": [{"id": "w1", "start": [0,0], "end": [4000,0]}, {"id": "w2", "height": "tall"}],
		"panels": {"r1": [
			{"id": "p1", "x": 0, "y": 0, "width": 1150, "length": 3000},
			{"id": "p2", "x": 1150, "y": 0, "width": "abc", "length": 3000},
			{"id": "p3", "x": 2300, "y": 0, "width": 1150, "length": 3000, "is_cut": "maybe"}
		]},
		"zones": [{"id": "z1", "points": [[0,0],[1,0],[1,1]], "rooms": ["r1"],
			"panels": [{"x": 0, "y": 0, "width": 500, "length": 500}, {"x": [], "width": 1}]}],
		"custom_supports": [{"id": "s1", "x": 10, "y": 10, "type": "alu"}, {"id": "s2", "x": "left"}]
	}`)

	plan, warnings, err := ParsePlan(data)
	require.NoError(t, err)

	require.Len(t, plan.Rooms, 1)
	assert.Equal(t, "r1", plan.Rooms[0].ID)
	require.Len(t, plan.Walls, 1)
	assert.Equal(t, "w1", plan.Walls[0].ID)
	require.Len(t, plan.Panels["r1"], 1)
	assert.Equal(t, "p1", plan.Panels["r1"][0].ID)
	require.Len(t, plan.Zones, 1)
	assert.Len(t, plan.Zones[0].CeilingPanels, 1)
	require.Len(t, plan.CustomSupports, 1)
	assert.Equal(t, "s1", plan.CustomSupports[0].ID)

	assert.Len(t, warnings, 6)
	assert.True(t, strings.HasPrefix(warnings[0], "room 2 skipped:"), warnings[0])
}

func TestImportPlanJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "From disk"}`), 0644))

	plan, _, err := ImportPlanJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "From disk", plan.Name)
	assert.NotNil(t, plan.Panels)

	_, _, err = ImportPlanJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
