package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/CeilPlan/internal/model"
)

// number accepts JSON numbers, numeric strings and null.
type number struct {
	v     float64
	valid bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", string(b))
	}
	n.v, n.valid = v, true
	return nil
}

// first returns the first set value, or def.
func first(def float64, ns ...*number) float64 {
	for _, n := range ns {
		if n != nil && n.valid {
			return n.v
		}
	}
	return def
}

// text accepts strings and numbers, for ids written either way.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	*t = text(strings.TrimSpace(string(b)))
	return nil
}

func firstText(ts ...text) string {
	for _, t := range ts {
		if t != "" {
			return string(t)
		}
	}
	return ""
}

// flag accepts booleans, 0/1 and "yes"/"no" style strings.
type flag struct {
	v     bool
	valid bool
}

func (f *flag) UnmarshalJSON(b []byte) error {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch s {
	case "null", "":
		return nil
	case "true", "1", "yes", "y", "cut":
		f.v, f.valid = true, true
	case "false", "0", "no", "n", "full":
		f.v, f.valid = false, true
	default:
		return fmt.Errorf("invalid flag %s", string(b))
	}
	return nil
}

// point accepts {"x":..,"y":..} and [x, y].
type point struct {
	X, Y  float64
	valid bool
}

func (p *point) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var arr []number
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		if len(arr) < 2 {
			return fmt.Errorf("point needs two coordinates, got %d", len(arr))
		}
		p.X, p.Y, p.valid = arr[0].v, arr[1].v, true
		return nil
	}
	var obj struct {
		X number `json:"x"`
		Y number `json:"y"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.X, p.Y, p.valid = obj.X.v, obj.Y.v, true
	return nil
}

func (p point) model() model.Point { return model.Point{X: p.X, Y: p.Y} }

func points(ps []point) []model.Point {
	out := make([]model.Point, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.model())
	}
	return out
}

type wirePanel struct {
	ID        text    `json:"id"`
	PanelID   text    `json:"panel_id"`
	RoomID    text    `json:"room_id"`
	Room      text    `json:"room"`
	StartX    *number `json:"start_x"`
	X         *number `json:"x"`
	XStart    *number `json:"x_start"`
	StartY    *number `json:"start_y"`
	Y         *number `json:"y"`
	YStart    *number `json:"y_start"`
	EndX      *number `json:"end_x"`
	XEnd      *number `json:"x_end"`
	EndY      *number `json:"end_y"`
	YEnd      *number `json:"y_end"`
	Width     *number `json:"width"`
	Length    *number `json:"length"`
	Height    *number `json:"height"`
	IsCut     *flag   `json:"is_cut"`
	Cut       *flag   `json:"cut"`
	PanelType string  `json:"panel_type"`
	Thickness *number `json:"thickness"`
}

// normalize converts a wire panel. Coordinates fall back through the known
// field spellings; missing sizes are derived from the end coordinates.
func (w wirePanel) normalize(roomID string) (model.Panel, error) {
	sx := first(0, w.StartX, w.X, w.XStart)
	sy := first(0, w.StartY, w.Y, w.YStart)
	width := first(0, w.Width)
	length := first(0, w.Length, w.Height)
	ex := first(sx+width, w.EndX, w.XEnd)
	ey := first(sy+length, w.EndY, w.YEnd)
	if width <= 0 {
		width = ex - sx
	}
	if length <= 0 {
		length = ey - sy
	}
	if width <= 0 || length <= 0 {
		return model.Panel{}, fmt.Errorf("panel has no usable size (%.1f x %.1f)", width, length)
	}

	p := model.Panel{
		ID:        firstText(w.ID, w.PanelID),
		RoomID:    firstText(w.RoomID, w.Room),
		StartX:    sx,
		StartY:    sy,
		EndX:      sx + width,
		EndY:      sy + length,
		Width:     width,
		Length:    length,
		Thickness: first(0, w.Thickness),
	}
	if p.RoomID == "" {
		p.RoomID = roomID
	}
	if p.ID == "" {
		p.ID = uuid.New().String()[:8]
	}
	switch {
	case w.IsCut != nil && w.IsCut.valid:
		p.IsCut = w.IsCut.v
	case w.Cut != nil && w.Cut.valid:
		p.IsCut = w.Cut.v
	default:
		p.IsCut = strings.EqualFold(strings.TrimSpace(w.PanelType), "cut")
	}
	return p, nil
}

type wireWall struct {
	ID              text    `json:"id"`
	Start           point   `json:"start"`
	End             point   `json:"end"`
	StartX          *number `json:"start_x"`
	StartY          *number `json:"start_y"`
	EndX            *number `json:"end_x"`
	EndY            *number `json:"end_y"`
	Height          *number `json:"height"`
	Thickness       *number `json:"thickness"`
	WallThickness   *number `json:"wall_thickness"`
	ApplicationType string  `json:"application_type"`
	Type            string  `json:"type"`
}

func (w wireWall) normalize() model.Wall {
	wall := model.Wall{
		ID:              string(w.ID),
		Start:           model.Point{X: first(w.Start.X, w.StartX), Y: first(w.Start.Y, w.StartY)},
		End:             model.Point{X: first(w.End.X, w.EndX), Y: first(w.End.Y, w.EndY)},
		Height:          first(0, w.Height),
		Thickness:       first(0, w.Thickness, w.WallThickness),
		ApplicationType: model.ApplicationType(strings.ToLower(firstText(text(w.ApplicationType), text(w.Type)))),
	}
	if wall.ApplicationType != model.ApplicationPartition {
		wall.ApplicationType = model.ApplicationWall
	}
	if wall.ID == "" {
		wall.ID = uuid.New().String()[:8]
	}
	return model.NormalizeWall(wall)
}

type wireIntersection struct {
	WallA         text    `json:"wall_a"`
	Wall1         text    `json:"wall_1"`
	WallB         text    `json:"wall_b"`
	Wall2         text    `json:"wall_2"`
	JoiningMethod string  `json:"joining_method"`
	Method        string  `json:"method"`
	Point         point   `json:"point"`
	X             *number `json:"x"`
	Y             *number `json:"y"`
}

func (w wireIntersection) normalize() model.Intersection {
	method := model.JoiningMethod(strings.ToLower(firstText(text(w.JoiningMethod), text(w.Method))))
	if method != model.Join45Cut {
		method = model.JoinButt
	}
	return model.Intersection{
		WallA:         firstText(w.WallA, w.Wall1),
		WallB:         firstText(w.WallB, w.Wall2),
		JoiningMethod: method,
		Point:         model.Point{X: first(w.Point.X, w.X), Y: first(w.Point.Y, w.Y)},
	}
}

type wireRoom struct {
	ID            text    `json:"id"`
	RoomPoints    []point `json:"room_points"`
	Points        []point `json:"points"`
	RoomName      string  `json:"room_name"`
	Name          string  `json:"name"`
	LabelPosition point   `json:"label_position"`
	Walls         []text  `json:"walls"`
}

func (w wireRoom) normalize() model.Room {
	pts := w.RoomPoints
	if len(pts) == 0 {
		pts = w.Points
	}
	r := model.Room{
		ID:     string(w.ID),
		Points: points(pts),
		Name:   firstText(text(w.RoomName), text(w.Name)),
	}
	if w.LabelPosition.valid {
		lp := w.LabelPosition.model()
		r.LabelPosition = &lp
	}
	for _, id := range w.Walls {
		r.WallIDs = append(r.WallIDs, string(id))
	}
	if r.ID == "" {
		r.ID = uuid.New().String()[:8]
	}
	return r
}

type wireZone struct {
	ID            text              `json:"id"`
	Name          string            `json:"name"`
	OutlinePoints []point           `json:"outline_points"`
	Points        []point           `json:"points"`
	RoomIDs       []text            `json:"room_ids"`
	Rooms         []text            `json:"rooms"`
	CeilingPanels []json.RawMessage `json:"ceiling_panels"`
	Panels        []json.RawMessage `json:"panels"`
}

type wirePlan struct {
	Name           string            `json:"name"`
	ProjectName    string            `json:"project_name"`
	Rooms          []json.RawMessage `json:"rooms"`
	Walls          []json.RawMessage `json:"walls"`
	Intersections  []json.RawMessage `json:"intersections"`
	Panels         json.RawMessage   `json:"panels"`
	CeilingPanels  json.RawMessage   `json:"ceiling_panels"`
	Zones          []json.RawMessage `json:"zones"`
	CustomSupports []json.RawMessage `json:"custom_supports"`
}

// decodeEach decodes every element on its own so one malformed entity is
// dropped with a warning instead of failing the whole snapshot.
func decodeEach[T any](raws []json.RawMessage, what string, warnings *[]string) []T {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			*warnings = append(*warnings, fmt.Sprintf("%s %d skipped: %v", what, i+1, err))
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParsePlan decodes a plan snapshot. Panels may be given as a map keyed by
// room id or as a flat list carrying room ids. Entities that cannot be
// normalised are dropped and reported in the returned warnings.
func ParsePlan(data []byte) (model.Plan, []string, error) {
	var w wirePlan
	if err := json.Unmarshal(data, &w); err != nil {
		return model.Plan{}, nil, fmt.Errorf("decode plan: %w", err)
	}

	var warnings []string
	plan := model.NewPlan()
	if name := firstText(text(w.Name), text(w.ProjectName)); name != "" {
		plan.Name = name
	}

	for _, r := range decodeEach[wireRoom](w.Rooms, "room", &warnings) {
		room := r.normalize()
		if len(room.Points) < 3 {
			warnings = append(warnings, fmt.Sprintf("room %s: outline has %d points", room.ID, len(room.Points)))
		}
		plan.Rooms = append(plan.Rooms, room)
	}
	for _, ww := range decodeEach[wireWall](w.Walls, "wall", &warnings) {
		plan.Walls = append(plan.Walls, ww.normalize())
	}
	for _, wi := range decodeEach[wireIntersection](w.Intersections, "intersection", &warnings) {
		ix := wi.normalize()
		if ix.WallA == "" || ix.WallB == "" {
			warnings = append(warnings, "intersection without both wall ids skipped")
			continue
		}
		plan.Intersections = append(plan.Intersections, ix)
	}

	raw := w.Panels
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		raw = w.CeilingPanels
	}
	panels, pw, err := parsePanels(raw)
	if err != nil {
		return model.Plan{}, nil, err
	}
	warnings = append(warnings, pw...)
	plan.Panels = panels

	for _, wz := range decodeEach[wireZone](w.Zones, "zone", &warnings) {
		z := model.Zone{
			ID:            string(wz.ID),
			Name:          wz.Name,
			OutlinePoints: points(wz.OutlinePoints),
		}
		if len(z.OutlinePoints) == 0 {
			z.OutlinePoints = points(wz.Points)
		}
		ids := wz.RoomIDs
		if len(ids) == 0 {
			ids = wz.Rooms
		}
		for _, id := range ids {
			z.RoomIDs = append(z.RoomIDs, string(id))
		}
		wps := wz.CeilingPanels
		if len(wps) == 0 {
			wps = wz.Panels
		}
		for _, wp := range decodeEach[wirePanel](wps, "zone "+z.ID+" panel", &warnings) {
			p, err := wp.normalize(model.ZoneIDPrefix + z.ID)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("zone %s: %v", z.ID, err))
				continue
			}
			z.CeilingPanels = append(z.CeilingPanels, p)
		}
		plan.Zones = append(plan.Zones, z)
	}
	plan.CustomSupports = decodeEach[model.Support](w.CustomSupports, "support", &warnings)

	return plan, warnings, nil
}

func parsePanels(raw json.RawMessage) (map[string][]model.Panel, []string, error) {
	out := map[string][]model.Panel{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil, nil
	}

	var warnings []string
	add := func(roomID string, raws []json.RawMessage) {
		what := "panel"
		if roomID != "" {
			what = "room " + roomID + " panel"
		}
		for _, wp := range decodeEach[wirePanel](raws, what, &warnings) {
			p, err := wp.normalize(roomID)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("room %s: %v", roomID, err))
				continue
			}
			out[p.RoomID] = append(out[p.RoomID], p)
		}
	}

	switch raw[0] {
	case '{':
		var byRoom map[string][]json.RawMessage
		if err := json.Unmarshal(raw, &byRoom); err != nil {
			return nil, nil, fmt.Errorf("decode panels: %w", err)
		}
		for _, roomID := range slices.Sorted(maps.Keys(byRoom)) {
			add(roomID, byRoom[roomID])
		}
	case '[':
		var flat []json.RawMessage
		if err := json.Unmarshal(raw, &flat); err != nil {
			return nil, nil, fmt.Errorf("decode panels: %w", err)
		}
		add("", flat)
	default:
		return nil, nil, fmt.Errorf("decode panels: unexpected %q", raw[0])
	}
	return out, warnings, nil
}

// ImportPlanJSON reads and normalises a plan snapshot file.
func ImportPlanJSON(path string) (model.Plan, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, nil, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(data)
}
