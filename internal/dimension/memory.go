package dimension

import (
	"math"

	"github.com/piwi3910/CeilPlan/internal/geometry"
)

// Key identifies a dimension across frames: its endpoints rounded to whole
// millimetres plus its kind.
type Key struct {
	X1, Y1 int64
	X2, Y2 int64
	Kind   Kind
}

// KeyFor builds the memory key of a dimension.
func KeyFor(start, end geometry.Point, kind Kind) Key {
	return Key{
		X1:   int64(math.Round(start.X)),
		Y1:   int64(math.Round(start.Y)),
		X2:   int64(math.Round(end.X)),
		Y2:   int64(math.Round(end.Y)),
		Kind: kind,
	}
}

// Memory remembers the side each dimension was placed on. It lives as long as
// the canvas and is cleared on zoom reset or when a new plan is loaded.
type Memory struct {
	sides map[Key]Side
}

// NewMemory creates an empty placement memory.
func NewMemory() *Memory {
	return &Memory{sides: make(map[Key]Side)}
}

// Get returns the remembered side for k.
func (m *Memory) Get(k Key) (Side, bool) {
	s, ok := m.sides[k]
	return s, ok
}

// Set records the side chosen for k.
func (m *Memory) Set(k Key, s Side) {
	m.sides[k] = s
}

// Reset forgets every placement.
func (m *Memory) Reset() {
	m.sides = make(map[Key]Side)
}

// Len returns the number of remembered dimensions.
func (m *Memory) Len() int {
	return len(m.sides)
}
