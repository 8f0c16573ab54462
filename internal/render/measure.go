package render

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/piwi3910/CeilPlan/internal/dimension"
)

// GoFontMeasurer measures text with the Go Regular font so label boxes are
// sized the same on every backend. Faces are cached per size in tenths of a
// pixel. It is not safe for concurrent use.
type GoFontMeasurer struct {
	font  *opentype.Font
	faces map[int]font.Face
}

// NewGoFontMeasurer parses the embedded Go Regular font.
func NewGoFontMeasurer() (*GoFontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular font: %w", err)
	}
	return &GoFontMeasurer{font: f, faces: make(map[int]font.Face)}, nil
}

func (m *GoFontMeasurer) face(size float64) (font.Face, error) {
	key := int(math.Round(size * 10))
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(key) / 10,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}

// MeasureText returns the advance width and line height of text in pixels.
func (m *GoFontMeasurer) MeasureText(text string, size float64) (float64, float64) {
	if size <= 0 {
		return 0, 0
	}
	f, err := m.face(size)
	if err != nil {
		return dimension.ApproxMeasurer{}.MeasureText(text, size)
	}
	w := font.MeasureString(f, text)
	met := f.Metrics()
	return float64(w) / 64, float64(met.Ascent+met.Descent) / 64
}
