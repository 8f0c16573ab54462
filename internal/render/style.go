package render

import "image/color"

// Drawing palette.
var (
	ColorBackground    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorGrid          = color.NRGBA{R: 232, G: 232, B: 232, A: 255}
	ColorWall          = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	ColorWallInner     = color.NRGBA{R: 97, G: 97, B: 97, A: 255}
	ColorHatch         = color.NRGBA{R: 158, G: 158, B: 158, A: 255}
	ColorRoomFill      = color.NRGBA{R: 245, G: 245, B: 240, A: 140}
	ColorRoomSelected  = color.NRGBA{R: 227, G: 242, B: 253, A: 170}
	ColorRoomOutline   = color.NRGBA{R: 120, G: 144, B: 156, A: 255}
	ColorZoneFill      = color.NRGBA{R: 255, G: 243, B: 224, A: 90}
	ColorZoneOutline   = color.NRGBA{R: 230, G: 126, B: 34, A: 255}
	ColorPanelFull     = color.NRGBA{R: 200, G: 230, B: 201, A: 255}
	ColorPanelCut      = color.NRGBA{R: 255, G: 224, B: 178, A: 255}
	ColorPanelSelected = color.NRGBA{R: 144, G: 202, B: 249, A: 255}
	ColorPanelHover    = color.NRGBA{R: 187, G: 222, B: 251, A: 255}
	ColorPanelOutline  = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	ColorDimension     = color.NRGBA{R: 21, G: 101, B: 192, A: 255}
	ColorCutDimension  = color.NRGBA{R: 211, G: 47, B: 47, A: 255}
	ColorLabelBack     = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
	ColorRoomName      = color.NRGBA{R: 55, G: 71, B: 79, A: 255}
	ColorNylon         = color.NRGBA{R: 123, G: 31, B: 162, A: 255}
	ColorAlu           = color.NRGBA{R: 0, G: 121, B: 107, A: 255}
	ColorSupportLine   = color.NRGBA{R: 0, G: 150, B: 136, A: 255}
	ColorTitle         = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
)

var (
	dashWallInner = []float64{6, 4}
	dashZone      = []float64{10, 5}
	dashSupport   = []float64{4, 3}
)
