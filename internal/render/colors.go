// Package render draws CFD scenes into images: a multi-pane plotter
// with an orthographic camera, z-buffered triangle rasterization,
// colormapped scalars, polyline drawing and scalar bars.
package render

import "image/color"

// Named colors matching the usual plotting palettes.
var (
	White         = color.RGBA{255, 255, 255, 255}
	Black         = color.RGBA{0, 0, 0, 255}
	Silver        = color.RGBA{192, 192, 192, 255}
	Gray          = color.RGBA{128, 128, 128, 255}
	DimGray       = color.RGBA{105, 105, 105, 255}
	DarkGray      = color.RGBA{169, 169, 169, 255}
	LightGray     = color.RGBA{211, 211, 211, 255}
	Red           = color.RGBA{255, 0, 0, 255}
	DarkRed       = color.RGBA{139, 0, 0, 255}
	Blue          = color.RGBA{0, 0, 255, 255}
	DarkBlue      = color.RGBA{0, 0, 139, 255}
	Navy          = color.RGBA{0, 0, 128, 255}
	Green         = color.RGBA{0, 128, 0, 255}
	Orange        = color.RGBA{255, 165, 0, 255}
	Purple        = color.RGBA{128, 0, 128, 255}
	Brown         = color.RGBA{165, 42, 42, 255}
	Pink          = color.RGBA{255, 192, 203, 255}
	Yellow        = color.RGBA{255, 255, 0, 255}
	Gold          = color.RGBA{255, 215, 0, 255}
	DarkSlateGray = color.RGBA{47, 79, 79, 255}
)
