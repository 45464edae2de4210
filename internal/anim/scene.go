// Package anim composes the rotating four-panel CFD dashboard and
// drives it frame by frame into a movie encoder.
package anim

import (
	"image"
	"image/color"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/render"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/video"
)

// Scene is the drawing surface a panel composer fills: a grid of panes
// with per-pane camera, background, meshes and captions.
type Scene interface {
	Subplot(row, col int)
	AddText(s string)
	AddMesh(m *mesh.PolyData, o render.MeshOptions)
	SetBackground(c color.RGBA)
	ViewIsometric()
	SetAzimuth(deg float64)
	SetElevation(deg float64)
	SetZoom(z float64)
}

// Renderer is a Scene that can be reset and rasterized into frames.
type Renderer interface {
	Scene
	ClearAll()
	Render() *image.RGBA
}

// Encoder receives finished frames.
type Encoder interface {
	WriteFrame(img image.Image) error
}

var (
	_ Renderer = (*render.Plotter)(nil)
	_ Encoder  = (*video.Writer)(nil)
)
