package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mode selects how the bike parts are styled.
type Mode int

const (
	ModeSimple Mode = iota
	ModeDetailed
	ModeExploded
)

func (m Mode) String() string {
	switch m {
	case ModeDetailed:
		return "detailed"
	case ModeExploded:
		return "exploded"
	default:
		return "simple"
	}
}

// ParseMode maps a menu choice to a view mode. The second return is
// false when the choice was not recognised; callers fall back to the
// simple view then.
func ParseMode(choice string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "1", "simple":
		return ModeSimple, true
	case "2", "detailed":
		return ModeDetailed, true
	case "3", "exploded":
		return ModeExploded, true
	}
	return ModeSimple, false
}

// explodeFactor is how far parts move away from the assembly center in
// the exploded view.
const explodeFactor = 0.3

var simpleFill = rl.NewColor(211, 211, 211, 255) // lightgray

var detailedPalette = []rl.Color{
	rl.NewColor(139, 0, 0, 255),     // darkred
	rl.NewColor(169, 169, 169, 255), // darkgray
	rl.NewColor(0, 0, 0, 255),       // black
	rl.NewColor(105, 105, 105, 255), // dimgray
	rl.NewColor(192, 192, 192, 255), // silver
	rl.NewColor(0, 0, 255, 255),     // blue
	rl.NewColor(255, 0, 0, 255),     // red
	rl.NewColor(165, 42, 42, 255),   // brown
	rl.NewColor(0, 0, 128, 255),     // navy
	rl.NewColor(47, 79, 79, 255),    // darkslategray
	rl.NewColor(255, 255, 0, 255),   // yellow
	rl.NewColor(255, 215, 0, 255),   // gold
}

var explodedPalette = []rl.Color{
	rl.NewColor(255, 0, 0, 255),     // red
	rl.NewColor(0, 0, 255, 255),     // blue
	rl.NewColor(0, 128, 0, 255),     // green
	rl.NewColor(255, 165, 0, 255),   // orange
	rl.NewColor(128, 0, 128, 255),   // purple
	rl.NewColor(165, 42, 42, 255),   // brown
	rl.NewColor(255, 192, 203, 255), // pink
	rl.NewColor(128, 128, 128, 255), // gray
}

type viewSettings struct {
	azimuth    float64
	elevation  float64
	zoom       float64
	opacity    float32
	background rl.Color
}

func (m Mode) settings() viewSettings {
	switch m {
	case ModeDetailed:
		return viewSettings{
			azimuth: 45, elevation: 25, zoom: 1.2,
			opacity:    0.9,
			background: rl.NewColor(255, 255, 255, 255),
		}
	case ModeExploded:
		return viewSettings{
			azimuth: 30, elevation: 20, zoom: 0.7,
			opacity:    0.8,
			background: rl.NewColor(211, 211, 211, 255),
		}
	default:
		return viewSettings{
			azimuth: 45, elevation: 25, zoom: 1.2,
			opacity:    0.7,
			background: rl.NewColor(255, 255, 255, 255),
		}
	}
}

// fill returns the face color of part i in this mode.
func (m Mode) fill(i int) rl.Color {
	switch m {
	case ModeDetailed:
		return detailedPalette[i%len(detailedPalette)]
	case ModeExploded:
		return explodedPalette[i%len(explodedPalette)]
	default:
		return simpleFill
	}
}

func (a *App) drawParts() {
	for i := range a.parts {
		p := &a.parts[i]
		for _, tri := range p.tris {
			rl.DrawTriangle3D(p.verts[tri[0]], p.verts[tri[1]], p.verts[tri[2]], p.fill)
		}
	}
}

func (a *App) drawEdges() {
	for i := range a.parts {
		p := &a.parts[i]
		for _, poly := range p.mesh.Polys {
			for j := range poly {
				k := (j + 1) % len(poly)
				rl.DrawLine3D(p.verts[poly[j]], p.verts[poly[k]], rl.Black)
			}
		}
	}
}
