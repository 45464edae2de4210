package render

import (
	"image/color"
	"testing"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// facingTriangle builds a large triangle perpendicular to the default
// isometric view direction, shifted toward the camera by off.
func facingTriangle(off float64) *mesh.PolyData {
	d := geom.Vec3{X: 1, Y: 1, Z: 1}.Normalize().Scale(off)
	m := mesh.NewPolyData()
	m.Points = []geom.Vec3{
		geom.Vec3{X: 2, Y: -1, Z: -1}.Add(d),
		geom.Vec3{X: -1, Y: 2, Z: -1}.Add(d),
		geom.Vec3{X: -1, Y: -1, Z: 2}.Add(d),
	}
	m.Polys = [][]int{{0, 1, 2}}
	return m
}

func near(a, b color.RGBA, tol int) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(a.R, b.R) <= tol && diff(a.G, b.G) <= tol && diff(a.B, b.B) <= tol
}

func TestRenderBackground(t *testing.T) {
	p := NewPlotter(40, 40, 1, 1)
	p.SetBackground(Red)
	img := p.Render()

	if got := img.RGBAAt(1, 1); got != Red {
		t.Errorf("expected red background, got %v", got)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("expected 40x40 frame, got %v", b)
	}
}

func TestRenderTriangle(t *testing.T) {
	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(facingTriangle(0), MeshOptions{Color: Green})
	img := p.Render()

	if got := img.RGBAAt(30, 30); !near(got, Green, 1) {
		t.Errorf("expected green at the pane center, got %v", got)
	}
	if got := img.RGBAAt(1, 1); got != White {
		t.Errorf("expected background in the corner, got %v", got)
	}
}

func TestRenderDepthOrder(t *testing.T) {
	back := facingTriangle(-0.5)
	front := facingTriangle(0.5)

	// near mesh added last
	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(back, MeshOptions{Color: Blue})
	p.AddMesh(front, MeshOptions{Color: Red})
	if got := p.Render().RGBAAt(30, 30); !near(got, Red, 1) {
		t.Errorf("expected the near mesh on top, got %v", got)
	}

	// near mesh added first: depth buffer must still win
	p = NewPlotter(60, 60, 1, 1)
	p.AddMesh(front, MeshOptions{Color: Red})
	p.AddMesh(back, MeshOptions{Color: Blue})
	if got := p.Render().RGBAAt(30, 30); !near(got, Red, 1) {
		t.Errorf("expected the near mesh on top regardless of order, got %v", got)
	}
}

func TestRenderTranslucentBlend(t *testing.T) {
	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(facingTriangle(0), MeshOptions{Color: Blue, Opacity: 0.5})
	img := p.Render()

	want := color.RGBA{128, 128, 255, 255} // half blue over white
	if got := img.RGBAAt(30, 30); !near(got, want, 2) {
		t.Errorf("expected blended %v, got %v", want, got)
	}
}

func TestRenderTranslucentStack(t *testing.T) {
	// translucent near triangle over opaque far one: both contribute
	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(facingTriangle(-0.5), MeshOptions{Color: White})
	p.AddMesh(facingTriangle(0.5), MeshOptions{Color: Red, Opacity: 0.5})
	img := p.Render()

	want := color.RGBA{255, 128, 128, 255}
	if got := img.RGBAAt(30, 30); !near(got, want, 2) {
		t.Errorf("expected red blended over white, got %v", got)
	}

	// translucent behind opaque stays hidden
	p = NewPlotter(60, 60, 1, 1)
	p.AddMesh(facingTriangle(0.5), MeshOptions{Color: White})
	p.AddMesh(facingTriangle(-0.5), MeshOptions{Color: Red, Opacity: 0.5})
	if got := p.Render().RGBAAt(30, 30); !near(got, White, 1) {
		t.Errorf("expected hidden translucent mesh, got %v", got)
	}
}

func TestRenderScalarColors(t *testing.T) {
	m := facingTriangle(0)
	m.Scalars["p"] = []float64{0, 0, 0} // flat field maps to colormap midpoint
	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(m, MeshOptions{Scalars: "p", Cmap: "jet"})
	img := p.Render()

	want := Map("jet").At(0.5)
	if got := img.RGBAAt(30, 30); !near(got, want, 1) {
		t.Errorf("expected jet midpoint %v for a flat field, got %v", want, got)
	}
}

func TestRenderMissingScalarsFallsBack(t *testing.T) {
	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(facingTriangle(0), MeshOptions{Scalars: "absent", Color: Green})
	if got := p.Render().RGBAAt(30, 30); !near(got, Green, 1) {
		t.Errorf("expected flat color fallback, got %v", got)
	}
}

func TestSubplotIsolation(t *testing.T) {
	p := NewPlotter(80, 80, 2, 2)
	p.Subplot(0, 1)
	p.SetBackground(Green)
	p.AddMesh(facingTriangle(0), MeshOptions{Color: Red})
	img := p.Render()

	if got := img.RGBAAt(60, 20); !near(got, Red, 1) {
		t.Errorf("expected the mesh in the top-right pane, got %v", got)
	}
	if got := img.RGBAAt(20, 20); got != White {
		t.Errorf("expected the top-left pane untouched, got %v", got)
	}
	if got := img.RGBAAt(20, 60); got != White {
		t.Errorf("expected the bottom-left pane untouched, got %v", got)
	}
	if got := img.RGBAAt(78, 1); got != Green {
		t.Errorf("expected the top-right background, got %v", got)
	}
}

func TestClearAll(t *testing.T) {
	p := NewPlotter(40, 40, 1, 1)
	p.SetBackground(Red)
	p.AddMesh(facingTriangle(0), MeshOptions{Color: Green})
	p.ClearAll()
	img := p.Render()

	for _, xy := range [][2]int{{1, 1}, {20, 20}, {38, 38}} {
		if got := img.RGBAAt(xy[0], xy[1]); got != White {
			t.Errorf("expected cleared frame at %v, got %v", xy, got)
		}
	}
}

func TestRenderDecorations(t *testing.T) {
	m := facingTriangle(0)
	m.Scalars["p"] = []float64{0, 1, 2}

	p := NewPlotter(200, 120, 1, 1)
	p.AddText("Velocity Field (m/s)")
	p.AddMesh(m, MeshOptions{Scalars: "p", Cmap: "jet", ScalarBar: "Velocity"})
	img := p.Render()

	found := false
	for y := 4; y < 28 && !found; y++ {
		for x := 4; x < 120 && !found; x++ {
			if img.RGBAAt(x, y) == Black {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected title text pixels near the top-left corner")
	}

	bar := false
	for y := 28; y < 90 && !bar; y++ {
		for x := 120; x < 199 && !bar; x++ {
			c := img.RGBAAt(x, y)
			if c == Map("jet").At(1) || c == Map("jet").At(0) {
				bar = true
			}
		}
	}
	if !bar {
		t.Error("expected scalar bar pixels near the right edge")
	}
}

func TestRenderLines(t *testing.T) {
	m := mesh.NewPolyData()
	m.Points = []geom.Vec3{
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: 1},
	}
	m.Lines = [][]int{{0, 1}}

	p := NewPlotter(60, 60, 1, 1)
	p.AddMesh(m, MeshOptions{Color: Navy, LineWidth: 2})
	img := p.Render()

	found := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if near(img.RGBAAt(x, y), Navy, 1) {
				found++
			}
		}
	}
	if found == 0 {
		t.Error("expected line pixels to be drawn")
	}
}
