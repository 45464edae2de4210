package anim

import (
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/foam"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/render"
)

// wakeStreamSteps caps streamline integration in the flow panel.
const wakeStreamSteps = 100

// ComposeFrame fills all four dashboard panels for one camera angle:
// velocity slices, pressure slices, plain geometry, and the wake
// analysis panel.
func ComposeFrame(s Scene, c *foam.Case, angle float64) {
	ComposeVelocity(s, c, angle)
	ComposePressure(s, c, angle)
	ComposeGeometry(s, c, angle)
	ComposeFlow(s, c, angle)
}

// ComposeVelocity builds the top-left panel: three slices through the
// velocity field plus the body surface.
func ComposeVelocity(s Scene, c *foam.Case, angle float64) {
	s.Subplot(0, 0)
	s.SetBackground(render.White)
	s.AddText("Velocity Field (m/s)")

	center := c.Volume.Bounds().Center()
	cuts := []struct {
		origin  geom.Vec3
		normal  geom.Vec3
		cmap    string
		opacity float64
		bar     string
	}{
		{center, geom.Vec3{Y: 1}, "jet", 0.9, "Velocity"},
		{center.Add(geom.Vec3{X: 1}), geom.Vec3{X: 1}, "coolwarm", 0.6, ""},
		{geom.Vec3{X: center.X, Y: center.Y, Z: 0.8}, geom.Vec3{Z: 1}, "plasma", 0.4, ""},
	}
	for _, cu := range cuts {
		sl := c.Volume.Slice(cu.origin, cu.normal)
		if len(sl.Polys) == 0 {
			continue
		}
		s.AddMesh(sl, render.MeshOptions{
			Scalars:   "U",
			Cmap:      cu.cmap,
			Opacity:   cu.opacity,
			ScalarBar: cu.bar,
		})
	}

	s.AddMesh(c.Surface, render.MeshOptions{
		Color:     render.Silver,
		Opacity:   0.7,
		ShowEdges: true,
		EdgeColor: render.Black,
	})

	s.ViewIsometric()
	s.SetAzimuth(angle * 0.5)
	s.SetElevation(20)
	s.SetZoom(1.2)
}

// ComposePressure builds the top-right panel: pressure slices just
// ahead of and behind the body center.
func ComposePressure(s Scene, c *foam.Case, angle float64) {
	s.Subplot(0, 1)
	s.SetBackground(render.White)
	s.AddText("Pressure Field (Pa)")

	center := c.Volume.Bounds().Center()
	cuts := []struct {
		offset  float64
		cmap    string
		opacity float64
		bar     string
	}{
		{0.5, "coolwarm", 0.9, "Pressure"},
		{-0.5, "RdBu", 0.6, ""},
	}
	for _, cu := range cuts {
		sl := c.Volume.Slice(center.Add(geom.Vec3{X: cu.offset}), geom.Vec3{X: 1})
		if len(sl.Polys) == 0 {
			continue
		}
		s.AddMesh(sl, render.MeshOptions{
			Scalars:   "p",
			Cmap:      cu.cmap,
			Opacity:   cu.opacity,
			ScalarBar: cu.bar,
		})
	}

	s.AddMesh(c.Surface, render.MeshOptions{
		Color:     render.DarkGray,
		Opacity:   0.5,
		ShowEdges: true,
		EdgeColor: render.Black,
	})

	s.ViewIsometric()
	s.SetAzimuth(angle * 0.5)
	s.SetElevation(20)
	s.SetZoom(1.2)
}

// ComposeGeometry builds the bottom-left panel: the bare body surface.
func ComposeGeometry(s Scene, c *foam.Case, angle float64) {
	s.Subplot(1, 0)
	s.SetBackground(render.White)
	s.AddText("Motorbike Geometry")

	s.AddMesh(c.Surface, render.MeshOptions{
		Color:     render.Silver,
		Opacity:   0.9,
		ShowEdges: true,
		EdgeColor: render.Black,
	})

	s.ViewIsometric()
	s.SetAzimuth(angle)
	s.SetElevation(25)
	s.SetZoom(1.3)
}

// flowField picks the scalar shown in the wake panel, preferring
// turbulence quantities when the case carries them.
func flowField(c *foam.Case) (name, title, cmap string) {
	g := c.Volume.Grid
	switch {
	case g.Scalar("omega") != nil:
		return "omega", "Turbulence", "turbo"
	case g.Scalar("k") != nil:
		return "k", "Turbulent Energy", "hot"
	default:
		return "U", "Velocity", "viridis"
	}
}

// wakeSeeds lays a 3x3 rake upstream of the body.
func wakeSeeds(center geom.Vec3) []geom.Vec3 {
	var seeds []geom.Vec3
	for _, y := range []float64{-1, 0, 1} {
		for _, z := range []float64{1.5, 2.0, 2.5} {
			seeds = append(seeds, geom.Vec3{X: center.X - 3, Y: y, Z: z})
		}
	}
	return seeds
}

// ComposeFlow builds the bottom-right panel: a wake slice, streamlines
// seeded upstream, and the body surface.
func ComposeFlow(s Scene, c *foam.Case, angle float64) {
	s.Subplot(1, 1)
	s.SetBackground(render.LightGray)
	s.AddText("Flow Analysis & Wake")

	center := c.Volume.Bounds().Center()
	name, title, cmap := flowField(c)

	sl := c.Volume.Slice(center.Add(geom.Vec3{X: 2}), geom.Vec3{X: 1})
	if len(sl.Polys) > 0 {
		s.AddMesh(sl, render.MeshOptions{
			Scalars:   name,
			Cmap:      cmap,
			Opacity:   0.8,
			ScalarBar: title,
		})
	}

	// streamline tracing is best effort; the panel works without it
	if lines, err := c.Volume.Streamlines("U", wakeSeeds(center), wakeStreamSteps); err == nil && len(lines.Lines) > 0 {
		s.AddMesh(lines, render.MeshOptions{
			Scalars:   "U",
			Cmap:      "rainbow",
			Opacity:   0.9,
			LineWidth: 2,
		})
	}

	s.AddMesh(c.Surface, render.MeshOptions{
		Color:     render.DarkBlue,
		Opacity:   0.6,
		ShowEdges: true,
		EdgeColor: render.Navy,
	})

	s.ViewIsometric()
	s.SetAzimuth(angle * 0.3)
	s.SetElevation(15)
	s.SetZoom(1.0)
}
