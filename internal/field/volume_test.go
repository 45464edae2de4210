package field

import (
	"math"
	"testing"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// attachIdentity adds a vector field equal to the point coordinates
// and a scalar field equal to the z coordinate; both are linear, so
// tetrahedral interpolation must reproduce them exactly.
func attachIdentity(g *mesh.Grid) {
	u := make([]geom.Vec3, len(g.Points))
	p := make([]float64, len(g.Points))
	for i, pt := range g.Points {
		u[i] = pt
		p[i] = pt.Z
	}
	g.Vectors["U"] = u
	g.Scalars["p"] = p
}

func cubeGrid() *mesh.Grid {
	g := mesh.NewGrid()
	g.Points = []geom.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	g.Cells = [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}
	g.Types = []mesh.CellType{mesh.CellHexahedron}
	attachIdentity(g)
	return g
}

func voxelGrid() *mesh.Grid {
	g := mesh.NewGrid()
	g.Points = []geom.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	g.Cells = [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}
	g.Types = []mesh.CellType{mesh.CellVoxel}
	attachIdentity(g)
	return g
}

func mustVolume(t *testing.T, g *mesh.Grid) *Volume {
	t.Helper()
	v, err := NewVolume(g)
	if err != nil {
		t.Fatalf("unexpected volume error: %v", err)
	}
	return v
}

func TestDecompositionCounts(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Vec3
		cell   []int
		ct     mesh.CellType
		want   int
	}{
		{
			"tetra",
			[]geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},
			[]int{0, 1, 2, 3}, mesh.CellTetra, 1,
		},
		{
			"pyramid",
			[]geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0.5, Y: 0.5, Z: 1}},
			[]int{0, 1, 2, 3, 4}, mesh.CellPyramid, 2,
		},
		{
			"wedge",
			[]geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}},
			[]int{0, 1, 2, 3, 4, 5}, mesh.CellWedge, 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mesh.NewGrid()
			g.Points = tt.points
			g.Cells = [][]int{tt.cell}
			g.Types = []mesh.CellType{tt.ct}
			attachIdentity(g)
			v := mustVolume(t, g)
			if v.NumTets() != tt.want {
				t.Errorf("expected %d tets, got %d", tt.want, v.NumTets())
			}
		})
	}

	if v := mustVolume(t, cubeGrid()); v.NumTets() != 5 {
		t.Errorf("expected 5 tets for a hexahedron, got %d", v.NumTets())
	}
	if v := mustVolume(t, voxelGrid()); v.NumTets() != 5 {
		t.Errorf("expected 5 tets for a voxel, got %d", v.NumTets())
	}
}

func TestNewVolumeErrors(t *testing.T) {
	g := cubeGrid()
	g.Types[0] = mesh.CellType(42)
	if _, err := NewVolume(g); err == nil {
		t.Error("expected error for unsupported cell type")
	}

	g = cubeGrid()
	g.Cells[0] = g.Cells[0][:6]
	if _, err := NewVolume(g); err == nil {
		t.Error("expected error for short hexahedron")
	}

	g = cubeGrid()
	g.Types = nil
	if _, err := NewVolume(g); err == nil {
		t.Error("expected error for missing cell types")
	}
}

func TestSampleLinearFields(t *testing.T) {
	grids := map[string]*mesh.Grid{
		"hexahedron": cubeGrid(),
		"voxel":      voxelGrid(),
	}
	for name, g := range grids {
		t.Run(name, func(t *testing.T) {
			v := mustVolume(t, g)
			p := geom.Vec3{X: 0.3, Y: 0.4, Z: 0.5}

			u, ok := v.SampleVector("U", p)
			if !ok {
				t.Fatal("expected sample inside the cube to succeed")
			}
			if u.Sub(p).Length() > 1e-9 {
				t.Errorf("expected identity field %v, got %v", p, u)
			}

			s, ok := v.SampleScalar("p", p)
			if !ok || math.Abs(s-0.5) > 1e-9 {
				t.Errorf("expected scalar 0.5, got %v (ok=%v)", s, ok)
			}
		})
	}
}

func TestSampleOutsideAndMissing(t *testing.T) {
	v := mustVolume(t, cubeGrid())

	if _, ok := v.SampleVector("U", geom.Vec3{X: 2, Y: 0.5, Z: 0.5}); ok {
		t.Error("expected sample outside the mesh to fail")
	}
	if _, ok := v.SampleVector("missing", geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}); ok {
		t.Error("expected sample of missing field to fail")
	}
	if _, ok := v.SampleScalar("missing", geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}); ok {
		t.Error("expected scalar sample of missing field to fail")
	}
}

func TestSampleCornersAndCenter(t *testing.T) {
	v := mustVolume(t, cubeGrid())
	for _, p := range []geom.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 1, Y: 0, Z: 0},
	} {
		u, ok := v.SampleVector("U", p)
		if !ok {
			t.Errorf("expected sample at %v to succeed", p)
			continue
		}
		if u.Sub(p).Length() > 1e-9 {
			t.Errorf("expected %v, got %v", p, u)
		}
	}
}

func triangleArea(a, b, c geom.Vec3) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
}

func TestSliceMidPlane(t *testing.T) {
	v := mustVolume(t, cubeGrid())
	s := v.Slice(geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, geom.Vec3{X: 0, Y: 0, Z: 1})

	if len(s.Polys) == 0 {
		t.Fatal("expected a non-empty slice")
	}

	area := 0.0
	for _, tri := range s.Triangles() {
		area += triangleArea(s.Points[tri[0]], s.Points[tri[1]], s.Points[tri[2]])
	}
	if math.Abs(area-1.0) > 1e-9 {
		t.Errorf("expected cross-section area 1, got %v", area)
	}

	for i, p := range s.Points {
		if math.Abs(p.Z-0.5) > 1e-9 {
			t.Errorf("point %d: expected z=0.5 on the cut plane, got %v", i, p.Z)
		}
	}

	pvals := s.Scalar("p")
	if pvals == nil {
		t.Fatal("expected interpolated scalar array on the slice")
	}
	for i, val := range pvals {
		if math.Abs(val-0.5) > 1e-9 {
			t.Errorf("point %d: expected interpolated p=0.5, got %v", i, val)
		}
	}

	uvals := s.Vector("U")
	if uvals == nil {
		t.Fatal("expected interpolated vector array on the slice")
	}
	for i, u := range uvals {
		if u.Sub(s.Points[i]).Length() > 1e-9 {
			t.Errorf("point %d: expected identity vector %v, got %v", i, s.Points[i], u)
		}
	}
}

func TestSliceMisses(t *testing.T) {
	v := mustVolume(t, cubeGrid())

	if s := v.Slice(geom.Vec3{X: 0, Y: 0, Z: 2}, geom.Vec3{X: 0, Y: 0, Z: 1}); len(s.Polys) != 0 {
		t.Errorf("expected empty slice above the mesh, got %d faces", len(s.Polys))
	}
	if s := v.Slice(geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, geom.Vec3{X: 0, Y: 0, Z: 0}); len(s.Polys) != 0 {
		t.Errorf("expected empty slice for zero normal, got %d faces", len(s.Polys))
	}
}

func TestSliceObliquePlane(t *testing.T) {
	v := mustVolume(t, cubeGrid())
	s := v.Slice(geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, geom.Vec3{X: 1, Y: 1, Z: 1})
	if len(s.Polys) == 0 {
		t.Fatal("expected oblique slice to intersect the cube")
	}
	n := geom.Vec3{X: 1, Y: 1, Z: 1}.Normalize()
	for i, p := range s.Points {
		if d := p.Sub(geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}).Dot(n); math.Abs(d) > 1e-9 {
			t.Errorf("point %d: expected on plane, distance %v", i, d)
		}
	}
}

func TestStreamlinesUniformFlow(t *testing.T) {
	g := cubeGrid()
	u := make([]geom.Vec3, len(g.Points))
	for i := range u {
		u[i] = geom.Vec3{X: 2, Y: 0, Z: 0}
	}
	g.Vectors["U"] = u
	v := mustVolume(t, g)

	seeds := []geom.Vec3{{X: 0.05, Y: 0.5, Z: 0.5}}
	s, err := v.Streamlines("U", seeds, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Lines) != 1 {
		t.Fatalf("expected 1 streamline, got %d", len(s.Lines))
	}
	line := s.Lines[0]
	if len(line) < 10 {
		t.Fatalf("expected a long trace, got %d points", len(line))
	}

	for i := 1; i < len(line); i++ {
		a, b := s.Points[line[i-1]], s.Points[line[i]]
		if b.X <= a.X {
			t.Fatalf("expected x to increase along the trace at point %d", i)
		}
	}
	last := s.Points[line[len(line)-1]]
	if last.X < 0.9 {
		t.Errorf("expected trace to approach the outlet, stopped at x=%v", last.X)
	}
	for _, idx := range line {
		p := s.Points[idx]
		if math.Abs(p.Y-0.5) > 1e-9 || math.Abs(p.Z-0.5) > 1e-9 {
			t.Errorf("expected straight trace, got point %v", p)
		}
	}

	vel := s.Vector("U")
	if vel == nil || vel[0] != (geom.Vec3{X: 2, Y: 0, Z: 0}) {
		t.Errorf("expected sampled velocity stored on the trace, got %v", vel)
	}
}

func TestStreamlinesEdgeCases(t *testing.T) {
	g := cubeGrid()
	v := mustVolume(t, g)

	if _, err := v.Streamlines("missing", []geom.Vec3{{X: 0.5, Y: 0.5, Z: 0.5}}, 10); err == nil {
		t.Error("expected error for missing vector field")
	}

	// stagnant field: traces never start
	g2 := cubeGrid()
	g2.Vectors["U"] = make([]geom.Vec3, len(g2.Points))
	v2 := mustVolume(t, g2)
	s, err := v2.Streamlines("U", []geom.Vec3{{X: 0.5, Y: 0.5, Z: 0.5}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Lines) != 0 || len(s.Points) != 0 {
		t.Errorf("expected no traces in a stagnant field, got %d lines %d points", len(s.Lines), len(s.Points))
	}

	// seed outside the mesh
	g3 := cubeGrid()
	u := make([]geom.Vec3, len(g3.Points))
	for i := range u {
		u[i] = geom.Vec3{X: 1, Y: 0, Z: 0}
	}
	g3.Vectors["U"] = u
	v3 := mustVolume(t, g3)
	s, err = v3.Streamlines("U", []geom.Vec3{{X: 5, Y: 5, Z: 5}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Lines) != 0 {
		t.Errorf("expected no trace from an outside seed, got %d", len(s.Lines))
	}

	// step cap
	s, err = v3.Streamlines("U", []geom.Vec3{{X: 0.05, Y: 0.5, Z: 0.5}}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Lines) != 1 || len(s.Lines[0]) != 5 {
		t.Errorf("expected trace capped at 5 points, got %v", s.Lines)
	}
}
