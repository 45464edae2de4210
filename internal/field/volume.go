// Package field provides sampling, plane slicing and streamline
// tracing over unstructured CFD volume meshes. All algorithms work on
// a tetrahedral decomposition of the grid cells, so linear point data
// is interpolated exactly.
package field

import (
	"fmt"
	"math"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// tetsPerCell lists, per supported cell type, the corner selections
// that split the cell into tetrahedra.
var tetsPerCell = map[mesh.CellType][][4]int{
	mesh.CellTetra: {{0, 1, 2, 3}},
	mesh.CellHexahedron: {
		{0, 1, 3, 4},
		{1, 2, 3, 6},
		{1, 3, 4, 6},
		{1, 4, 5, 6},
		{3, 4, 6, 7},
	},
	mesh.CellWedge: {
		{0, 1, 2, 3},
		{1, 2, 3, 4},
		{2, 3, 4, 5},
	},
	mesh.CellPyramid: {
		{0, 1, 2, 4},
		{0, 2, 3, 4},
	},
}

// voxelToHex reorders VTK voxel corners into hexahedron order.
var voxelToHex = [8]int{0, 1, 3, 2, 4, 5, 7, 6}

type tet [4]int

// Volume is an unstructured grid prepared for field queries.
type Volume struct {
	Grid *mesh.Grid

	tets   []tet
	bounds geom.Box3
	loc    *locator
}

// NewVolume decomposes the grid cells into tetrahedra and indexes them
// for point location. Cells of an unsupported type are rejected.
func NewVolume(g *mesh.Grid) (*Volume, error) {
	v := &Volume{Grid: g, bounds: g.Bounds()}
	for i, cell := range g.Cells {
		if i >= len(g.Types) {
			return nil, fmt.Errorf("field: cell %d has no cell type", i)
		}
		ct := g.Types[i]

		corners := cell
		if ct == mesh.CellVoxel {
			if len(cell) != 8 {
				return nil, fmt.Errorf("field: voxel cell %d has %d corners", i, len(cell))
			}
			remapped := make([]int, 8)
			for j, src := range voxelToHex {
				remapped[j] = cell[src]
			}
			corners = remapped
			ct = mesh.CellHexahedron
		}

		split, ok := tetsPerCell[ct]
		if !ok {
			return nil, fmt.Errorf("field: unsupported cell type %d in cell %d", g.Types[i], i)
		}
		need := 0
		for _, s := range split {
			for _, c := range s {
				if c > need {
					need = c
				}
			}
		}
		if len(corners) <= need {
			return nil, fmt.Errorf("field: cell %d has %d corners, type %d needs %d", i, len(corners), g.Types[i], need+1)
		}
		for _, s := range split {
			v.tets = append(v.tets, tet{corners[s[0]], corners[s[1]], corners[s[2]], corners[s[3]]})
		}
	}
	v.loc = newLocator(g.Points, v.tets, v.bounds)
	return v, nil
}

// Bounds returns the bounding box of the volume mesh.
func (v *Volume) Bounds() geom.Box3 { return v.bounds }

// NumTets returns the number of tetrahedra in the decomposition.
func (v *Volume) NumTets() int { return len(v.tets) }

const baryEps = 1e-9

// barycentric computes the weights of p in tetrahedron t. ok is false
// when p lies outside or the tetrahedron is degenerate.
func (v *Volume) barycentric(t tet, p geom.Vec3) (w [4]float64, ok bool) {
	a := v.Grid.Points[t[0]]
	e1 := v.Grid.Points[t[1]].Sub(a)
	e2 := v.Grid.Points[t[2]].Sub(a)
	e3 := v.Grid.Points[t[3]].Sub(a)
	r := p.Sub(a)

	det := e1.Dot(e2.Cross(e3))
	if math.Abs(det) < 1e-30 {
		return w, false
	}
	u := r.Dot(e2.Cross(e3)) / det
	s := e1.Dot(r.Cross(e3)) / det
	q := e1.Dot(e2.Cross(r)) / det
	if u < -baryEps || s < -baryEps || q < -baryEps || u+s+q > 1+baryEps {
		return w, false
	}
	w[0] = 1 - u - s - q
	w[1] = u
	w[2] = s
	w[3] = q
	return w, true
}

// findTet locates the tetrahedron containing p.
func (v *Volume) findTet(p geom.Vec3) (tet, [4]float64, bool) {
	for _, ti := range v.loc.candidates(p) {
		t := v.tets[ti]
		if w, ok := v.barycentric(t, p); ok {
			return t, w, true
		}
	}
	return tet{}, [4]float64{}, false
}

// SampleVector interpolates the named vector field at p. ok is false
// when p is outside the mesh or the field does not exist.
func (v *Volume) SampleVector(name string, p geom.Vec3) (geom.Vec3, bool) {
	vecs := v.Grid.Vector(name)
	if vecs == nil {
		return geom.Vec3{}, false
	}
	t, w, ok := v.findTet(p)
	if !ok {
		return geom.Vec3{}, false
	}
	var out geom.Vec3
	for i := 0; i < 4; i++ {
		out = out.Add(vecs[t[i]].Scale(w[i]))
	}
	return out, true
}

// SampleScalar interpolates the named scalar field at p.
func (v *Volume) SampleScalar(name string, p geom.Vec3) (float64, bool) {
	vals := v.Grid.Scalar(name)
	if vals == nil {
		return 0, false
	}
	t, w, ok := v.findTet(p)
	if !ok {
		return 0, false
	}
	var out float64
	for i := 0; i < 4; i++ {
		out += vals[t[i]] * w[i]
	}
	return out, true
}
