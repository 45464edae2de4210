package mesh

import "github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"

// CellType identifies the shape of an unstructured grid cell. The
// values follow the VTK file format.
type CellType uint8

const (
	CellTetra      CellType = 10
	CellVoxel      CellType = 11
	CellHexahedron CellType = 12
	CellWedge      CellType = 13
	CellPyramid    CellType = 14
)

// Grid is an unstructured volume mesh: points, cell connectivity, one
// cell type per cell, and optional named point-data arrays.
type Grid struct {
	Points []geom.Vec3
	Cells  [][]int
	Types  []CellType

	Scalars map[string][]float64
	Vectors map[string][]geom.Vec3
}

// NewGrid returns an empty unstructured grid.
func NewGrid() *Grid {
	return &Grid{
		Scalars: make(map[string][]float64),
		Vectors: make(map[string][]geom.Vec3),
	}
}

// NumPoints returns the number of points in the grid.
func (g *Grid) NumPoints() int { return len(g.Points) }

// NumCells returns the number of cells in the grid.
func (g *Grid) NumCells() int { return len(g.Cells) }

// Bounds returns the axis-aligned bounding box of all points.
func (g *Grid) Bounds() geom.Box3 {
	b := geom.EmptyBox()
	for _, p := range g.Points {
		b = b.Expand(p)
	}
	return b
}

// Center returns the center of the bounding box.
func (g *Grid) Center() geom.Vec3 {
	return g.Bounds().Center()
}

// Scalar returns the named scalar array, or nil if absent.
func (g *Grid) Scalar(name string) []float64 {
	if g.Scalars == nil {
		return nil
	}
	return g.Scalars[name]
}

// Vector returns the named vector array, or nil if absent.
func (g *Grid) Vector(name string) []geom.Vec3 {
	if g.Vectors == nil {
		return nil
	}
	return g.Vectors[name]
}
