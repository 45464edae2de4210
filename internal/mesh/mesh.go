// Package mesh defines the geometry containers produced by the VTK
// reader and consumed by the field and render packages: polygonal
// surfaces and unstructured volume grids with named point data.
package mesh

import "github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"

// PolyData is a surface mesh: points plus polygonal faces and
// polylines, with optional named point-data arrays.
type PolyData struct {
	Points []geom.Vec3
	Polys  [][]int
	Lines  [][]int

	Scalars map[string][]float64
	Vectors map[string][]geom.Vec3
}

// NewPolyData returns an empty surface mesh.
func NewPolyData() *PolyData {
	return &PolyData{
		Scalars: make(map[string][]float64),
		Vectors: make(map[string][]geom.Vec3),
	}
}

// NumPoints returns the number of points in the mesh.
func (m *PolyData) NumPoints() int { return len(m.Points) }

// NumCells returns the number of faces plus polylines.
func (m *PolyData) NumCells() int { return len(m.Polys) + len(m.Lines) }

// Bounds returns the axis-aligned bounding box of all points.
func (m *PolyData) Bounds() geom.Box3 {
	b := geom.EmptyBox()
	for _, p := range m.Points {
		b = b.Expand(p)
	}
	return b
}

// Center returns the center of the bounding box.
func (m *PolyData) Center() geom.Vec3 {
	return m.Bounds().Center()
}

// Translate moves every point of the mesh by d in place.
func (m *PolyData) Translate(d geom.Vec3) {
	for i := range m.Points {
		m.Points[i] = m.Points[i].Add(d)
	}
}

// Triangles fan-triangulates every face and returns the resulting
// triangle index list. Faces with fewer than three vertices are
// skipped.
func (m *PolyData) Triangles() [][3]int {
	var tris [][3]int
	for _, poly := range m.Polys {
		if len(poly) < 3 {
			continue
		}
		for i := 1; i < len(poly)-1; i++ {
			tris = append(tris, [3]int{poly[0], poly[i], poly[i+1]})
		}
	}
	return tris
}

// Scalar returns the named scalar array, or nil if absent.
func (m *PolyData) Scalar(name string) []float64 {
	if m.Scalars == nil {
		return nil
	}
	return m.Scalars[name]
}

// Vector returns the named vector array, or nil if absent.
func (m *PolyData) Vector(name string) []geom.Vec3 {
	if m.Vectors == nil {
		return nil
	}
	return m.Vectors[name]
}

// VectorMagnitudes computes per-point magnitudes of the named vector
// array, or nil if the array is absent.
func (m *PolyData) VectorMagnitudes(name string) []float64 {
	vecs := m.Vector(name)
	if vecs == nil {
		return nil
	}
	mags := make([]float64, len(vecs))
	for i, v := range vecs {
		mags[i] = v.Length()
	}
	return mags
}
