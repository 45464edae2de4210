package field

import (
	"math"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
)

// locator is a uniform grid over the mesh bounds. Each bin lists the
// tetrahedra whose bounding boxes overlap it, so point location only
// tests a handful of candidates.
type locator struct {
	bounds     geom.Box3
	nx, ny, nz int
	inv        geom.Vec3 // bins per unit length along each axis
	bins       [][]int
}

func newLocator(points []geom.Vec3, tets []tet, bounds geom.Box3) *locator {
	l := &locator{bounds: bounds}
	if bounds.IsEmpty() || len(tets) == 0 {
		l.nx, l.ny, l.nz = 1, 1, 1
		l.bins = make([][]int, 1)
		return l
	}

	res := int(math.Cbrt(float64(len(tets)) / 4))
	if res < 1 {
		res = 1
	}
	if res > 64 {
		res = 64
	}
	l.nx, l.ny, l.nz = res, res, res

	size := bounds.Size()
	l.inv = geom.Vec3{
		X: axisScale(size.X, l.nx),
		Y: axisScale(size.Y, l.ny),
		Z: axisScale(size.Z, l.nz),
	}
	l.bins = make([][]int, l.nx*l.ny*l.nz)

	for ti, t := range tets {
		tb := geom.EmptyBox()
		for _, pi := range t {
			tb = tb.Expand(points[pi])
		}
		x0, y0, z0 := l.cellOf(tb.Min)
		x1, y1, z1 := l.cellOf(tb.Max)
		for z := z0; z <= z1; z++ {
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					idx := (z*l.ny+y)*l.nx + x
					l.bins[idx] = append(l.bins[idx], ti)
				}
			}
		}
	}
	return l
}

func axisScale(extent float64, n int) float64 {
	if extent <= 0 {
		return 0
	}
	return float64(n) / extent
}

func (l *locator) cellOf(p geom.Vec3) (x, y, z int) {
	x = clampCell(int((p.X-l.bounds.Min.X)*l.inv.X), l.nx)
	y = clampCell(int((p.Y-l.bounds.Min.Y)*l.inv.Y), l.ny)
	z = clampCell(int((p.Z-l.bounds.Min.Z)*l.inv.Z), l.nz)
	return
}

func clampCell(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// candidates returns the tetrahedra that may contain p.
func (l *locator) candidates(p geom.Vec3) []int {
	if !l.bounds.Contains(p) {
		return nil
	}
	x, y, z := l.cellOf(p)
	return l.bins[(z*l.ny+y)*l.nx+x]
}
