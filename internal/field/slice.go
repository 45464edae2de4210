package field

import (
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// slicer accumulates cut points with point data interpolated from the
// source grid along the cut edges.
type slicer struct {
	g   *mesh.Grid
	out *mesh.PolyData
}

func (s *slicer) cut(a, b int, t float64) int {
	idx := len(s.out.Points)
	s.out.Points = append(s.out.Points, s.g.Points[a].Lerp(s.g.Points[b], t))
	for name, vals := range s.g.Scalars {
		s.out.Scalars[name] = append(s.out.Scalars[name], vals[a]+(vals[b]-vals[a])*t)
	}
	for name, vecs := range s.g.Vectors {
		s.out.Vectors[name] = append(s.out.Vectors[name], vecs[a].Lerp(vecs[b], t))
	}
	return idx
}

// Slice cuts the volume with the plane through origin with the given
// normal and returns the cross-section surface, carrying every point
// data array of the volume interpolated onto the cut. A zero normal
// yields an empty mesh.
func (v *Volume) Slice(origin, normal geom.Vec3) *mesh.PolyData {
	out := mesh.NewPolyData()
	n := normal.Normalize()
	if n == (geom.Vec3{}) {
		return out
	}

	s := &slicer{g: v.Grid, out: out}
	for _, t := range v.tets {
		var d [4]float64
		var pos, neg [4]int
		np, nn := 0, 0
		for i := 0; i < 4; i++ {
			d[i] = v.Grid.Points[t[i]].Sub(origin).Dot(n)
			if d[i] >= 0 {
				pos[np] = i
				np++
			} else {
				neg[nn] = i
				nn++
			}
		}
		if np == 0 || nn == 0 {
			continue
		}

		edge := func(i, k int) int {
			return s.cut(t[i], t[k], d[i]/(d[i]-d[k]))
		}

		switch np {
		case 1:
			i := pos[0]
			out.Polys = append(out.Polys, []int{
				edge(i, neg[0]), edge(i, neg[1]), edge(i, neg[2]),
			})
		case 3:
			k := neg[0]
			out.Polys = append(out.Polys, []int{
				edge(pos[0], k), edge(pos[1], k), edge(pos[2], k),
			})
		case 2:
			i, j := pos[0], pos[1]
			k, l := neg[0], neg[1]
			q0 := edge(i, k)
			q1 := edge(i, l)
			q2 := edge(j, l)
			q3 := edge(j, k)
			out.Polys = append(out.Polys, []int{q0, q1, q2}, []int{q0, q2, q3})
		}
	}
	return out
}
