package field

import (
	"fmt"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// stagnationSpeed is the velocity magnitude below which integration
// stops.
const stagnationSpeed = 1e-9

// Streamlines traces the named vector field from each seed point with
// fourth-order Runge-Kutta steps of fixed arc length (1/200 of the
// mesh diagonal). A trace ends when it leaves the mesh, stagnates, or
// reaches maxSteps. Seeds that yield fewer than two points are
// dropped. The result carries the sampled field at every point under
// the field's name.
func (v *Volume) Streamlines(name string, seeds []geom.Vec3, maxSteps int) (*mesh.PolyData, error) {
	if v.Grid.Vector(name) == nil {
		return nil, fmt.Errorf("field: no vector field %q", name)
	}

	out := mesh.NewPolyData()
	h := v.bounds.Diagonal() / 200
	if h <= 0 {
		return out, nil
	}

	// direction samples the unit tangent; ok is false outside the mesh
	// or at stagnation points.
	direction := func(p geom.Vec3) (geom.Vec3, bool) {
		u, ok := v.SampleVector(name, p)
		if !ok || u.Length() < stagnationSpeed {
			return geom.Vec3{}, false
		}
		return u.Normalize(), true
	}

	for _, seed := range seeds {
		start := len(out.Points)
		p := seed
		for step := 0; step < maxSteps; step++ {
			u, ok := v.SampleVector(name, p)
			if !ok || u.Length() < stagnationSpeed {
				break
			}
			out.Points = append(out.Points, p)
			out.Vectors[name] = append(out.Vectors[name], u)

			k1 := u.Normalize()
			k2, ok := direction(p.Add(k1.Scale(h / 2)))
			if !ok {
				break
			}
			k3, ok := direction(p.Add(k2.Scale(h / 2)))
			if !ok {
				break
			}
			k4, ok := direction(p.Add(k3.Scale(h)))
			if !ok {
				break
			}
			p = p.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(h / 6))
		}

		n := len(out.Points) - start
		if n < 2 {
			// too short to draw; discard the orphan point
			out.Points = out.Points[:start]
			out.Vectors[name] = out.Vectors[name][:start]
			continue
		}
		line := make([]int, n)
		for i := range line {
			line[i] = start + i
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}
