package mesh

import "github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"

// Combine merges several surface meshes into one. Point indices in
// faces and lines are offset so each input keeps its geometry. Data
// arrays missing from an input are zero-filled over that input's
// points so every output array covers every point.
func Combine(parts ...*PolyData) *PolyData {
	out := NewPolyData()

	scalarNames := map[string]bool{}
	vectorNames := map[string]bool{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		for name := range p.Scalars {
			scalarNames[name] = true
		}
		for name := range p.Vectors {
			vectorNames[name] = true
		}
	}

	for _, p := range parts {
		if p == nil {
			continue
		}
		offset := len(out.Points)
		out.Points = append(out.Points, p.Points...)

		for _, poly := range p.Polys {
			shifted := make([]int, len(poly))
			for i, idx := range poly {
				shifted[i] = idx + offset
			}
			out.Polys = append(out.Polys, shifted)
		}
		for _, line := range p.Lines {
			shifted := make([]int, len(line))
			for i, idx := range line {
				shifted[i] = idx + offset
			}
			out.Lines = append(out.Lines, shifted)
		}

		for name := range scalarNames {
			src := p.Scalar(name)
			if src == nil {
				src = make([]float64, len(p.Points))
			}
			out.Scalars[name] = append(out.Scalars[name], src...)
		}
		for name := range vectorNames {
			src := p.Vector(name)
			if src == nil {
				src = make([]geom.Vec3, len(p.Points))
			}
			out.Vectors[name] = append(out.Vectors[name], src...)
		}
	}
	return out
}
