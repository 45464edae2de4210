package mesh

import "github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"

// ExplodeOffsets computes the displacement of each part for an
// exploded assembly view: each part moves away from the global center
// along the direction from the center to its own center, scaled by
// factor. Parts whose center coincides with the global center stay
// put.
func ExplodeOffsets(centers []geom.Vec3, global geom.Vec3, factor float64) []geom.Vec3 {
	offsets := make([]geom.Vec3, len(centers))
	for i, c := range centers {
		dir := c.Sub(global)
		if dir.Length() == 0 {
			continue
		}
		offsets[i] = dir.Normalize().Scale(factor)
	}
	return offsets
}
