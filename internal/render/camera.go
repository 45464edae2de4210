package render

import (
	"math"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
)

var worldUp = geom.Vec3{Z: 1}

// Camera is an orthographic camera orbiting a focal point. The default
// view is isometric: looking back along (1,1,1) with +Z up. Azimuth
// spins the view about +Z, elevation tilts it about the screen right
// axis, zoom scales the projection.
type Camera struct {
	azimuth   float64 // degrees
	elevation float64 // degrees
	zoom      float64

	focal geom.Vec3
	diag  float64
}

// NewCamera returns an isometric camera with zoom 1 looking at the
// origin.
func NewCamera() *Camera {
	return &Camera{zoom: 1, diag: 1}
}

// Reset restores the isometric view and zoom 1.
func (c *Camera) Reset() {
	c.azimuth = 0
	c.elevation = 0
	c.zoom = 1
}

// SetAzimuth sets the orbit angle about +Z in degrees.
func (c *Camera) SetAzimuth(deg float64) { c.azimuth = deg }

// SetElevation sets the tilt angle in degrees; positive looks down
// from above.
func (c *Camera) SetElevation(deg float64) { c.elevation = deg }

// SetZoom sets the zoom factor; values above 1 enlarge the scene.
func (c *Camera) SetZoom(z float64) {
	if z > 0 {
		c.zoom = z
	}
}

// Focus aims the camera at the center of b and scales the projection
// so the whole box fits the viewport at zoom 1.
func (c *Camera) Focus(b geom.Box3) {
	if b.IsEmpty() {
		c.focal = geom.Vec3{}
		c.diag = 1
		return
	}
	c.focal = b.Center()
	c.diag = b.Diagonal()
	if c.diag == 0 {
		c.diag = 1
	}
}

// direction returns the unit vector from the focal point toward the
// camera.
func (c *Camera) direction() geom.Vec3 {
	dir := geom.Vec3{X: 1, Y: 1, Z: 1}.Normalize()
	dir = dir.RotateZ(c.azimuth * math.Pi / 180)
	right := dir.Cross(worldUp)
	if right.Length() < 1e-12 {
		right = geom.Vec3{X: 1}
	}
	return dir.RotateAbout(right.Normalize(), c.elevation*math.Pi/180)
}

// Project maps a world point into viewport pixel coordinates plus a
// depth value; larger depth is closer to the camera.
func (c *Camera) Project(p geom.Vec3, vw, vh int) (x, y, depth float64) {
	dir := c.direction()
	right := worldUp.Cross(dir)
	if right.Length() < 1e-12 {
		right = geom.Vec3{X: 1}
	}
	right = right.Normalize()
	up := dir.Cross(right).Normalize()

	short := vw
	if vh < short {
		short = vh
	}
	scale := c.zoom * float64(short) / c.diag

	rel := p.Sub(c.focal)
	x = float64(vw)/2 + rel.Dot(right)*scale
	y = float64(vh)/2 - rel.Dot(up)*scale
	depth = rel.Dot(dir)
	return
}
