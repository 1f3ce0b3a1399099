package renderer

import (
	"math"

	"github.com/glassray/glassray/pkg/core"
)

// Camera is a simple pinhole camera
type Camera struct {
	origin     core.Vec3
	lowerLeft  core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
}

// NewCamera creates a pinhole camera looking from lookFrom toward lookAt.
// vfov is the vertical field of view in degrees.
func NewCamera(lookFrom, lookAt, up core.Vec3, vfov, aspect float64) *Camera {
	theta := vfov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	w := lookFrom.Subtract(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		origin: lookFrom,
		lowerLeft: lookFrom.
			Subtract(u.Multiply(halfWidth)).
			Subtract(v.Multiply(halfHeight)).
			Subtract(w),
		horizontal: u.Multiply(2 * halfWidth),
		vertical:   v.Multiply(2 * halfHeight),
	}
}

// GetRay returns the camera ray through normalized screen coordinates (s, t)
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Normalize()
	return core.NewRay(c.origin, direction)
}
