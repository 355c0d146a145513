// Package camera implements the pinhole camera model: a position and
// orientation plus a vertical field of view, producing a primary ray
// for any normalized screen coordinate.
package camera

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Camera generates primary rays for normalized screen coordinates
// s, t in [0, 1], with (0, 0) at the lower-left of the image.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// New builds a pinhole camera. vfov is the vertical field of view in
// radians; aspectRatio is width/height.
func New(lookFrom, lookAt, up core.Vec3, vfov, aspectRatio core.F) Camera {
	h := math.Tan(vfov / 2)
	viewportHeight := 2 * h
	viewportWidth := viewportHeight * aspectRatio

	w := lookFrom.Subtract(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := lookFrom
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// GetRay returns the ray from the camera's origin through normalized
// screen coordinate (s, t).
func (c Camera) GetRay(s, t core.F) core.Ray {
	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))
	return core.NewRayTowards(c.origin, target)
}
