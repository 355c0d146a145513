// Package primitive implements the world-space geometric objects that
// the BVH stores and the integrator intersects against. The variant
// set is closed and currently has one member, Sphere.
package primitive

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Primitive is the capability set every geometric variant must
// provide. Integrator and scene code depend only on this set, never on
// variant identity.
type Primitive interface {
	// AABB returns the world-space bounding box of the primitive.
	AABB() core.AABB
	// Intersect finds the closest intersection with ray in [tMin, tMax].
	Intersect(ray core.Ray, tMin, tMax core.F) (Intersection, bool)
	// Intersects is an any-hit test. Sphere's implementation delegates
	// to Intersect, so it costs the same as a full intersection.
	Intersects(ray core.Ray, tMin, tMax core.F) bool
	// Area returns the surface area of the primitive.
	Area() core.F
	// SolidAngle returns the solid angle subtended by the primitive as
	// seen from the given point.
	SolidAngle(from core.Vec3) core.F
	// RandomPointOnSurface samples a uniformly distributed point on the
	// primitive's surface.
	RandomPointOnSurface(rng core.Random) core.Vec3
	// RandomDirectionTowards samples a direction from "from" that is
	// biased to hit the primitive, for direct light sampling.
	RandomDirectionTowards(from core.Vec3, rng core.Random) core.Vec3
}

// Intersection is the geometric result of a primitive/ray test: no
// material information, just the hit geometry (see scene.Intersection
// for the material-carrying extension).
type Intersection struct {
	T       core.F
	Point   core.Vec3
	Normal  core.Vec3 // unit length, outward-facing if Outside
	Outside bool      // true when the ray originated outside the surface
}

// Sphere is the one implemented primitive variant. Rotation is carried
// for parity with the data model (an object's rigid transform) but
// unused by a sphere's intersection math, which is rotation-invariant.
type Sphere struct {
	Origin   core.Vec3
	Rotation core.Vec3 // unused; spheres are rotationally symmetric
	Radius   core.F
}

var _ Primitive = Sphere{}

// AABB returns the world-space bounds of the sphere.
func (s Sphere) AABB() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Origin.Subtract(r), s.Origin.Add(r))
}

// Intersect solves the analytic ray/sphere quadratic. A tangent hit
// (discriminant == 0) is treated as a miss; a grazing ray should not
// count as a hit.
func (s Sphere) Intersect(ray core.Ray, tMin, tMax core.F) (Intersection, bool) {
	oc := ray.Origin.Subtract(s.Origin)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	d := b*b - c

	if d <= 0 {
		return Intersection{}, false
	}

	sqrtD := math.Sqrt(d)
	t0 := -b - sqrtD
	t1 := -b + sqrtD

	var t core.F
	var outside bool
	switch {
	case t0 >= tMin && t0 <= tMax:
		t, outside = t0, true
	case t1 >= tMin && t1 <= tMax:
		t, outside = t1, false
	default:
		return Intersection{}, false
	}

	point := ray.At(t)
	var normal core.Vec3
	if outside {
		normal = point.Subtract(s.Origin).Multiply(1 / s.Radius)
	} else {
		normal = s.Origin.Subtract(point).Multiply(1 / s.Radius)
	}

	return Intersection{T: t, Point: point, Normal: normal, Outside: outside}, true
}

// Intersects is the default any-hit test, delegating to Intersect.
func (s Sphere) Intersects(ray core.Ray, tMin, tMax core.F) bool {
	_, ok := s.Intersect(ray, tMin, tMax)
	return ok
}

// Area returns the surface area of the sphere, 4*pi*r^2.
func (s Sphere) Area() core.F {
	return 4 * math.Pi * s.Radius * s.Radius
}

// SolidAngle returns the solid angle subtended by the sphere as seen
// from "from": Omega = 2*pi*(1 - sqrt(1 - r^2/d^2)).
func (s Sphere) SolidAngle(from core.Vec3) core.F {
	distSq := from.Subtract(s.Origin).LengthSquared()
	if distSq <= s.Radius*s.Radius {
		// Inside the sphere: the whole sphere of directions is covered.
		return 4 * math.Pi
	}
	return 2 * math.Pi * (1 - math.Sqrt(1-s.Radius*s.Radius/distSq))
}

// RandomPointOnSurface samples a uniform point on S^2 scaled to the
// sphere's radius and centered at its origin.
func (s Sphere) RandomPointOnSurface(rng core.Random) core.Vec3 {
	return s.Origin.Add(rng.UnitVector().Multiply(s.Radius))
}

// sphereSampleShrink is the epsilon the radius is shrunk by when
// sampling a direction towards the sphere, so the resulting ray
// reliably re-intersects the sphere despite floating-point error at
// grazing angles.
const sphereSampleShrink = 0.01

// RandomDirectionTowards samples a uniform point on a slightly
// shrunk sphere and returns the direction from "from" to that point.
func (s Sphere) RandomDirectionTowards(from core.Vec3, rng core.Random) core.Vec3 {
	shrunk := s.Radius - sphereSampleShrink
	if shrunk < 0 {
		shrunk = 0
	}
	target := s.Origin.Add(rng.UnitVector().Multiply(shrunk))
	return target.Subtract(from).Normalize()
}
