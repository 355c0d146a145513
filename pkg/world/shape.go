package world

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/primitive"
)

// ShapeRef is an opaque, stable handle into a World's shape arena.
type ShapeRef struct{ i index }

// Shape is the closed variant set of untransformed, object-local
// geometry a World can instantiate. Unlike primitive.Primitive, a
// Shape has no world position; AsTransformedPrimitives applies an
// object's rigid transform to produce world-space primitives.
type Shape interface {
	AsTransformedPrimitives(transform Isometry) []primitive.Primitive
}

// SphereShape is a sphere of the given radius, centered at its
// object's origin once transformed.
type SphereShape struct {
	Radius core.F
}

var _ Shape = SphereShape{}

// AsTransformedPrimitives places the sphere at the transform's
// translation; rotation is carried through (sphere intersection is
// rotation-invariant, but the rotation is still recorded on the
// resulting primitive per the data model).
func (s SphereShape) AsTransformedPrimitives(t Isometry) []primitive.Primitive {
	return []primitive.Primitive{
		primitive.Sphere{
			Origin:   t.Translation,
			Rotation: t.Rotation,
			Radius:   s.Radius,
		},
	}
}

// Isometry is a rigid 3D transform: rotation (Euler angles, radians,
// applied X then Y then Z) plus translation. No scale -- object shapes
// carry their own size (e.g. Sphere.Radius).
type Isometry struct {
	Rotation    core.Vec3
	Translation core.Vec3
}

// Identity returns the identity isometry.
func Identity() Isometry {
	return Isometry{}
}

// Translate returns the isometry that translates by v with no rotation.
func Translate(v core.Vec3) Isometry {
	return Isometry{Translation: v}
}
