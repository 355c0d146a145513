// Package scene flattens a world.World's objects into world-space
// primitives, builds a BVH over them, and answers ray-intersection
// queries the integrator needs, including the material each hit
// belongs to and the list of emitting primitives for direct light
// sampling.
package scene

import (
	"github.com/df07/go-path-tracer/pkg/bvh"
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/primitive"
	"github.com/df07/go-path-tracer/pkg/world"
)

// Intersection extends primitive.Intersection with the material the
// hit primitive scatters/emits through.
type Intersection struct {
	primitive.Intersection
	Material world.MaterialRef
}

// Emitter is one emitting primitive, recorded for uniform light
// selection during direct-light sampling.
type Emitter struct {
	Primitive primitive.Primitive
	Material  world.MaterialRef
}

// Scene is the flattened, ray-traceable form of a World: every object's
// shape, transformed into world space, paired with its material, and
// indexed by a BVH for fast intersection.
type Scene struct {
	world      *world.World
	primitives []flatPrimitive
	emitters   []Emitter
	bvh        *bvh.BVH
}

type flatPrimitive struct {
	primitive primitive.Primitive
	material  world.MaterialRef
}

// New flattens every object in w into world-space primitives and builds
// a BVH over them. A Shape may expand into more than one Primitive (for
// composite shapes); every such Primitive inherits the Object's
// Material.
func New(w *world.World) *Scene {
	s := &Scene{world: w}

	var entries []bvh.Entry
	for i := 0; i < w.ObjectCount(); i++ {
		ref := w.ObjectRefAt(i)
		obj := w.Object(ref)
		shape := w.Shape(obj.Shape)

		for _, p := range shape.AsTransformedPrimitives(obj.Transform) {
			idx := bvh.PrimitiveRef(len(s.primitives))
			s.primitives = append(s.primitives, flatPrimitive{primitive: p, material: obj.Material})
			entries = append(entries, bvh.Entry{Ref: idx, AABB: p.AABB()})

			if w.Material(obj.Material).Emits() {
				s.emitters = append(s.emitters, Emitter{Primitive: p, Material: obj.Material})
			}
		}
	}

	s.bvh = bvh.Build(entries)
	return s
}

// World returns the World this Scene was flattened from, so materials
// and albedos referenced by a hit can be resolved.
func (s *Scene) World() *world.World {
	return s.world
}

// Emitters returns every emitting primitive in the scene, for uniform
// light selection.
func (s *Scene) Emitters() []Emitter {
	return s.emitters
}

// Intersect finds the closest intersection with ray in [tMin, tMax],
// combining candidates by keeping the one with the smaller T.
func (s *Scene) Intersect(ray core.Ray, tMin, tMax core.F) (Intersection, bool) {
	find := func(r core.Ray, ref bvh.PrimitiveRef) (Intersection, bool) {
		fp := s.primitives[ref]
		hit, ok := fp.primitive.Intersect(r, tMin, tMax)
		if !ok {
			return Intersection{}, false
		}
		return Intersection{Intersection: hit, Material: fp.material}, true
	}

	combine := func(a, b Intersection) Intersection {
		if a.T <= b.T {
			return a
		}
		return b
	}

	return bvh.FindIntersection(s.bvh, ray, find, combine, tMin, tMax)
}

// Bounds returns the world-space bounding box of the whole scene.
func (s *Scene) Bounds() core.AABB {
	return s.bvh.Bounds()
}
