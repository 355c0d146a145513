// Package examplescenes builds small, self-contained demo scenes. Each
// builder returns a World and a matching Camera, ready to hand to
// scene.New and pkg/renderer.
package examplescenes

import (
	"math"
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/camera"
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/world"
)

// Built pairs a constructed World with the Camera meant to view it.
type Built struct {
	World  *world.World
	Camera camera.Camera
}

func squareCamera(lookFrom, lookAt core.Vec3, vfovDegrees core.F) camera.Camera {
	return camera.New(lookFrom, lookAt, core.NewVec3(0, 1, 0), vfovDegrees*math.Pi/180, 1.0)
}

// SingleSphere is a single Lambertian sphere at the origin viewed
// against a flat background, with no other light source: material
// shading alone determines the image.
func SingleSphere() Built {
	w := world.New()
	albedo := w.AddSolidAlbedo(core.NewVec3(0.5, 0.5, 0.5))
	mat := w.AddLambertianMaterial(albedo)
	sphere := w.AddSphere(1)
	w.AddObject(sphere, mat, world.Identity())

	cam := squareCamera(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 0), 45)
	return Built{World: w, Camera: cam}
}

// MirrorSphere is a single ideal-mirror sphere at the origin; with no
// other geometry in the scene, every camera ray reflects back into the
// background.
func MirrorSphere() Built {
	w := world.New()
	mat := w.AddMirrorMaterial()
	sphere := w.AddSphere(1)
	w.AddObject(sphere, mat, world.Identity())

	cam := squareCamera(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 0), 45)
	return Built{World: w, Camera: cam}
}

// EmitterOnly is a single emitting sphere with no reflective geometry,
// exercising direct light sampling against an otherwise-dark scene.
func EmitterOnly() Built {
	w := world.New()
	albedo := w.AddSolidAlbedo(core.NewVec3(1, 1, 1))
	mat := w.AddEmittingMaterial(albedo, 10)
	sphere := w.AddSphere(1)
	w.AddObject(sphere, mat, world.Identity())

	cam := squareCamera(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 0), 45)
	return Built{World: w, Camera: cam}
}

// Shadow places a mirror sphere above a large Lambertian ground plane
// (approximated by a large sphere) and an emitter off to one side, so
// the ground on the far side of the mirror from the light, around
// (-2.5, 0, 0), falls in its shadow while the ground directly beneath
// the light does not.
func Shadow() Built {
	w := world.New()

	groundAlbedo := w.AddSolidAlbedo(core.NewVec3(0.6, 0.6, 0.6))
	groundMat := w.AddLambertianMaterial(groundAlbedo)
	ground := w.AddSphere(1000)
	w.AddObject(ground, groundMat, world.Translate(core.NewVec3(0, -1000, 0)))

	mirrorMat := w.AddMirrorMaterial()
	mirror := w.AddSphere(1)
	w.AddObject(mirror, mirrorMat, world.Translate(core.NewVec3(0, 2, 0)))

	lightAlbedo := w.AddSolidAlbedo(core.NewVec3(1, 1, 1))
	lightMat := w.AddEmittingMaterial(lightAlbedo, 20)
	light := w.AddSphere(2)
	w.AddObject(light, lightMat, world.Translate(core.NewVec3(5, 6, 0)))

	cam := camera.New(core.NewVec3(0, 3, 8), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), 45*math.Pi/180, 1.0)
	return Built{World: w, Camera: cam}
}

// BVHStress scatters numSpheres small Lambertian spheres at jittered
// grid positions, large enough to make brute-force intersection
// noticeably slower than the BVH and to exercise SAH construction on a
// non-trivial primitive count.
func BVHStress(numSpheres int, seed int64) Built {
	w := world.New()
	rng := rand.New(rand.NewSource(seed))

	side := int(math.Ceil(math.Cbrt(core.F(numSpheres))))
	spacing := core.F(2.5)

	placed := 0
	for x := 0; x < side && placed < numSpheres; x++ {
		for y := 0; y < side && placed < numSpheres; y++ {
			for z := 0; z < side && placed < numSpheres; z++ {
				if placed >= numSpheres {
					break
				}
				color := core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
				albedo := w.AddSolidAlbedo(color)
				mat := w.AddLambertianMaterial(albedo)
				shape := w.AddSphere(0.4)

				center := core.NewVec3(
					(core.F(x)-core.F(side)/2)*spacing,
					(core.F(y)-core.F(side)/2)*spacing,
					(core.F(z)-core.F(side)/2)*spacing,
				)
				w.AddObject(shape, mat, world.Translate(center))
				placed++
			}
		}
	}

	extent := core.F(side) * spacing
	cam := camera.New(
		core.NewVec3(extent, extent, extent),
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		50*math.Pi/180,
		1.0,
	)
	return Built{World: w, Camera: cam}
}
