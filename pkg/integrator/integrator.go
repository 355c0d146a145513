// Package integrator implements radiance estimators: the path-traced
// Monte Carlo integrator with multiple importance sampling, and a
// trivial normal-visualizing debug integrator.
package integrator

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/scene"
	"github.com/df07/go-path-tracer/pkg/world"
)

// Integrator estimates the radiance arriving along a camera ray.
type Integrator interface {
	CastRay(ray core.Ray, s *scene.Scene, rng core.Random) core.Vec3
}

// PathIntegrator is a unidirectional Monte Carlo path tracer with
// one-sample multiple importance sampling between BSDF sampling and
// explicit light (emitter) sampling, equal (0.5/0.5) weighted.
type PathIntegrator struct {
	MaxDepth   int
	Background core.Vec3
	TMin       core.F
	TMax       core.F
}

var _ Integrator = PathIntegrator{}

// CastRay estimates incident radiance along ray by converting the
// depth-cutoff recursion into an explicit loop that accumulates path
// throughput, rather than recursing to MaxDepth stack frames.
func (p PathIntegrator) CastRay(ray core.Ray, s *scene.Scene, rng core.Random) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	emitters := s.Emitters()

	for depth := 0; depth < p.MaxDepth; depth++ {
		hit, ok := s.Intersect(ray, p.TMin, p.TMax)
		if !ok {
			radiance = radiance.Add(throughput.MultiplyVec(p.Background))
			break
		}

		w := s.World()
		mat := w.Material(hit.Material)
		coord := world.SphericalUV(hit.Normal)

		emitted := mat.Emit(w, ray.Direction.Negate(), coord)
		radiance = radiance.Add(throughput.MultiplyVec(emitted))

		scattered, scatters := mat.Scatter(w, ray.Direction, hit.Intersection, rng)
		if !scatters {
			break
		}

		rayOut, pdfValue := generateNewRay(hit, scattered, emitters, rng)
		if pdfValue <= 0 {
			break
		}

		brdf := mat.BRDF(ray.Direction.Negate(), rayOut.Direction, hit.Normal)
		sampleThroughput := scattered.Attenuation.Multiply(brdf / pdfValue)
		throughput = throughput.MultiplyVec(sampleThroughput).ClampFinite()

		if throughput.IsZero() {
			break
		}

		ray = rayOut
	}

	return radiance.ClampFinite()
}

// generateNewRay builds the outgoing ray for a scatter event and
// returns the direction density used to weight it. With no emitters in
// the scene, or a specular scatter (whose BSDF is a delta spike MIS
// cannot usefully blend with), it samples the BSDF directly. Otherwise
// it flips a coin between BSDF sampling and sampling one uniformly
// chosen emitter, then evaluates the combined density of whichever
// direction was drawn under both strategies -- one-sample MIS with
// equal (0.5/0.5) balance-heuristic weights.
func generateNewRay(hit scene.Intersection, scattered world.ScatteredRay, emitters []scene.Emitter, rng core.Random) (core.Ray, core.F) {
	if len(emitters) == 0 || scattered.IsSpecular {
		dir := scattered.PDF.Generate(rng)
		return core.NewRay(hit.Point, dir), scattered.PDF.Value(dir)
	}

	var dir core.Vec3
	if rng.Float64() < 0.5 {
		emitter := emitters[rng.IntRange(0, len(emitters))]
		lightPDF := world.PrimitiveDirectionPDF{Origin: hit.Point, Primitive: emitter.Primitive}
		dir = lightPDF.Generate(rng)
	} else {
		dir = scattered.PDF.Generate(rng)
	}

	combined := 0.5*scattered.PDF.Value(dir) + 0.5*averageLightPDF(hit.Point, dir, emitters)
	return core.NewRay(hit.Point, dir), combined
}

// averageLightPDF computes (1/K)*sum_k primitive_direction_pdf_k(dir)
// over every emitter in the scene.
func averageLightPDF(origin, dir core.Vec3, emitters []scene.Emitter) core.F {
	sum := core.F(0)
	for _, e := range emitters {
		pdf := world.PrimitiveDirectionPDF{Origin: origin, Primitive: e.Primitive}
		sum += pdf.Value(dir)
	}
	return sum / core.F(len(emitters))
}

// NormalIntegrator is a debug integrator that ignores materials
// entirely and returns the surface normal at the first hit, remapped
// from [-1,1] to [0,1], as a color; useful for sanity-checking scene
// geometry and BVH correctness without running any Monte Carlo
// sampling at all.
type NormalIntegrator struct {
	Background core.Vec3
	TMin       core.F
	TMax       core.F
}

var _ Integrator = NormalIntegrator{}

func (n NormalIntegrator) CastRay(ray core.Ray, s *scene.Scene, _ core.Random) core.Vec3 {
	hit, ok := s.Intersect(ray, n.TMin, n.TMax)
	if !ok {
		return n.Background
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
