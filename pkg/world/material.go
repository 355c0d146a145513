package world

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/primitive"
)

// MaterialRef is an opaque, stable handle into a World's material
// arena.
type MaterialRef struct{ i index }

// Material is the closed variant set of scattering behaviors: ideal
// diffuse (Lambertian), ideal specular (Mirror), and light-emitting
// (Emitting). All three implement the same interface; the World's
// material arena holds them as Material values.
type Material interface {
	// Scatter samples an outgoing ray given the incoming direction and
	// hit geometry, returning false for materials (pure emitters) that
	// never scatter.
	Scatter(w *World, rayIn core.Vec3, hit primitive.Intersection, rng core.Random) (ScatteredRay, bool)
	// BRDF evaluates the (scalar) bidirectional reflectance for a
	// specific incoming/outgoing direction pair at the given normal.
	BRDF(wi, wo, normal core.Vec3) core.F
	// Emit returns the emitted radiance towards rayOut, zero for
	// non-emitters.
	Emit(w *World, rayOut core.Vec3, coord core.TextureCoord2D) core.Vec3
	// Emits reports whether this material ever emits (used to decide
	// whether a primitive belongs in the scene's emitter list).
	Emits() bool
}

// ScatteredRay is the scattering contract: a direction PDF to sample
// and evaluate, a color attenuation, and whether the scatter is
// specular (a Dirac delta, handled specially by the integrator).
type ScatteredRay struct {
	PDF         MaterialPDF
	Attenuation core.Vec3
	IsSpecular  bool
}

// Lambertian is an ideally diffuse reflector.
type Lambertian struct {
	Albedo AlbedoRef
}

var _ Material = Lambertian{}

func (l Lambertian) Scatter(w *World, _ core.Vec3, hit primitive.Intersection, rng core.Random) (ScatteredRay, bool) {
	albedo := w.SampleAlbedo(l.Albedo, SphericalUV(hit.Normal))
	return ScatteredRay{
		PDF:         CosinePDF{Normal: hit.Normal},
		Attenuation: albedo,
		IsSpecular:  false,
	}, true
}

// BRDF folds the cosine-weighting term into the returned density: the
// caller divides by the sampled direction's PDF without applying any
// separate cosine factor, so this must be evaluated against wo (the
// sampled outgoing direction being integrated over), not wi.
func (l Lambertian) BRDF(_, wo, normal core.Vec3) core.F {
	cos := normal.Dot(wo)
	if cos < 0 {
		return 0
	}
	return cos / math.Pi
}

func (l Lambertian) Emit(*World, core.Vec3, core.TextureCoord2D) core.Vec3 {
	return core.Vec3{}
}

func (l Lambertian) Emits() bool { return false }

// Mirror is an ideal specular reflector with no absorption.
type Mirror struct{}

var _ Material = Mirror{}

func (m Mirror) Scatter(_ *World, rayIn core.Vec3, hit primitive.Intersection, _ core.Random) (ScatteredRay, bool) {
	reflected := reflect(rayIn, hit.Normal)
	return ScatteredRay{
		PDF:         SpecularPDF{Direction: reflected},
		Attenuation: core.NewVec3(1, 1, 1),
		IsSpecular:  true,
	}, true
}

// BRDF for a mirror is a delta: 1 within ~0.045 rad of the true
// reflection, 0 otherwise. Only holds up because the integrator always
// evaluates it at the exact sampled reflection direction; do not reuse
// this pattern for a non-ideal specular material. wi arrives negated
// (pointing back towards the viewer, per the integrator's calling
// convention), so it's negated back to the incoming-travel-direction
// convention reflect and Scatter both use before reflecting.
func (m Mirror) BRDF(wi, wo, normal core.Vec3) core.F {
	reflected := reflect(wi.Negate(), normal)
	if wo.Dot(reflected) > specularMatchCosine {
		return 1
	}
	return 0
}

func (m Mirror) Emit(*World, core.Vec3, core.TextureCoord2D) core.Vec3 {
	return core.Vec3{}
}

func (m Mirror) Emits() bool { return false }

// reflect computes the ideal reflection of v about normal n.
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Emitting is an isotropic emitter: the material never scatters, only
// emits albedo(coord)*Factor towards any outgoing direction.
type Emitting struct {
	Albedo AlbedoRef
	Factor core.F
}

var _ Material = Emitting{}

func (e Emitting) Scatter(*World, core.Vec3, primitive.Intersection, core.Random) (ScatteredRay, bool) {
	return ScatteredRay{}, false
}

func (e Emitting) BRDF(core.Vec3, core.Vec3, core.Vec3) core.F {
	return 0
}

func (e Emitting) Emit(w *World, _ core.Vec3, coord core.TextureCoord2D) core.Vec3 {
	return w.SampleAlbedo(e.Albedo, coord).Multiply(e.Factor)
}

func (e Emitting) Emits() bool { return true }

// SphericalUV derives a texture coordinate from a unit normal using
// the standard spherical mapping (only geometry variant is Sphere, so
// this is exact rather than an approximation).
func SphericalUV(n core.Vec3) core.TextureCoord2D {
	theta := math.Acos(clampUnit(-n.Y))
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	return core.TextureCoord2D{
		X: phi / (2 * math.Pi),
		Y: theta / math.Pi,
	}
}

func clampUnit(v core.F) core.F {
	return max(-1, min(1, v))
}
