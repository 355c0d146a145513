package world

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/primitive"
)

// directionPDFEpsilon is the ray origin epsilon used when a PDF needs
// to re-test whether a sampled direction actually hits its target
// primitive; matches the renderer's usual self-intersection epsilon.
const directionPDFEpsilon = 1e-3

// MaterialPDF is the closed set of direction-density variants a
// scattered ray can carry. The integrator calls Generate to sample an
// outgoing direction and Value to evaluate the density of any
// direction (used for MIS weighting against the light-sampling PDF).
type MaterialPDF interface {
	Generate(rng core.Random) core.Vec3
	Value(direction core.Vec3) core.F
}

// CosinePDF is a cosine-weighted hemisphere distribution aligned with
// a surface normal: value(d) = max(0, n.d)/pi.
type CosinePDF struct {
	Normal core.Vec3
}

var _ MaterialPDF = CosinePDF{}

func (p CosinePDF) Value(d core.Vec3) core.F {
	cos := p.Normal.Dot(d)
	if cos < 0 {
		return 0
	}
	return cos / math.Pi
}

// Generate samples n + unit_sphere(); if the sum is exactly zero (the
// sampled direction cancels the normal) it falls back to the normal
// itself, avoiding a zero-length normalize.
func (p CosinePDF) Generate(rng core.Random) core.Vec3 {
	dir := p.Normal.Add(rng.UnitVector())
	if dir.IsZero() {
		return p.Normal
	}
	return dir.Normalize()
}

// SpecularPDF is a Dirac delta in a single direction. The integrator
// skips MIS for specular scattering (via ScatteredRay.IsSpecular) and
// divides by Value's 1 at the delta direction, which cancels
// Mirror.BRDF's 1 there.
type SpecularPDF struct {
	Direction core.Vec3
}

var _ MaterialPDF = SpecularPDF{}

// specularMatchCosine is the cosine threshold (~0.045 rad) a direction
// must clear to be considered "the" reflected direction despite
// floating-point error.
const specularMatchCosine = 0.999

func (p SpecularPDF) Value(d core.Vec3) core.F {
	if d.Dot(p.Direction) > specularMatchCosine {
		return 1
	}
	return 0
}

func (p SpecularPDF) Generate(core.Random) core.Vec3 {
	return p.Direction
}

// PrimitiveDirectionPDF samples a direction biased towards a single
// emitter primitive, for explicit light sampling. Value returns the
// uniform-over-solid-angle density 1/Omega(origin) for directions that
// actually reach the primitive, else 0.
type PrimitiveDirectionPDF struct {
	Origin    core.Vec3
	Primitive primitive.Primitive
}

var _ MaterialPDF = PrimitiveDirectionPDF{}

func (p PrimitiveDirectionPDF) Generate(rng core.Random) core.Vec3 {
	return p.Primitive.RandomDirectionTowards(p.Origin, rng)
}

func (p PrimitiveDirectionPDF) Value(d core.Vec3) core.F {
	ray := core.NewRay(p.Origin, d)
	if !p.Primitive.Intersects(ray, directionPDFEpsilon, math.Inf(1)) {
		return 0
	}
	omega := p.Primitive.SolidAngle(p.Origin)
	if omega <= 0 {
		return 0
	}
	return 1 / omega
}
