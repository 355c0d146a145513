package core

import (
	"math"
	"math/rand"
)

// Random is the abstract randomness contract the integrator and
// sampling routines depend on. It is deliberately narrow -- the core
// never depends on a concrete RNG implementation, only this interface.
type Random interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() F
	// IntRange returns a uniform integer in [lo, hi).
	IntRange(lo, hi int) int
	// UnitVector returns a uniformly distributed direction on the unit
	// sphere.
	UnitVector() Vec3
}

// Seeder is an optional capability of a Random: the ability to fork a
// fresh, independent stream. The render driver uses this once per row
// under a mutex to isolate parallel rows from each other while keeping
// the whole render deterministic given a fixed master seed.
type Seeder interface {
	SeedNew() Random
}

// RNG is the default Random implementation, a thin wrapper over
// math/rand.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates an RNG seeded deterministically from seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

func (g *RNG) Float64() F {
	return g.r.Float64()
}

func (g *RNG) IntRange(lo, hi int) int {
	return lo + g.r.Intn(hi-lo)
}

// UnitVector samples uniformly on S^2 via rejection sampling inside
// the unit cube, then normalizing.
func (g *RNG) UnitVector() Vec3 {
	for {
		v := Vec3{
			X: 2*g.r.Float64() - 1,
			Y: 2*g.r.Float64() - 1,
			Z: 2*g.r.Float64() - 1,
		}
		lenSq := v.LengthSquared()
		if lenSq > 1e-12 && lenSq <= 1 {
			return v.Multiply(1 / math.Sqrt(lenSq))
		}
	}
}

// SeedNew forks a new independent stream, seeded from this RNG. Safe
// to call repeatedly; callers are expected to serialize access (e.g.
// the render driver holds a mutex around the master RNG while forking).
func (g *RNG) SeedNew() Random {
	return NewRNG(g.r.Int63())
}

var _ Random = (*RNG)(nil)
var _ Seeder = (*RNG)(nil)
