package sim

import (
	"math/rand"
)

// RandomSource is the single pseudo-random stream for one replication.
// Every stochastic draw in a simulation (production gaps, wholesaler
// inter-arrival gaps, product and distributor choices) comes from this one
// seeded stream, so two simulations built with the same seed replay the
// exact same sequence of draws.
//
// Thread-safety: NOT thread-safe. A RandomSource belongs to exactly one
// Simulator and must only be used from its run loop.
type RandomSource struct {
	seed int64
	src  *rand.Rand
}

// NewRandomSource creates a RandomSource seeded with the given value.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (r *RandomSource) Seed() int64 {
	return r.seed
}

// Uniform returns a uniformly distributed value in [a, b).
func (r *RandomSource) Uniform(a, b float64) float64 {
	return a + (b-a)*r.src.Float64()
}

// Exponential returns an exponentially distributed value with the given mean.
func (r *RandomSource) Exponential(mean float64) float64 {
	return r.src.ExpFloat64() * mean
}

// Intn returns a uniformly distributed int in [0, n).
func (r *RandomSource) Intn(n int) int {
	return r.src.Intn(n)
}

// PickProduct returns a uniformly chosen product from the slice.
// Panics on an empty slice; callers draw from validated config.
func (r *RandomSource) PickProduct(products []Product) Product {
	return products[r.src.Intn(len(products))]
}

// PickName returns a uniformly chosen name from the slice.
func (r *RandomSource) PickName(names []string) string {
	return names[r.src.Intn(len(names))]
}
