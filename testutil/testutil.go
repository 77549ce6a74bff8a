// Package testutil provides deterministic helpers shared by tests.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kmeanslab/model"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Rand exposes the underlying source for APIs that take *rand.Rand.
// Callers must not use it concurrently with the methods above.
func (r *RNG) Rand() *rand.Rand {
	return r.rand
}

// SeparatedBlobs builds a dataset of three tight, well-separated blobs with
// pointsPerBlob points each. Centers are fixed so cluster structure is
// unambiguous regardless of seed.
func SeparatedBlobs(pointsPerBlob int, seed int64) model.Dataset {
	rng := rand.New(rand.NewSource(seed))

	centers := []model.Point{
		{X: -5, Y: -5},
		{X: 5, Y: -5},
		{X: 0, Y: 5},
	}

	const spread = 0.3

	ds := make(model.Dataset, 0, 3*pointsPerBlob)
	for _, c := range centers {
		for i := 0; i < pointsPerBlob; i++ {
			ds = append(ds, model.Point{
				X: c.X + rng.NormFloat64()*spread,
				Y: c.Y + rng.NormFloat64()*spread,
			})
		}
	}

	return ds
}
