// Package synth generates synthetic 2-D datasets for the step engine.
//
// A dataset is a mixture of isotropic Gaussian blobs plus uniform background
// noise. Generation is fully deterministic under a fixed seed.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/kmeanslab/model"
)

// Blob centers are drawn from the inner box, noise from the wider outer box.
const (
	BlobBoxMin = -5.5
	BlobBoxMax = 5.5

	NoiseBoxMin = -8.0
	NoiseBoxMax = 8.0
)

// Params configures dataset generation.
type Params struct {
	// N is the total number of points, blob points plus noise points.
	N int `json:"n"`

	// BlobCount is the number of Gaussian blobs. Each blob gets a center
	// drawn uniformly from the blob box and a spread drawn uniformly from
	// [SpreadMin, SpreadMax].
	BlobCount int `json:"blob_count"`

	// SpreadMin and SpreadMax bound the per-blob standard deviation.
	SpreadMin float64 `json:"spread_min"`
	SpreadMax float64 `json:"spread_max"`

	// NoiseProportion is the fraction of N generated as uniform background
	// noise over the outer box. Must be in [0, 1].
	NoiseProportion float64 `json:"noise_proportion"`

	// Seed makes generation deterministic. Zero means ambient randomness
	// (the caller's source decides).
	Seed int64 `json:"seed,omitempty"`
}

// DefaultParams is the dataset configuration used when none is supplied.
var DefaultParams = Params{
	N:               250,
	BlobCount:       3,
	SpreadMin:       0.4,
	SpreadMax:       1.2,
	NoiseProportion: 0.1,
}

// ErrInvalidParams indicates a generation parameter outside its valid range.
type ErrInvalidParams struct {
	Field  string
	Reason string
}

func (e *ErrInvalidParams) Error() string {
	return fmt.Sprintf("invalid params: %s %s", e.Field, e.Reason)
}

// Validate checks p without generating anything.
func (p Params) Validate() error {
	switch {
	case p.N < 1:
		return &ErrInvalidParams{Field: "N", Reason: "must be at least 1"}
	case p.BlobCount < 1:
		return &ErrInvalidParams{Field: "BlobCount", Reason: "must be at least 1"}
	case p.SpreadMin < 0:
		return &ErrInvalidParams{Field: "SpreadMin", Reason: "must be non-negative"}
	case p.SpreadMax < p.SpreadMin:
		return &ErrInvalidParams{Field: "SpreadMax", Reason: "must be >= SpreadMin"}
	case p.NoiseProportion < 0 || p.NoiseProportion > 1:
		return &ErrInvalidParams{Field: "NoiseProportion", Reason: "must be in [0, 1]"}
	}
	return nil
}

// Generate produces a new dataset from p. If p.Seed is non-zero the result is
// fully deterministic; otherwise a source is seeded from the global generator.
func Generate(p Params) (model.Dataset, error) {
	seed := p.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return GenerateWithRand(p, rand.New(rand.NewSource(seed)))
}

// GenerateWithRand produces a new dataset from p using r as the sole source of
// randomness. p.Seed is ignored.
func GenerateWithRand(p Params, r *rand.Rand) (model.Dataset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	noiseCount := int(math.Round(float64(p.N) * p.NoiseProportion))
	blobPointCount := p.N - noiseCount

	type blob struct {
		center model.Point
		spread float64
	}

	blobs := make([]blob, p.BlobCount)
	for i := range blobs {
		blobs[i] = blob{
			center: model.Point{
				X: uniform(r, BlobBoxMin, BlobBoxMax),
				Y: uniform(r, BlobBoxMin, BlobBoxMax),
			},
			spread: uniform(r, p.SpreadMin, p.SpreadMax),
		}
	}

	ds := make(model.Dataset, 0, p.N)

	// Blob points: uniformly random blob id, isotropic Gaussian around its center.
	for i := 0; i < blobPointCount; i++ {
		b := blobs[r.Intn(p.BlobCount)]
		ds = append(ds, model.Point{
			X: b.center.X + r.NormFloat64()*b.spread,
			Y: b.center.Y + r.NormFloat64()*b.spread,
		})
	}

	// Background noise over the wider box.
	for i := 0; i < noiseCount; i++ {
		ds = append(ds, model.Point{
			X: uniform(r, NoiseBoxMin, NoiseBoxMax),
			Y: uniform(r, NoiseBoxMin, NoiseBoxMax),
		})
	}

	return ds, nil
}

func uniform(r *rand.Rand, minVal, maxVal float64) float64 {
	return minVal + r.Float64()*(maxVal-minVal)
}
