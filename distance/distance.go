// Package distance provides point distance calculations for the step engine.
//
// All functions operate on 2-D points. Squared distances are preferred
// wherever only ordering matters (nearest-centroid assignment), the square
// root is taken only when an actual length is reported.
package distance

import (
	"math"

	"github.com/hupe1980/kmeanslab/model"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two points.
func SquaredL2(a, b model.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Euclidean calculates the L2 (Euclidean) distance between two points.
func Euclidean(a, b model.Point) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Nearest returns the index of the centroid closest to p and the squared
// distance to it. Ties break toward the lowest index (first minimum found).
// Assumes len(centroids) >= 1 (caller's responsibility).
func Nearest(p model.Point, centroids model.Centroids) (int, float64) {
	best := 0
	min := SquaredL2(p, centroids[0])

	for i := 1; i < len(centroids); i++ {
		if d := SquaredL2(p, centroids[i]); d < min {
			min = d
			best = i
		}
	}

	return best, min
}
