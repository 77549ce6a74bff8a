package kmeans

import (
	"math/rand"

	"github.com/hupe1980/kmeanslab/distance"
	"github.com/hupe1980/kmeanslab/model"
)

// Assign computes the nearest-centroid cluster id for every point.
// Ties break toward the lowest cluster id. The result always covers every
// point index, with values in [0, len(centroids)).
// Assumes len(centroids) >= 1 (caller's responsibility).
func Assign(ds model.Dataset, centroids model.Centroids) model.Assignment {
	assignment := make(model.Assignment, len(ds))
	for i, p := range ds {
		assignment[i], _ = distance.Nearest(p, centroids)
	}
	return assignment
}

// Update recomputes one centroid per cluster slot as the arithmetic mean of
// its assigned points. A slot with no assigned points is re-seeded to a
// uniformly random point from the full dataset; this keeps dead clusters from
// becoming permanent and is a policy, not an error. The returned slice lists
// the re-seeded slot ids (nil when none), since a re-seed is the one event
// after which the loss may legitimately increase.
func Update(ds model.Dataset, assignment model.Assignment, k int, r *rand.Rand) (model.Centroids, []int) {
	sumX := make([]float64, k)
	sumY := make([]float64, k)
	counts := make([]int, k)

	for i, cluster := range assignment {
		sumX[cluster] += ds[i].X
		sumY[cluster] += ds[i].Y
		counts[cluster]++
	}

	centroids := make(model.Centroids, k)
	var reseeded []int

	for j := 0; j < k; j++ {
		if counts[j] > 0 {
			centroids[j] = model.Point{
				X: sumX[j] / float64(counts[j]),
				Y: sumY[j] / float64(counts[j]),
			}
			continue
		}
		centroids[j] = ds[r.Intn(len(ds))]
		reseeded = append(reseeded, j)
	}

	return centroids, reseeded
}

// WSS returns the within-cluster sum of squares: the total squared Euclidean
// distance from each point to its assigned centroid. It purely reports the
// value for the current state; monotonicity across steps is not enforced here.
func WSS(ds model.Dataset, centroids model.Centroids, assignment model.Assignment) float64 {
	var total float64
	for i, p := range ds {
		total += distance.SquaredL2(p, centroids[assignment[i]])
	}
	return total
}

// InitCentroids samples k distinct dataset points uniformly without
// replacement as initial centroids.
// Assumes 1 <= k <= len(ds) (caller's responsibility).
func InitCentroids(ds model.Dataset, k int, r *rand.Rand) model.Centroids {
	perm := r.Perm(len(ds))

	centroids := make(model.Centroids, k)
	for i := 0; i < k; i++ {
		centroids[i] = ds[perm[i]]
	}

	return centroids
}
