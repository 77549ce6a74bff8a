// Package sweep runs whole sessions to convergence across a range of cluster
// counts, the classic elbow-method companion to the step visualizer.
package sweep

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kmeanslab/engine"
	"github.com/hupe1980/kmeanslab/model"
)

// Result is the outcome of the best run for one cluster count.
type Result struct {
	// K is the cluster count of this run.
	K int

	// Loss is the final within-cluster sum of squares.
	Loss float64

	// Iterations is the number of steps taken to converge (or MaxSteps).
	Iterations int

	// Converged reports whether the run stabilized within MaxSteps.
	Converged bool
}

// Options contains configuration options for a sweep.
type Options struct {
	// MaxSteps bounds each run. Well-separated data converges far earlier;
	// the bound only guards pathological inputs.
	MaxSteps int

	// Restarts is the number of independently initialized runs per K;
	// the lowest-loss run wins. K-means is sensitive to initialization.
	Restarts int

	// Concurrency bounds the number of runs in flight.
	Concurrency int

	// Seed makes the whole sweep deterministic. Zero leaves each run on
	// ambient randomness.
	Seed int64
}

// DefaultOptions contains the default configuration options for a sweep.
var DefaultOptions = Options{
	MaxSteps:    50,
	Restarts:    3,
	Concurrency: 4,
}

// Elbow runs k-means to convergence on ds for every K in [kMin, kMax] and
// returns one Result per K, ordered by K. Runs execute in parallel with
// bounded concurrency; each run owns a private controller and dataset clone,
// so the sweep never touches a live session.
func Elbow(ctx context.Context, ds model.Dataset, kMin, kMax int, optFns ...func(o *Options)) ([]Result, error) {
	o := DefaultOptions
	for _, fn := range optFns {
		fn(&o)
	}

	if kMin < 1 || kMax < kMin || kMax > len(ds) {
		return nil, &engine.ErrInvalidConfiguration{K: kMax, N: len(ds)}
	}

	results := make([]Result, kMax-kMin+1)
	for i := range results {
		results[i] = Result{K: kMin + i, Loss: math.Inf(1)}
	}

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)

	for k := kMin; k <= kMax; k++ {
		for restart := 0; restart < o.Restarts; restart++ {
			g.Go(func() error {
				res, err := runOnce(ctx, ds, k, runSeed(o.Seed, k, restart), o.MaxSteps)
				if err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()

				best := &results[k-kMin]
				if better(res, *best) {
					*best = res
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func runOnce(ctx context.Context, ds model.Dataset, k int, seed int64, maxSteps int) (Result, error) {
	c, err := engine.New(func(o *engine.Options) {
		o.Dataset = ds
		o.K = k
		o.Params.Seed = seed
	})
	if err != nil {
		return Result{}, err
	}

	for i := 0; i < maxSteps; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		rs, err := c.Step()
		if err != nil {
			return Result{}, err
		}
		if rs.State.Converged {
			break
		}
	}

	state := c.State()

	return Result{
		K:          k,
		Loss:       state.Loss,
		Iterations: state.Iteration,
		Converged:  state.Converged,
	}, nil
}

// better ranks restarts of the same K: converged beats unconverged, then
// lowest loss, then fewest iterations. The full ordering keeps the winner
// independent of goroutine completion order.
func better(a, b Result) bool {
	if a.Converged != b.Converged {
		return a.Converged
	}
	if a.Loss != b.Loss {
		return a.Loss < b.Loss
	}
	return a.Iterations < b.Iterations
}

// runSeed derives a distinct, stable seed per (k, restart) pair.
func runSeed(base int64, k, restart int) int64 {
	if base == 0 {
		return 0
	}
	return base + int64(k)*1_000_003 + int64(restart)
}
