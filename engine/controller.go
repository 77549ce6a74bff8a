package engine

import (
	"math"
	"math/rand"

	"github.com/hupe1980/kmeanslab/kmeans"
	"github.com/hupe1980/kmeanslab/model"
	"github.com/hupe1980/kmeanslab/synth"
)

// Options contains configuration options for the controller.
type Options struct {
	// Params configures dataset generation, both for the initial dataset
	// and as the defaults for later Generate calls with zero params.
	Params synth.Params

	// K is the initial cluster count.
	K int

	// Dataset, when non-nil, seeds the controller with an existing dataset
	// (cloned) instead of generating one. Params generation is skipped.
	Dataset model.Dataset

	// Rand is the source used for centroid initialization, empty-cluster
	// re-seeding and unseeded generation. Nil means a fresh source, seeded
	// from Params.Seed when that is non-zero.
	Rand *rand.Rand
}

// DefaultOptions contains the default configuration options for the controller.
var DefaultOptions = Options{
	Params: synth.DefaultParams,
	K:      3,
}

// Controller is the step state machine. It owns the session's mutable state
// exclusively and mutates it only in response to one event at a time.
// It is not safe for concurrent use; callers serialize events.
type Controller struct {
	rng *rand.Rand

	params synth.Params
	k      int

	dataset    model.Dataset
	centroids  model.Centroids
	assignment model.Assignment
	state      RunState

	lastReseeded []int
}

// New creates a new controller. Unless Options.Dataset is supplied, a dataset
// is generated immediately from Options.Params, so the controller starts in
// the Ready phase.
func New(optFns ...func(o *Options)) (*Controller, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	seed := opts.Params.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	c := &Controller{
		rng:    rng,
		params: opts.Params,
	}

	if opts.Dataset != nil {
		c.dataset = opts.Dataset.Clone()
	} else {
		ds, err := synth.GenerateWithRand(opts.Params, rng)
		if err != nil {
			return nil, err
		}
		c.dataset = ds
	}

	if opts.K < 1 || opts.K > len(c.dataset) {
		return nil, &ErrInvalidConfiguration{K: opts.K, N: len(c.dataset)}
	}

	c.k = opts.K
	c.clearRun()

	return c, nil
}

// Generate replaces the dataset wholesale and clears all run state as one
// unit. On validation failure nothing changes. A zero Params value falls back
// to the controller's configured defaults.
func (c *Controller) Generate(p synth.Params) error {
	if p == (synth.Params{}) {
		p = c.params
	}

	var (
		ds  model.Dataset
		err error
	)
	if p.Seed != 0 {
		ds, err = synth.Generate(p)
	} else {
		ds, err = synth.GenerateWithRand(p, c.rng)
	}
	if err != nil {
		return err
	}

	c.dataset = ds
	c.params = p
	c.clearRun()

	return nil
}

// SetK changes the cluster count and acts as a reset that keeps the dataset.
// K < 1 or K > len(dataset) fails without transitioning state.
func (c *Controller) SetK(k int) error {
	if k < 1 || k > len(c.dataset) {
		return &ErrInvalidConfiguration{K: k, N: len(c.dataset)}
	}

	c.k = k
	c.clearRun()

	return nil
}

// K returns the current cluster count.
func (c *Controller) K() int { return c.k }

// Reset clears centroids, assignment and run state, keeping the dataset.
func (c *Controller) Reset() {
	c.clearRun()
}

// Step advances the state machine by one event.
//
//   - Ready: samples K distinct points as initial centroids, assigns and
//     computes the loss. Iteration becomes 1. No centroid update happens on
//     this first step; it only initializes.
//   - Running: updates centroids from the current assignment, reassigns,
//     recomputes the loss and increments the iteration. If the new assignment
//     is positionally identical to the previous one, the session converges.
//   - Converged: no-op; returns the current state unchanged.
//
// A zero-value controller auto-generates a default dataset first.
func (c *Controller) Step() (RenderState, error) {
	if c.dataset == nil {
		if c.rng == nil {
			c.rng = rand.New(rand.NewSource(rand.Int63()))
		}
		if c.params == (synth.Params{}) {
			c.params = synth.DefaultParams
		}
		if c.k == 0 {
			c.k = DefaultOptions.K
		}
		if err := c.Generate(c.params); err != nil {
			return RenderState{}, err
		}
	}

	switch c.state.Phase {
	case PhaseConverged:
		return c.RenderState(), nil

	case PhaseReady, PhaseEmpty:
		if c.k < 1 || c.k > len(c.dataset) {
			return RenderState{}, &ErrInvalidConfiguration{K: c.k, N: len(c.dataset)}
		}

		c.centroids = kmeans.InitCentroids(c.dataset, c.k, c.rng)
		c.assignment = kmeans.Assign(c.dataset, c.centroids)
		c.lastReseeded = nil

		c.state.Loss = kmeans.WSS(c.dataset, c.centroids, c.assignment)
		c.state.Iteration = 1
		c.state.Phase = PhaseRunning

	case PhaseRunning:
		prev := c.assignment

		c.centroids, c.lastReseeded = kmeans.Update(c.dataset, c.assignment, c.k, c.rng)
		c.assignment = kmeans.Assign(c.dataset, c.centroids)

		c.state.Loss = kmeans.WSS(c.dataset, c.centroids, c.assignment)
		c.state.Iteration++

		if c.assignment.Equal(prev) {
			c.state.Converged = true
			c.state.Phase = PhaseConverged
		}
	}

	return c.RenderState(), nil
}

// RenderState returns a read-only copy of the current state for rendering.
func (c *Controller) RenderState() RenderState {
	return RenderState{
		Dataset:    c.dataset.Clone(),
		Centroids:  c.centroids.Clone(),
		Assignment: c.assignment.Clone(),
		State:      c.state,
	}
}

// State returns the current run state.
func (c *Controller) State() RunState { return c.state }

// Params returns the generation parameters of the current dataset.
func (c *Controller) Params() synth.Params { return c.params }

// LastReseeded returns the cluster slots re-seeded by the most recent update
// step, nil when none were. Valid until the next Step/Reset/Generate call.
func (c *Controller) LastReseeded() []int { return c.lastReseeded }

func (c *Controller) clearRun() {
	c.centroids = nil
	c.assignment = nil
	c.lastReseeded = nil

	phase := PhaseReady
	if c.dataset == nil {
		phase = PhaseEmpty
	}

	c.state = RunState{
		K:     c.k,
		Loss:  math.NaN(),
		Phase: phase,
	}
}
