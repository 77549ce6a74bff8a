package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/kmeanslab/model"
	"github.com/hupe1980/kmeanslab/synth"
)

// Snapshot is the persisted form of a session: the full render state plus the
// generation parameters, sufficient to resume a demo mid-run.
type Snapshot struct {
	Params     synth.Params     `json:"params"`
	Dataset    model.Dataset    `json:"dataset"`
	Centroids  model.Centroids  `json:"centroids,omitempty"`
	Assignment model.Assignment `json:"assignment,omitempty"`
	State      RunState         `json:"state"`
}

// Snapshot captures the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Params:     c.params,
		Dataset:    c.dataset.Clone(),
		Centroids:  c.centroids.Clone(),
		Assignment: c.assignment.Clone(),
		State:      c.state,
	}
}

// Restore replaces the controller's entire state with s after validating its
// internal consistency. On failure the controller is left unchanged.
func (c *Controller) Restore(s Snapshot) error {
	if err := s.validate(); err != nil {
		return err
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	c.params = s.Params
	c.k = s.State.K
	c.dataset = s.Dataset.Clone()
	c.centroids = s.Centroids.Clone()
	c.assignment = s.Assignment.Clone()
	c.state = s.State
	c.lastReseeded = nil

	return nil
}

func (s Snapshot) validate() error {
	if len(s.Dataset) == 0 {
		return fmt.Errorf("%w: empty dataset", ErrCorruptSnapshot)
	}
	if s.State.K < 1 || s.State.K > len(s.Dataset) {
		return fmt.Errorf("%w: k=%d with %d points", ErrCorruptSnapshot, s.State.K, len(s.Dataset))
	}

	switch s.State.Phase {
	case PhaseReady:
		if s.Centroids != nil || s.Assignment != nil {
			return fmt.Errorf("%w: ready phase with run artifacts", ErrCorruptSnapshot)
		}
		if !math.IsNaN(s.State.Loss) || s.State.Iteration != 0 || s.State.Converged {
			return fmt.Errorf("%w: ready phase with non-zero run state", ErrCorruptSnapshot)
		}
	case PhaseRunning, PhaseConverged:
		if len(s.Centroids) != s.State.K {
			return fmt.Errorf("%w: %d centroids for k=%d", ErrCorruptSnapshot, len(s.Centroids), s.State.K)
		}
		if len(s.Assignment) != len(s.Dataset) {
			return fmt.Errorf("%w: assignment covers %d of %d points", ErrCorruptSnapshot, len(s.Assignment), len(s.Dataset))
		}
		for i, cluster := range s.Assignment {
			if cluster < 0 || cluster >= s.State.K {
				return fmt.Errorf("%w: point %d assigned to cluster %d of %d", ErrCorruptSnapshot, i, cluster, s.State.K)
			}
		}
		if s.State.Iteration < 1 {
			return fmt.Errorf("%w: running phase with iteration %d", ErrCorruptSnapshot, s.State.Iteration)
		}
		if s.State.Converged != (s.State.Phase == PhaseConverged) {
			return fmt.Errorf("%w: converged flag disagrees with phase %s", ErrCorruptSnapshot, s.State.Phase)
		}
	default:
		return fmt.Errorf("%w: phase %s", ErrCorruptSnapshot, s.State.Phase)
	}

	return nil
}
