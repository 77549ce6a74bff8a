package kmeanslab

import (
	"time"

	"github.com/hupe1980/kmeanslab/codec"
	"github.com/hupe1980/kmeanslab/engine"
	"github.com/hupe1980/kmeanslab/synth"
)

// Session is the public face of one visualizer session. It owns a step
// controller and layers logging, metrics and error translation on top, the
// way the UI consumes it.
//
// A Session is single-threaded by contract: the caller serializes events.
type Session struct {
	controller *engine.Controller
	codec      codec.Codec
	metrics    MetricsCollector
	logger     *Logger
}

// New creates a session with a freshly generated dataset (or the dataset
// supplied via WithDataset), ready for its first step.
func New(optFns ...Option) (*Session, error) {
	opts := applyOptions(optFns)

	c, err := engine.New(func(o *engine.Options) {
		o.Params = opts.params
		o.K = opts.k
		o.Dataset = opts.dataset
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &Session{
		controller: c,
		codec:      opts.codec,
		metrics:    opts.metricsCollector,
		logger:     opts.logger,
	}, nil
}

// Generate replaces the dataset and clears the run state. A zero Params value
// regenerates with the session's configured defaults.
func (s *Session) Generate(p synth.Params) error {
	// Resolve the zero-value fallback here so metrics and logs report the
	// params actually generated.
	if p == (synth.Params{}) {
		p = s.controller.Params()
	}

	start := time.Now()
	err := translateError(s.controller.Generate(p))
	s.metrics.RecordGenerate(p.N, time.Since(start), err)
	s.logger.LogGenerate(p.N, p.BlobCount, err)
	return err
}

// SetK changes the cluster count, acting as a reset that keeps the dataset.
// An invalid K fails without touching the session.
func (s *Session) SetK(k int) error {
	err := translateError(s.controller.SetK(k))
	s.metrics.RecordReset(err)
	s.logger.LogReset(k, err)
	return err
}

// Reset clears centroids, assignment and run state, keeping the dataset.
func (s *Session) Reset() {
	s.controller.Reset()
	s.metrics.RecordReset(nil)
	s.logger.LogReset(s.controller.K(), nil)
}

// Step advances the state machine by one event and returns the post-step
// render state. Once converged, Step is a no-op.
func (s *Session) Step() (engine.RenderState, error) {
	start := time.Now()
	rs, err := s.controller.Step()
	err = translateError(err)
	s.metrics.RecordStep(time.Since(start), err)
	s.logger.LogStep(rs.State.Iteration, rs.State.Loss, rs.State.Converged, len(s.controller.LastReseeded()), err)
	return rs, err
}

// RenderState returns a read-only snapshot of the current state for the
// rendering layer. It reflects the exact post-event state; no computation
// happens here.
func (s *Session) RenderState() engine.RenderState {
	return s.controller.RenderState()
}

// State returns the current run state.
func (s *Session) State() engine.RunState {
	return s.controller.State()
}

// K returns the current cluster count.
func (s *Session) K() int {
	return s.controller.K()
}

// Params returns the generation parameters of the current dataset.
func (s *Session) Params() synth.Params {
	return s.controller.Params()
}
