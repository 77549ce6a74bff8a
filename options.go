package kmeanslab

import (
	"log/slog"

	"github.com/hupe1980/kmeanslab/codec"
	"github.com/hupe1980/kmeanslab/model"
	"github.com/hupe1980/kmeanslab/synth"
)

type options struct {
	params           synth.Params
	k                int
	dataset          model.Dataset
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Session construction/load behavior.
type Option func(*options)

// WithParams configures the generation parameters of the initial dataset and
// the defaults for later Generate calls.
func WithParams(p synth.Params) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithSeed makes the whole session deterministic: dataset generation, initial
// centroid sampling and empty-cluster re-seeding all derive from this seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.params.Seed = seed
	}
}

// WithK sets the initial cluster count. Default: 3.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithDataset seeds the session with an existing dataset (cloned) instead of
// generating one.
func WithDataset(ds model.Dataset) Option {
	return func(o *options) {
		o.dataset = ds
	}
}

// WithCodec configures the codec used for encoding and decoding snapshots.
//
// If nil is passed, codec.Default is used. Snapshot files are self-describing
// (they record the codec name), so loading selects the codec by name and this
// option only affects newly written snapshots.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		params:           synth.DefaultParams,
		k:                3,
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
