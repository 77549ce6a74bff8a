package kmeanslab

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordGenerate is called after each dataset generation.
	// n is the requested point count, err is nil if successful.
	RecordGenerate(n int, duration time.Duration, err error)

	// RecordStep is called after each step event.
	RecordStep(duration time.Duration, err error)

	// RecordReset is called after each reset or K change.
	RecordReset(err error)

	// RecordSnapshot is called after each snapshot save or load.
	// op is "save" or "load", size the encoded payload in bytes.
	RecordSnapshot(op string, size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGenerate(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordStep(time.Duration, error)                  {}
func (NoopMetricsCollector) RecordReset(error)                                {}
func (NoopMetricsCollector) RecordSnapshot(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GenerateCount    atomic.Int64
	GenerateErrors   atomic.Int64
	StepCount        atomic.Int64
	StepErrors       atomic.Int64
	StepTotalNanos   atomic.Int64
	ResetCount       atomic.Int64
	SnapshotCount    atomic.Int64
	SnapshotErrors   atomic.Int64
	SnapshotBytesSum atomic.Int64
}

// RecordGenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerate(n int, duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	if err != nil {
		b.GenerateErrors.Add(1)
	}
}

// RecordStep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStep(duration time.Duration, err error) {
	b.StepCount.Add(1)
	b.StepTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.StepErrors.Add(1)
	}
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(err error) {
	b.ResetCount.Add(1)
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, size int, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotBytesSum.Add(int64(size))
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GenerateCount:    b.GenerateCount.Load(),
		GenerateErrors:   b.GenerateErrors.Load(),
		StepCount:        b.StepCount.Load(),
		StepErrors:       b.StepErrors.Load(),
		StepAvgNanos:     b.getAvgStepNanos(),
		ResetCount:       b.ResetCount.Load(),
		SnapshotCount:    b.SnapshotCount.Load(),
		SnapshotErrors:   b.SnapshotErrors.Load(),
		SnapshotBytesSum: b.SnapshotBytesSum.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgStepNanos() int64 {
	count := b.StepCount.Load()
	if count == 0 {
		return 0
	}
	return b.StepTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GenerateCount    int64
	GenerateErrors   int64
	StepCount        int64
	StepErrors       int64
	StepAvgNanos     int64
	ResetCount       int64
	SnapshotCount    int64
	SnapshotErrors   int64
	SnapshotBytesSum int64
}
