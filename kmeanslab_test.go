package kmeanslab

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeanslab/blobstore"
	"github.com/hupe1980/kmeanslab/codec"
	"github.com/hupe1980/kmeanslab/engine"
	"github.com/hupe1980/kmeanslab/synth"
	"github.com/hupe1980/kmeanslab/testutil"
)

func TestSessionLifecycle(t *testing.T) {
	s, err := New(WithSeed(42), WithK(3))
	require.NoError(t, err)

	rs := s.RenderState()
	assert.Equal(t, engine.PhaseReady, rs.State.Phase)
	assert.Len(t, rs.Dataset, synth.DefaultParams.N)
	assert.Equal(t, 3, s.K())
	assert.True(t, math.IsNaN(s.State().Loss))

	rs, err = s.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, rs.State.Iteration)
	assert.Equal(t, engine.PhaseRunning, rs.State.Phase)
	assert.Len(t, rs.Centroids, 3)
	assert.Len(t, rs.Assignment, len(rs.Dataset))

	prevLoss := rs.State.Loss
	rs, err = s.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, rs.State.Iteration)
	assert.LessOrEqual(t, rs.State.Loss, prevLoss)

	s.Reset()
	rs = s.RenderState()
	assert.Equal(t, engine.PhaseReady, rs.State.Phase)
	assert.Nil(t, rs.Centroids)
	assert.Len(t, rs.Dataset, synth.DefaultParams.N)

	require.NoError(t, s.SetK(5))
	assert.Equal(t, 5, s.K())

	require.NoError(t, s.Generate(synth.Params{N: 40, BlobCount: 2, SpreadMin: 0.3, SpreadMax: 0.6, Seed: 9}))
	assert.Len(t, s.RenderState().Dataset, 40)
	assert.Equal(t, 40, s.Params().N)
}

func TestSessionConvergesOnBlobs(t *testing.T) {
	s, err := New(WithDataset(testutil.SeparatedBlobs(20, 5)), WithK(3), WithSeed(5))
	require.NoError(t, err)

	var converged bool
	for i := 0; i < 20; i++ {
		rs, err := s.Step()
		require.NoError(t, err)
		if rs.State.Converged {
			converged = true
			break
		}
	}
	require.True(t, converged, "did not converge within 20 steps")

	// Converged sessions ignore further steps.
	before := s.State()
	rs, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, before, rs.State)
}

func TestErrorTranslation(t *testing.T) {
	t.Run("InvalidConfiguration", func(t *testing.T) {
		_, err := New(WithK(0))
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		s, err := New(WithSeed(1))
		require.NoError(t, err)
		assert.ErrorIs(t, s.SetK(-1), ErrInvalidConfiguration)
	})

	t.Run("InvalidParams", func(t *testing.T) {
		_, err := New(WithParams(synth.Params{N: -5, BlobCount: 1}))
		assert.ErrorIs(t, err, ErrInvalidParams)

		s, err := New(WithSeed(1))
		require.NoError(t, err)
		assert.ErrorIs(t, s.Generate(synth.Params{N: 10, BlobCount: 0}), ErrInvalidParams)

		// The typed cause stays reachable through the chain.
		var ip *synth.ErrInvalidParams
		assert.ErrorAs(t, s.Generate(synth.Params{N: 10, BlobCount: 0}), &ip)
	})
}

func TestSnapshotRoundtrip(t *testing.T) {
	newSteppedSession := func(t *testing.T, optFns ...Option) *Session {
		t.Helper()
		s, err := New(append([]Option{WithSeed(11), WithK(3)}, optFns...)...)
		require.NoError(t, err)
		_, err = s.Step()
		require.NoError(t, err)
		return s
	}

	t.Run("Writer", func(t *testing.T) {
		s := newSteppedSession(t)

		var buf bytes.Buffer
		require.NoError(t, s.SaveToWriter(&buf))

		restored, err := NewFromReader(&buf)
		require.NoError(t, err)
		assert.Equal(t, s.RenderState(), restored.RenderState())
		assert.Equal(t, s.Params(), restored.Params())

		rs, err := restored.Step()
		require.NoError(t, err)
		assert.Equal(t, 2, rs.State.Iteration)
	})

	t.Run("File", func(t *testing.T) {
		s := newSteppedSession(t)
		path := filepath.Join(t.TempDir(), "session.snap")

		require.NoError(t, s.SaveToFile(path))

		restored, err := NewFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, s.RenderState(), restored.RenderState())
	})

	t.Run("Store", func(t *testing.T) {
		s := newSteppedSession(t)
		store := blobstore.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, s.SaveToStore(ctx, store, "sessions/demo.snap"))

		restored, err := NewFromStore(ctx, store, "sessions/demo.snap")
		require.NoError(t, err)
		assert.Equal(t, s.RenderState(), restored.RenderState())

		_, err = NewFromStore(ctx, store, "sessions/missing.snap")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("CompressedCodec", func(t *testing.T) {
		s := newSteppedSession(t, WithCodec(codec.Zstd{}))

		var buf bytes.Buffer
		require.NoError(t, s.SaveToWriter(&buf))

		// The file names its codec, so loading needs no matching option.
		restored, err := NewFromReader(&buf)
		require.NoError(t, err)
		assert.Equal(t, s.RenderState(), restored.RenderState())
	})

	t.Run("ReadyPhase", func(t *testing.T) {
		s, err := New(WithSeed(11))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, s.SaveToWriter(&buf))

		restored, err := NewFromReader(&buf)
		require.NoError(t, err)

		rs := restored.RenderState()
		assert.Equal(t, engine.PhaseReady, rs.State.Phase)
		assert.True(t, math.IsNaN(rs.State.Loss))
		assert.Equal(t, s.RenderState().Dataset, rs.Dataset)
	})
}

func TestSnapshotDecodeErrors(t *testing.T) {
	s, err := New(WithSeed(3))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.SaveToWriter(&buf))
	valid := buf.Bytes()

	t.Run("BadMagic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		copy(data, "XXXX")

		_, err := NewFromReader(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[4] = 99

		_, err := NewFromReader(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		var data []byte
		data = append(data, "KMLB"...)
		data = append(data, 1, 5)
		data = append(data, "bogus"...)
		data = append(data, "{}"...)

		_, err := NewFromReader(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := NewFromReader(bytes.NewReader(valid[:3]))
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[len(data)-1] = '!'

		_, err := NewFromReader(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	s, err := New(WithSeed(2), WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = s.Step()
	require.NoError(t, err)
	_, err = s.Step()
	require.NoError(t, err)

	s.Reset()
	require.NoError(t, s.Generate(synth.Params{N: 30, BlobCount: 2, SpreadMin: 0.2, SpreadMax: 0.4, Seed: 2}))
	require.Error(t, s.Generate(synth.Params{N: -1, BlobCount: 1}))

	var buf bytes.Buffer
	require.NoError(t, s.SaveToWriter(&buf))

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.StepCount)
	assert.Equal(t, int64(0), stats.StepErrors)
	assert.Equal(t, int64(1), stats.ResetCount)
	assert.Equal(t, int64(2), stats.GenerateCount)
	assert.Equal(t, int64(1), stats.GenerateErrors)
	assert.Equal(t, int64(1), stats.SnapshotCount)
	assert.Equal(t, int64(buf.Len()), stats.SnapshotBytesSum)
}

// capturingCollector records the point counts passed to RecordGenerate.
type capturingCollector struct {
	NoopMetricsCollector
	generateN []int
}

func (c *capturingCollector) RecordGenerate(n int, _ time.Duration, _ error) {
	c.generateN = append(c.generateN, n)
}

func TestGenerateZeroParamsReportsEffective(t *testing.T) {
	mc := &capturingCollector{}

	var logBuf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := New(WithSeed(5), WithMetricsCollector(mc), WithLogger(logger))
	require.NoError(t, err)

	// Zero params fall back to the session's configured defaults; metrics
	// and logs must report the effective values, not the zero input.
	require.NoError(t, s.Generate(synth.Params{}))

	require.Len(t, mc.generateN, 1)
	assert.Equal(t, synth.DefaultParams.N, mc.generateN[0])
	assert.Contains(t, logBuf.String(), "n=250")
	assert.Contains(t, logBuf.String(), "blobs=3")
	assert.Len(t, s.RenderState().Dataset, synth.DefaultParams.N)
}

func TestWithNilOptions(t *testing.T) {
	s, err := New(
		WithCodec(nil),
		WithMetricsCollector(nil),
		WithLogger(nil),
		nil,
	)
	require.NoError(t, err)

	_, err = s.Step()
	assert.NoError(t, err)
}
