package kmeanslab

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/kmeanslab/blobstore"
	"github.com/hupe1980/kmeanslab/codec"
	"github.com/hupe1980/kmeanslab/engine"
)

// Snapshot container format: magic, version, codec name, payload.
// The codec name makes files self-describing, so any codec this build knows
// can be selected on load regardless of the session's configured codec.
const (
	snapshotMagic   = "KMLB"
	snapshotVersion = 1
)

func (s *Session) encodeSnapshot() ([]byte, error) {
	payload, err := s.codec.Marshal(s.controller.Snapshot())
	if err != nil {
		return nil, err
	}

	name := s.codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("codec name %q too long", name)
	}

	var buf bytes.Buffer
	buf.Grow(len(snapshotMagic) + 2 + len(name) + len(payload))
	buf.WriteString(snapshotMagic)
	buf.WriteByte(snapshotVersion)
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.Write(payload)

	return buf.Bytes(), nil
}

func decodeSnapshot(data []byte) (engine.Snapshot, error) {
	var snap engine.Snapshot

	if len(data) < len(snapshotMagic)+2 || string(data[:len(snapshotMagic)]) != snapshotMagic {
		return snap, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}
	rest := data[len(snapshotMagic):]

	if rest[0] != snapshotVersion {
		return snap, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, rest[0])
	}

	nameLen := int(rest[1])
	if len(rest) < 2+nameLen {
		return snap, fmt.Errorf("%w: truncated header", ErrCorruptSnapshot)
	}
	name := string(rest[2 : 2+nameLen])

	c, ok := codec.ByName(name)
	if !ok {
		return snap, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	if err := c.Unmarshal(rest[2+nameLen:], &snap); err != nil {
		return snap, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return snap, nil
}

// SaveToWriter saves the session snapshot to an io.Writer.
func (s *Session) SaveToWriter(w io.Writer) error {
	start := time.Now()

	data, err := s.encodeSnapshot()
	if err == nil {
		_, err = w.Write(data)
	}

	s.metrics.RecordSnapshot("save", len(data), time.Since(start), err)
	s.logger.LogSnapshot("save", "", len(data), err)

	return err
}

// SaveToFile saves the session snapshot to a file.
func (s *Session) SaveToFile(filename string) error {
	start := time.Now()

	data, err := s.encodeSnapshot()
	if err == nil {
		err = os.WriteFile(filename, data, 0o644)
	}

	s.metrics.RecordSnapshot("save", len(data), time.Since(start), err)
	s.logger.LogSnapshot("save", filename, len(data), err)

	return err
}

// SaveToStore saves the session snapshot to a blob store under the given name.
func (s *Session) SaveToStore(ctx context.Context, store blobstore.Store, name string) error {
	start := time.Now()

	data, err := s.encodeSnapshot()
	if err == nil {
		err = store.Put(ctx, name, data)
	}

	s.metrics.RecordSnapshot("save", len(data), time.Since(start), err)
	s.logger.LogSnapshot("save", name, len(data), err)

	return err
}

// NewFromReader restores a session from snapshot bytes.
//
// Options apply to the restored session as in New; WithParams/WithK/
// WithDataset are ignored since the snapshot carries the full state.
func NewFromReader(r io.Reader, optFns ...Option) (*Session, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return newFromSnapshotBytes(data, optFns)
}

// NewFromFile restores a session from a snapshot file.
func NewFromFile(filename string, optFns ...Option) (*Session, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return newFromSnapshotBytes(data, optFns)
}

// NewFromStore restores a session from a blob store.
func NewFromStore(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Session, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return newFromSnapshotBytes(data, optFns)
}

func newFromSnapshotBytes(data []byte, optFns []Option) (*Session, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	snap, err := decodeSnapshot(data)
	if err != nil {
		opts.logger.LogSnapshot("load", "", len(data), err)
		return nil, err
	}

	var c engine.Controller
	if err := c.Restore(snap); err != nil {
		err = translateError(err)
		opts.logger.LogSnapshot("load", "", len(data), err)
		return nil, err
	}

	opts.metricsCollector.RecordSnapshot("load", len(data), time.Since(start), nil)
	opts.logger.LogSnapshot("load", "", len(data), nil)

	return &Session{
		controller: &c,
		codec:      opts.codec,
		metrics:    opts.metricsCollector,
		logger:     opts.logger,
	}, nil
}
