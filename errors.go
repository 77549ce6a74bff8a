package kmeanslab

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanslab/engine"
	"github.com/hupe1980/kmeanslab/synth"
)

var (
	// ErrInvalidConfiguration is returned when a cluster count cannot run
	// against the current dataset (K < 1 or K > number of points).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidParams is returned when dataset generation parameters are
	// out of range.
	ErrInvalidParams = errors.New("invalid params")

	// ErrCorruptSnapshot is returned when a snapshot fails consistency
	// checks on load.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrUnknownCodec is returned when a snapshot names a codec this build
	// does not know.
	ErrUnknownCodec = errors.New("unknown codec")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ic *engine.ErrInvalidConfiguration
	if errors.As(err, &ic) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	var ip *synth.ErrInvalidParams
	if errors.As(err, &ip) {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	if errors.Is(err, engine.ErrCorruptSnapshot) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}
