package engine

import (
	"errors"
	"fmt"
)

// ErrCorruptSnapshot is returned when a snapshot fails internal consistency
// checks on restore.
//
// This is an engine-layer sentinel; the kmeanslab package may translate it
// into its public error contract.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// ErrInvalidConfiguration indicates a cluster count the controller cannot run
// against the current dataset: K < 1, or K larger than the number of points
// available for sampling initial centroids without replacement.
//
// The failing operation does not transition state; the previous run state is
// left intact.
type ErrInvalidConfiguration struct {
	K int
	N int // dataset size at the time of the check
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: k=%d with %d points", e.K, e.N)
}
