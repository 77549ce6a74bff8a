package engine

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/goccy/go-json"

	"github.com/hupe1980/kmeanslab/kmeans"
	"github.com/hupe1980/kmeanslab/model"
)

// Phase identifies where a session is in its lifecycle.
type Phase int

const (
	// PhaseEmpty means no dataset exists yet. Only a zero-value Controller
	// is ever in this phase; New generates a default dataset.
	PhaseEmpty Phase = iota

	// PhaseReady means a dataset is present but no centroids or assignment.
	PhaseReady

	// PhaseRunning means centroids and an assignment exist and the
	// assignment has not yet stabilized.
	PhaseRunning

	// PhaseConverged is terminal until an explicit Generate/SetK/Reset.
	PhaseConverged
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "Empty"
	case PhaseReady:
		return "Ready"
	case PhaseRunning:
		return "Running"
	case PhaseConverged:
		return "Converged"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// RunState is the scalar run bookkeeping of a session. Its fields reset
// together as one unit whenever the dataset or K changes.
type RunState struct {
	// K is the analyst-chosen cluster count.
	K int

	// Iteration counts meaningful step calls since the last reset.
	// The first step initializes centroids and sets it to 1.
	Iteration int

	// Loss is the within-cluster sum of squares. NaN before the first step.
	Loss float64

	// Converged reports whether the assignment has stabilized.
	// Converged implies Step is a no-op.
	Converged bool

	// Phase is the lifecycle state implied by the fields above.
	Phase Phase
}

// runStateJSON is the wire form of RunState. Loss is a pointer so the
// pre-first-step NaN round-trips as null.
type runStateJSON struct {
	K         int      `json:"k"`
	Iteration int      `json:"iteration"`
	Loss      *float64 `json:"loss"`
	Converged bool     `json:"converged"`
	Phase     Phase    `json:"phase"`
}

// MarshalJSON implements json.Marshaler.
func (s RunState) MarshalJSON() ([]byte, error) {
	out := runStateJSON{
		K:         s.K,
		Iteration: s.Iteration,
		Converged: s.Converged,
		Phase:     s.Phase,
	}
	if !math.IsNaN(s.Loss) {
		out.Loss = &s.Loss
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *RunState) UnmarshalJSON(data []byte) error {
	var in runStateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.K = in.K
	s.Iteration = in.Iteration
	s.Converged = in.Converged
	s.Phase = in.Phase
	if in.Loss != nil {
		s.Loss = *in.Loss
	} else {
		s.Loss = math.NaN()
	}
	return nil
}

// RenderState is a read-only snapshot of everything the rendering layer needs.
// It reflects the exact post-event state; no additional computation happens
// when taking one. Centroids and Assignment are nil before the first step.
type RenderState struct {
	Dataset    model.Dataset    `json:"dataset"`
	Centroids  model.Centroids  `json:"centroids,omitempty"`
	Assignment model.Assignment `json:"assignment,omitempty"`
	State      RunState         `json:"state"`
}

// ClusterMembers computes one bitmap of point indices per cluster slot.
// Returns nil before the first step.
func (rs RenderState) ClusterMembers() []*roaring.Bitmap {
	if rs.Assignment == nil {
		return nil
	}
	return kmeans.Members(rs.Assignment, rs.State.K)
}

// ClusterSizes computes the point count per cluster slot.
// Returns nil before the first step.
func (rs RenderState) ClusterSizes() []int {
	if rs.Assignment == nil {
		return nil
	}
	return kmeans.Sizes(rs.Assignment, rs.State.K)
}
