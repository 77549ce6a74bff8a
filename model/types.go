package model

import "fmt"

// Point is a 2-D coordinate pair. Points are immutable once generated;
// a dataset is only ever replaced wholesale.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Dataset is an ordered sequence of points of fixed size for a session.
// Order is stable and used only for indexing; it carries no semantic meaning.
type Dataset []Point

// Clone returns a copy of the dataset.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Centroids is an ordered sequence of cluster representatives, indexed by
// cluster id. Slot identity is positional: slot i in one iteration corresponds
// to slot i in the next, even if its members change.
type Centroids []Point

// Clone returns a copy of the centroid sequence.
func (c Centroids) Clone() Centroids {
	if c == nil {
		return nil
	}
	out := make(Centroids, len(c))
	copy(out, c)
	return out
}

// Assignment maps each point index to a cluster id in [0, K).
// It is recomputed wholesale every step, never partially mutated.
type Assignment []int

// Clone returns a copy of the assignment.
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// Equal reports whether a and b assign every point index to the same cluster
// slot. Identity is positional: slot ids are compared directly.
func (a Assignment) Equal(b Assignment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
