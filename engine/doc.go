// Package engine implements the step controller: a finite-state machine that
// owns the session's mutable state (dataset, centroids, assignment, run state)
// and advances it one discrete event at a time.
//
// States: Empty -> Ready -> Running -> Converged. Generate, SetK and Reset
// return to Ready; Step advances Running until the assignment stabilizes.
// Convergence is assignment stability, compared positionally per cluster slot,
// not a loss-delta or centroid-movement threshold.
//
// The controller is single-threaded by contract: callers serialize events.
// Every operation runs to completion synchronously; there is no background
// computation and no locking.
package engine
