// Package kmeans implements the per-step primitives of Lloyd's algorithm:
// nearest-centroid assignment, mean-based centroid updates with empty-cluster
// re-seeding, within-cluster sum of squares, and initial centroid sampling.
//
// The package is deliberately step-oriented: it never iterates to convergence
// itself. The engine package drives one assignment/update round per external
// step event so every intermediate state can be rendered.
package kmeans
