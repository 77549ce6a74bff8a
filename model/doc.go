// Package model defines the core value types of the k-means step engine.
//
//   - Point: an (x, y) coordinate pair
//   - Dataset: an ordered, fixed-size point set for a session
//   - Centroids: one representative point per cluster slot
//   - Assignment: point index -> cluster id mapping
//
// Cluster ids are 0-based slice indices in [0, K).
package model
