// Package blobstore abstracts where session snapshots live.
//
// Snapshots are small, named, immutable blobs written atomically and read
// whole. MemoryStore and LocalStore cover tests and single-machine use; the
// s3 and minio subpackages back classroom setups that share sessions through
// object storage.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("blob not found")

// Store is an abstraction for storing named snapshot blobs.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
