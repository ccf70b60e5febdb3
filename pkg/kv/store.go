package kv

import "context"

// Store is the persistence contract the state layer writes through. Each
// store owner serializes its state to a string and persists it under a stable
// key; the implementation behind the interface is interchangeable (in-memory
// for tests, Redis for shared deployments, or whatever the host app provides).
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the value stored under key. Removing a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
