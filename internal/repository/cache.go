// Package repository defines data access interfaces for BlogAPI.
package repository

import (
	"context"
	"time"
)

// Cache defines the interface for response caching.
// Implemented by Redis for multi-node deployments and by an in-process
// map for single-node ones. Cached entries carry a fixed short expiry;
// readers tolerate staleness (there is no active invalidation).
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)
}
