// Package provider defines the byte store behind timedcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// bytes previously passed to Set for a key (no metadata, no re-encoding, no mutation).
// If a store compresses internally it MUST fully reverse that on Get.
//
// The keyspace "entry:<ns>:" is owned by timedcache. Foreign writes under that
// prefix fail strict frame validation and are treated as misses.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with optional TTLs and key enumeration.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the whole value stored under key.
	// ttl <= 0 means "keep until overwritten or deleted".
	// Returns ok=false when the store refused the write.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort). Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Keys returns a point-in-time snapshot of the stored keys starting with prefix.
	// Order is unspecified. Keys written after the call started may or may not appear.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases resources.
	Close(ctx context.Context) error
}

// ConditionalDeleter is implemented by providers that can check and delete a key
// atomically with respect to Set. Sweep prefers it; otherwise it falls back to
// Get followed by Del, which can drop a write that lands in between.
type ConditionalDeleter interface {
	DelIf(ctx context.Context, key string, pred func(value []byte) bool) (deleted bool, err error)
}
