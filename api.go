package timedcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/timedcache/codec"
	pr "github.com/unkn0wn-root/timedcache/provider"
)

// TimedCache is a key-value cache whose entries go fresh -> stale -> expired.
// V is the payload type. Absence is (zero, false, nil), never an error.
type TimedCache[V any] interface {
	// Get returns the entry for key unless it is expired, or stale while stale
	// reads are disallowed. The returned Entry is a copy.
	Get(ctx context.Context, key string) (e Entry[V], ok bool, err error)

	// Set replaces the entry for key, stamping StaleAt/ExpireAt from the current instant.
	// With the default in-process store it fails only after Close.
	Set(ctx context.Context, key string, payload V) error

	// DangerouslySetAll overwrites the payload of every key currently present with
	// the same payload and fresh timestamps. No key is added or removed.
	// onKey, if non-nil, is called once per key after that key was rewritten.
	// Per-key payloads are lost.
	DangerouslySetAll(ctx context.Context, payload V, onKey func(key string)) error

	// BulkRefresh is DangerouslySetAll under a neutral name.
	BulkRefresh(ctx context.Context, payload V, onKey func(key string)) error

	// Sweep physically removes expired entries and reports how many were removed.
	// The cache never needs it for correctness: expired entries are invisible to Get.
	Sweep(ctx context.Context) (removed int, err error)

	Close(ctx context.Context) error
}

// Options configure a TimedCache. Every field is optional.
type Options[V any] struct {
	StaleTTL      time.Duration // 0 => 60s; entry turns stale at write+StaleTTL
	ExpireTTL     time.Duration // 0 => 10m; entry is never returned from write+ExpireTTL on
	DisallowStale bool          // default false => stale-but-unexpired entries are returned

	Clock     Clock  // nil => SystemClock
	Namespace string // "" => "timedcache"; isolates keys inside a shared provider
	Logger    Logger // nil => NopLogger
	Hooks     Hooks  // nil => NopHooks

	// With neither Provider nor Codec set, entries are held in process as Go
	// values: any V works and payloads are never encoded.
	// Setting either one selects the byte path: entries are framed and stored in
	// Provider (nil => provider/memory) after encoding with Codec (nil => codec.JSON[V]).
	Provider pr.Provider
	Codec    c.Codec[V]

	// RetentionTTL is the physical TTL handed to the provider. 0 keeps entries
	// until overwritten. When set it must be >= ExpireTTL.
	RetentionTTL time.Duration
	// SweepInterval runs Sweep in the background. 0 disables it.
	SweepInterval time.Duration
}

func New[V any](opts Options[V]) (TimedCache[V], error) {
	return newCache[V](opts)
}
