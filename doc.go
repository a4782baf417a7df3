// Package timedcache implements an in-process key-value cache with two-stage,
// time-based validity: every entry carries a StaleAt (soft expiry) and an
// ExpireAt (hard expiry) computed from the write instant.
//
//   - Fresh:   now < StaleAt               -> returned
//   - Stale:   StaleAt <= now < ExpireAt   -> returned unless DisallowStale
//   - Expired: now >= ExpireAt             -> never returned
//
// Expired entries stay in the store until overwritten; Sweep (or SweepInterval)
// removes them when unbounded growth matters.
//
// Storage:
//   - Default: a typed in-process map of Entry[V] behind one RWMutex. Payloads are
//     stored as given and never inspected; Get hands out the Entry by value.
//   - Provider + Codec[V]: byte stores (in-process map, Ristretto, BigCache, Redis)
//     holding framed entries under entry:<ns>:<key>. Every Get decodes a private copy.
//   - Clock: injectable time source, read once per operation.
//
// Read-through pattern with soft-stale refresh:
//
//	e, ok, err := cache.Get(ctx, k)
//	if err == nil && ok {
//		if e.IsStale(time.Now()) {
//			go refresh(k) // serve now, refresh async
//		}
//		return e.Payload
//	}
//	v := fetch(k)
//	_ = cache.Set(ctx, k, v)
//
// DangerouslySetAll rewrites every present key with one shared payload, e.g. after
// an upstream broadcast value changed. It does not add keys.
package timedcache
