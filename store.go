package timedcache

import (
	"context"
	"sync"
	"time"
)

// store is where a cache keeps its entries. Keys are user keys; namespacing is
// the store's business.
//
// get/put/keys return raw errors and the cache wraps them. sweep owns its
// error shape since it fails per key.
type store[V any] interface {
	get(ctx context.Context, key string) (Entry[V], bool, error)
	// stage prepares payload once for any number of puts.
	stage(payload V) (staged[V], error)
	put(ctx context.Context, key string, s staged[V], staleAt, expireAt time.Time) (ok bool, err error)
	keys(ctx context.Context) ([]string, error)
	sweep(ctx context.Context, now time.Time) (removed, scanned int, err error)
	close(ctx context.Context) error
}

type staged[V any] struct {
	payload V
	b       []byte // encoded payload; byte stores only
}

// memStore is the default: entries held as Go values in one map behind one
// RWMutex. Payloads are never encoded or inspected, so any V works.
type memStore[V any] struct {
	mu sync.RWMutex
	m  map[string]Entry[V]
}

var _ store[struct{}] = (*memStore[struct{}])(nil)

func newMemStore[V any]() *memStore[V] {
	return &memStore[V]{m: make(map[string]Entry[V])}
}

// get returns the Entry by value; the caller's copy cannot reach the map.
func (s *memStore[V]) get(_ context.Context, key string) (Entry[V], bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	return e, ok, nil
}

func (s *memStore[V]) stage(payload V) (staged[V], error) {
	return staged[V]{payload: payload}, nil
}

func (s *memStore[V]) put(_ context.Context, key string, st staged[V], staleAt, expireAt time.Time) (bool, error) {
	s.mu.Lock()
	s.m[key] = Entry[V]{Payload: st.payload, StaleAt: staleAt, ExpireAt: expireAt}
	s.mu.Unlock()
	return true, nil
}

func (s *memStore[V]) keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	s.mu.RUnlock()
	return out, nil
}

// sweep holds the write lock for the whole pass, so it never races a put.
func (s *memStore[V]) sweep(ctx context.Context, now time.Time) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	scanned := len(s.m)
	removed := 0
	for k, e := range s.m {
		if e.IsExpired(now) {
			delete(s.m, k)
			removed++
		}
	}
	return removed, scanned, nil
}

func (s *memStore[V]) close(context.Context) error { return nil }

// len reports physically held entries, expired ones included.
func (s *memStore[V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
