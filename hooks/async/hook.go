// Package asynchook decouples slow Hooks from the cache hot path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    StaleEvery:   100, // sample ~every 100th stale read
//	    CorruptEvery: 1,   // log every corrupt entry
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := timedcache.New[Quote](timedcache.Options[Quote]{
//	    StaleTTL:  time.Minute,
//	    ExpireTTL: 10 * time.Minute,
//	    Hooks:     hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/timedcache"
)

// Hooks queues events for a pool of workers. Events are dropped when the queue is full
// or after Close.
type Hooks struct {
	inner timedcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once

	mu      sync.RWMutex // guards closed against concurrent sends
	closed  bool
	dropped atomic.Uint64
}

var _ timedcache.Hooks = (*Hooks)(nil)

func New(inner timedcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) StaleServed(k string)   { h.try(func() { h.inner.StaleServed(k) }) }
func (h *Hooks) StaleRejected(k string) { h.try(func() { h.inner.StaleRejected(k) }) }
func (h *Hooks) ExpiredMiss(k string)   { h.try(func() { h.inner.ExpiredMiss(k) }) }
func (h *Hooks) CorruptEntry(k string, err error) {
	h.try(func() { h.inner.CorruptEntry(k, err) })
}
func (h *Hooks) ProviderSetRejected(k string) {
	h.try(func() { h.inner.ProviderSetRejected(k) })
}
func (h *Hooks) BulkRefreshed(ns string, n int) {
	h.try(func() { h.inner.BulkRefreshed(ns, n) })
}
func (h *Hooks) Swept(ns string, n int) { h.try(func() { h.inner.Swept(ns, n) }) }
