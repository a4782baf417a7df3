package timedcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/timedcache/codec"
	"github.com/unkn0wn-root/timedcache/provider/memory"
)

type cache[V any] struct {
	ns    string
	store store[V]
	log   Logger
	hooks Hooks
	clock Clock

	staleTTL      time.Duration
	expireTTL     time.Duration
	allowStale    bool
	sweepInterval time.Duration

	closed    atomic.Bool
	stopCh    chan struct{}
	closeWg   sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	for _, d := range []struct {
		field string
		v     time.Duration
	}{
		{"StaleTTL", opts.StaleTTL},
		{"ExpireTTL", opts.ExpireTTL},
		{"RetentionTTL", opts.RetentionTTL},
		{"SweepInterval", opts.SweepInterval},
	} {
		if d.v < 0 {
			return nil, &ConfigError{Field: d.field, Reason: fmt.Sprintf("negative duration %v", d.v)}
		}
	}

	c := &cache[V]{
		allowStale:    !opts.DisallowStale,
		sweepInterval: opts.SweepInterval,
	}

	// defaults
	c.staleTTL = coalesce[time.Duration](opts.StaleTTL, defaultStaleTTL)
	c.expireTTL = coalesce[time.Duration](opts.ExpireTTL, defaultExpireTTL)
	c.ns = coalesce[string](opts.Namespace, defaultNamespace)
	c.clock = coalesce[Clock](opts.Clock, SystemClock)
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	if c.staleTTL > c.expireTTL {
		return nil, &ConfigError{
			Field:  "StaleTTL",
			Reason: fmt.Sprintf("stale duration %v exceeds expire duration %v", c.staleTTL, c.expireTTL),
		}
	}
	if opts.RetentionTTL > 0 && opts.RetentionTTL < c.expireTTL {
		return nil, &ConfigError{
			Field:  "RetentionTTL",
			Reason: fmt.Sprintf("retention %v shorter than expire duration %v", opts.RetentionTTL, c.expireTTL),
		}
	}

	// No Provider and no Codec: keep Go values in process, untouched.
	if opts.Provider == nil && opts.Codec == nil {
		c.store = newMemStore[V]()
	} else {
		p := opts.Provider
		if p == nil {
			p = memory.New()
		}
		cd := opts.Codec
		if cd == nil {
			cd = codec.JSON[V]{}
		}
		c.store = newProviderStore[V](p, cd, c.ns, opts.RetentionTTL, c.log, c.hooks)
	}

	if c.sweepInterval > 0 {
		c.stopCh = make(chan struct{})
		c.closeWg.Add(1)
		go c.sweepLoop()
	}
	return c, nil
}

func (c *cache[V]) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.stopCh != nil {
			close(c.stopCh)
			c.closeWg.Wait()
		}
		c.closeErr = c.store.close(ctx)
	})
	return c.closeErr
}

func (c *cache[V]) Get(ctx context.Context, key string) (Entry[V], bool, error) {
	var zero Entry[V]
	if c.closed.Load() {
		return zero, false, ErrClosed
	}
	now := c.clock.Now()

	e, ok, err := c.store.get(ctx, key)
	if err != nil {
		return zero, false, &OpError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return zero, false, nil
	}

	if !c.allowStale && e.IsStale(now) {
		c.hooks.StaleRejected(key)
		return zero, false, nil
	}
	if e.IsExpired(now) {
		c.hooks.ExpiredMiss(key)
		return zero, false, nil
	}
	if e.IsStale(now) {
		c.hooks.StaleServed(key)
	}
	return e, true, nil
}

func (c *cache[V]) Set(ctx context.Context, key string, payload V) error {
	if c.closed.Load() {
		return ErrClosed
	}
	st, err := c.store.stage(payload)
	if err != nil {
		return &OpError{Op: "set", Key: key, Err: err}
	}
	_, err = c.put(ctx, "set", key, st)
	return err
}

func (c *cache[V]) DangerouslySetAll(ctx context.Context, payload V, onKey func(key string)) error {
	if c.closed.Load() {
		return ErrClosed
	}
	st, err := c.store.stage(payload)
	if err != nil {
		return &OpError{Op: "bulk_refresh", Err: err}
	}

	// snapshot: keys written after this point are not touched
	keys, err := c.store.keys(ctx)
	if err != nil {
		return &OpError{Op: "bulk_refresh", Err: err}
	}

	refreshed := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			c.log.Debug("bulk refresh interrupted", Fields{"namespace": c.ns, "refreshed": refreshed, "total": len(keys)})
			return err
		}
		ok, err := c.put(ctx, "bulk_refresh", key, st)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		refreshed++
		if onKey != nil {
			onKey(key)
		}
	}

	c.log.Debug("bulk refresh done", Fields{"namespace": c.ns, "refreshed": refreshed, "total": len(keys)})
	c.hooks.BulkRefreshed(c.ns, refreshed)
	return nil
}

func (c *cache[V]) BulkRefresh(ctx context.Context, payload V, onKey func(key string)) error {
	return c.DangerouslySetAll(ctx, payload, onKey)
}

// put stamps st with timestamps from one clock read and replaces the stored
// entry. ok=false means the provider refused the write.
func (c *cache[V]) put(ctx context.Context, op, key string, st staged[V]) (bool, error) {
	now := c.clock.Now()
	ok, err := c.store.put(ctx, key, st, now.Add(c.staleTTL), now.Add(c.expireTTL))
	if err != nil {
		return false, &OpError{Op: op, Key: key, Err: err}
	}
	return ok, nil
}
