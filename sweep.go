package timedcache

import (
	"context"
	"time"
)

func (c *cache[V]) Sweep(ctx context.Context) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	return c.sweep(ctx)
}

// sweep deletes entries whose ExpireAt has passed, as of one clock read.
func (c *cache[V]) sweep(ctx context.Context) (int, error) {
	removed, scanned, err := c.store.sweep(ctx, c.clock.Now())
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		c.log.Debug("sweep removed expired entries", Fields{"namespace": c.ns, "removed": removed, "scanned": scanned})
	}
	c.hooks.Swept(c.ns, removed)
	return removed, nil
}

func (c *cache[V]) sweepLoop() {
	defer c.closeWg.Done()
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-ticker.C:
			if _, err := c.sweep(ctx); err != nil && ctx.Err() == nil {
				c.log.Error("background sweep failed", Fields{"namespace": c.ns, "err": err})
			}
		case <-c.stopCh:
			return
		}
	}
}
