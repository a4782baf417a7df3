package ristretto

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/timedcache/provider"
)

// Provider adapts a ristretto cache. Ristretto cannot enumerate its keys, so the
// provider keeps its own key index; entries the admission policy dropped or evicted
// are pruned from the index lazily by Keys.
//
// Ristretto bounds memory by cost and may evict. Use it when that trade-off is wanted;
// the default memory provider never evicts.
type Provider struct {
	c    *rc.Cache
	cost func([]byte) int64

	mu    sync.Mutex
	index map[string]struct{}
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// Cost of a stored frame. nil => len(value).
	Cost func(value []byte) int64
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	cost := cfg.Cost
	if cost == nil {
		cost = func(b []byte) int64 { return int64(len(b)) }
	}
	return &Provider{c: c, cost: cost, index: make(map[string]struct{})}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// unexpected entry shape; drop it
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for ristretto's write buffers to drain so the value is visible to the
// next Get. ok=false means the admission policy refused the entry.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	cp := make([]byte, len(value))
	copy(cp, value)

	if !p.c.SetWithTTL(key, cp, p.cost(cp), ttl) {
		return false, nil
	}
	p.c.Wait()
	if _, ok := p.c.Get(key); !ok {
		return false, nil
	}

	p.mu.Lock()
	p.index[key] = struct{}{}
	p.mu.Unlock()
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	p.c.Wait()
	p.mu.Lock()
	delete(p.index, key)
	p.mu.Unlock()
	return nil
}

func (p *Provider) Keys(_ context.Context, prefix string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.index))
	for k := range p.index {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, ok := p.c.Get(k); !ok {
			delete(p.index, k) // evicted, expired or rejected
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's counters (nil unless Config.Metrics was set).
// Keys calls Get on every indexed key, so each bulk refresh or sweep adds one
// hit or miss per indexed key to these counters.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
