// Package memory is the default in-process provider: a map guarded by one RWMutex.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	pr "github.com/unkn0wn-root/timedcache/provider"
)

// Provider keeps values until they are overwritten or deleted.
// TTLs passed to Set are ignored: timedcache decides visibility from the
// timestamps inside each entry, and the store never purges on its own.
type Provider struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var (
	_ pr.Provider           = (*Provider)(nil)
	_ pr.ConditionalDeleter = (*Provider)(nil)
)

func New() *Provider {
	return &Provider{m: make(map[string][]byte)}
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.RLock()
	v, ok := p.m[key]
	p.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set stores a private copy of value; later mutation of the caller's slice
// is not observed.
func (p *Provider) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	cp := make([]byte, len(value))
	copy(cp, value)

	p.mu.Lock()
	p.m[key] = cp
	p.mu.Unlock()
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}

// DelIf deletes key only if pred accepts the stored value, under the write lock.
func (p *Provider) DelIf(_ context.Context, key string, pred func([]byte) bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.m[key]
	if !ok || !pred(v) {
		return false, nil
	}
	delete(p.m, key)
	return true, nil
}

func (p *Provider) Keys(_ context.Context, prefix string) ([]string, error) {
	p.mu.RLock()
	out := make([]string, 0, len(p.m))
	for k := range p.m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	p.mu.RUnlock()
	return out, nil
}

// Len reports the number of physically stored keys, expired ones included.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m)
}

func (p *Provider) Close(_ context.Context) error { return nil }
