package timedcache

import (
	"context"
	"testing"
	"time"

	"github.com/unkn0wn-root/timedcache/internal/util"
	pr "github.com/unkn0wn-root/timedcache/provider"
	"github.com/unkn0wn-root/timedcache/provider/memory"
)

// plainProvider hides memory.Provider's DelIf so Sweep takes the Get+Del path.
type plainProvider struct{ pr.Provider }

func TestSweepRemovesOnlyExpired(t *testing.T) {
	for _, tc := range []struct {
		name string
		wrap func(*memory.Provider) pr.Provider
	}{
		{"conditional_delete", func(m *memory.Provider) pr.Provider { return m }},
		{"get_then_del", func(m *memory.Provider) pr.Provider { return plainProvider{m} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			clk := newFakeClock()
			mp := memory.New()
			hooks := &injectedHooks{}
			cc := newTestCache(t, clk, tc.wrap(mp), func(o *Options[quote]) { o.Hooks = hooks })

			_ = cc.Set(ctx, "a", quote{Symbol: "a"})
			_ = cc.Set(ctx, "b", quote{Symbol: "b"})
			clk.Advance(9 * time.Minute)
			_ = cc.Set(ctx, "c", quote{Symbol: "c"})
			_, _ = mp.Set(ctx, util.EntryPrefix("quotes")+"foreign", []byte("junk"), 0)
			_, _ = mp.Set(ctx, "entry:othercache:x", []byte("junk"), 0)
			clk.Advance(time.Minute) // a, b hit ExpireAt exactly

			removed, err := cc.Sweep(ctx)
			if err != nil {
				t.Fatalf("Sweep: %v", err)
			}
			if removed != 2 {
				t.Fatalf("removed got %d want 2", removed)
			}
			if mp.Len() != 3 {
				t.Fatalf("expected c + foreign + other namespace to remain, len=%d", mp.Len())
			}
			if e := mustGet(t, cc, "c"); e.Payload.Symbol != "c" {
				t.Fatalf("unexpired entry damaged: %+v", e.Payload)
			}
			if len(hooks.sweptCounts) != 1 || hooks.sweptCounts[0] != 2 {
				t.Fatalf("Swept hook got %v", hooks.sweptCounts)
			}

			// swept keys are gone for bulk refresh as well
			var seen []string
			_ = cc.DangerouslySetAll(ctx, quote{Symbol: "z"}, func(k string) { seen = append(seen, k) })
			for _, k := range seen {
				if k == "a" || k == "b" {
					t.Fatalf("swept key %q was refreshed", k)
				}
			}
		})
	}
}

func TestSweepEmptyStore(t *testing.T) {
	cc := newTestCache(t, newFakeClock(), nil, nil)
	removed, err := cc.Sweep(context.Background())
	if err != nil || removed != 0 {
		t.Fatalf("empty sweep: removed=%d err=%v", removed, err)
	}
}

func TestSweepDefaultStore(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	cc := newTestCache(t, clk, nil, nil)
	ms := mustImpl(t, cc).store.(*memStore[quote])

	_ = cc.Set(ctx, "old", quote{Symbol: "old"})
	clk.Advance(defaultExpireTTL - time.Minute)
	_ = cc.Set(ctx, "new", quote{Symbol: "new"})
	clk.Advance(time.Minute)

	removed, err := cc.Sweep(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("Sweep: removed=%d err=%v", removed, err)
	}
	if ms.len() != 1 {
		t.Fatalf("expected only the unexpired entry to remain, len=%d", ms.len())
	}
	mustGet(t, cc, "new")
}

func TestBackgroundSweep(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	mp := memory.New()
	cc := newTestCache(t, clk, mp, func(o *Options[quote]) { o.SweepInterval = 5 * time.Millisecond })

	_ = cc.Set(ctx, "k", quote{Symbol: "k"})
	clk.Advance(defaultExpireTTL)

	deadline := time.Now().Add(2 * time.Second)
	for mp.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("background sweep did not remove expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := cc.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
