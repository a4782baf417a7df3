package ristretto

import (
	"context"
	"testing"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64, Metrics: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}

func TestReadYourWriteAndKeys(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if ok, err := p.Set(ctx, "entry:ns:a", []byte("1"), 0); err != nil || !ok {
		t.Fatalf("Set a: ok=%v err=%v", ok, err)
	}
	if ok, err := p.Set(ctx, "entry:other:b", []byte("2"), 0); err != nil || !ok {
		t.Fatalf("Set b: ok=%v err=%v", ok, err)
	}

	got, ok, err := p.Get(ctx, "entry:ns:a")
	if err != nil || !ok || string(got) != "1" {
		t.Fatalf("Get after Set: ok=%v err=%v got=%q", ok, err, got)
	}

	keys, err := p.Keys(ctx, "entry:ns:")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "entry:ns:a" {
		t.Fatalf("Keys got %v", keys)
	}

	if err := p.Del(ctx, "entry:ns:a"); err != nil {
		t.Fatal(err)
	}
	if keys, _ := p.Keys(ctx, "entry:ns:"); len(keys) != 0 {
		t.Fatalf("Keys after Del got %v", keys)
	}
	if p.Metrics() == nil {
		t.Fatalf("expected metrics when enabled")
	}
}
