package memory

import (
	"context"
	"sort"
	"testing"
)

func TestSetCopiesAndGet(t *testing.T) {
	ctx := context.Background()
	p := New()

	in := []byte("abc")
	if ok, err := p.Set(ctx, "k", in, 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	in[0] = 'X'

	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}

	if _, ok, _ := p.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss")
	}
}

func TestKeysPrefixAndDel(t *testing.T) {
	ctx := context.Background()
	p := New()
	for _, k := range []string{"entry:a:1", "entry:a:2", "entry:b:1"} {
		_, _ = p.Set(ctx, k, []byte("v"), 0)
	}

	keys, err := p.Keys(ctx, "entry:a:")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "entry:a:1" || keys[1] != "entry:a:2" {
		t.Fatalf("Keys got %v", keys)
	}

	if err := p.Del(ctx, "entry:a:1"); err != nil {
		t.Fatal(err)
	}
	if err := p.Del(ctx, "never-there"); err != nil {
		t.Fatalf("Del on missing key: %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len got %d want 2", p.Len())
	}
}

func TestDelIf(t *testing.T) {
	ctx := context.Background()
	p := New()
	_, _ = p.Set(ctx, "k", []byte("keep"), 0)

	deleted, err := p.DelIf(ctx, "k", func(b []byte) bool { return string(b) == "drop" })
	if err != nil || deleted {
		t.Fatalf("DelIf should refuse: deleted=%v err=%v", deleted, err)
	}
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatalf("key removed despite predicate refusal")
	}

	deleted, err = p.DelIf(ctx, "k", func(b []byte) bool { return string(b) == "keep" })
	if err != nil || !deleted {
		t.Fatalf("DelIf should delete: deleted=%v err=%v", deleted, err)
	}
	if deleted, _ := p.DelIf(ctx, "k", func([]byte) bool { return true }); deleted {
		t.Fatalf("DelIf on missing key reported deletion")
	}
}
