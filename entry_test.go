package timedcache

import (
	"context"
	"testing"
	"time"
)

func TestEntryStateBoundaries(t *testing.T) {
	base := time.Unix(0, 0)
	e := Entry[int]{StaleAt: base.Add(time.Second), ExpireAt: base.Add(2 * time.Second)}

	cases := []struct {
		at   time.Duration
		want State
	}{
		{0, Fresh},
		{time.Second - time.Nanosecond, Fresh},
		{time.Second, Stale},
		{2*time.Second - time.Nanosecond, Stale},
		{2 * time.Second, Expired},
		{time.Hour, Expired},
	}
	for _, tc := range cases {
		if got := e.State(base.Add(tc.at)); got != tc.want {
			t.Fatalf("at %v: got %v want %v", tc.at, got, tc.want)
		}
	}
	if Fresh.String() != "fresh" || Stale.String() != "stale" || Expired.String() != "expired" || State(9).String() != "unknown" {
		t.Fatalf("unexpected State strings")
	}
}

func TestClockFuncDrivesCache(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	cc, err := New[string](Options[string]{
		StaleTTL:  time.Second,
		ExpireTTL: time.Second,
		Clock:     ClockFunc(func() time.Time { return now }),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer cc.Close(ctx)

	_ = cc.Set(ctx, "k", "v")
	if e, ok, _ := cc.Get(ctx, "k"); !ok || e.Payload != "v" || !e.StaleAt.Equal(e.ExpireAt) {
		t.Fatalf("got ok=%v entry=%+v", ok, e)
	}
	now = now.Add(time.Second)
	if _, ok, _ := cc.Get(ctx, "k"); ok {
		t.Fatalf("entry should be expired when stale == expire window elapses")
	}
}
