package timedcache

import "time"

// Entry is a cached payload with its validity window.
// StaleAt <= ExpireAt always holds.
type Entry[V any] struct {
	Payload  V
	StaleAt  time.Time // soft expiry
	ExpireAt time.Time // hard expiry
}

// State classifies an entry at a given instant.
type State int8

const (
	Fresh   State = iota // now < StaleAt
	Stale                // StaleAt <= now < ExpireAt
	Expired              // now >= ExpireAt
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

func (e Entry[V]) IsStale(now time.Time) bool   { return !now.Before(e.StaleAt) }
func (e Entry[V]) IsExpired(now time.Time) bool { return !now.Before(e.ExpireAt) }

// State lets callers that got a stale entry decide whether to refresh it in the
// background while serving the current payload.
func (e Entry[V]) State(now time.Time) State {
	switch {
	case e.IsExpired(now):
		return Expired
	case e.IsStale(now):
		return Stale
	default:
		return Fresh
	}
}
