package timedcache

import "time"

// Clock is the single time source of a cache. Each operation reads it once.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function, e.g. a test clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads time.Now.
var SystemClock Clock = systemClock{}
