package timedcache

import (
	"errors"
	"fmt"
)

var ErrClosed = errors.New("timedcache: cache is closed")

// ConfigError reports an Options field New refused.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("timedcache: invalid %s: %s", e.Field, e.Reason)
}

// OpError wraps a provider or codec failure. A miss is never an OpError.
type OpError struct {
	Op  string // "get", "set", "bulk_refresh", "sweep"
	Key string // user key; empty for whole-store operations
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("timedcache: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("timedcache: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
