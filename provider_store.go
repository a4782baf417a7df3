package timedcache

import (
	"context"
	"strings"
	"time"

	"github.com/unkn0wn-root/timedcache/codec"
	"github.com/unkn0wn-root/timedcache/internal/util"
	"github.com/unkn0wn-root/timedcache/internal/wire"
	pr "github.com/unkn0wn-root/timedcache/provider"
)

// providerStore keeps entries as wire frames in a byte Provider, under
// entry:<ns>:<key>. Payloads go through the Codec.
type providerStore[V any] struct {
	provider  pr.Provider
	codec     codec.Codec[V]
	prefix    string
	retention time.Duration
	log       Logger
	hooks     Hooks
}

var _ store[struct{}] = (*providerStore[struct{}])(nil)

func newProviderStore[V any](p pr.Provider, cd codec.Codec[V], ns string, retention time.Duration, log Logger, hooks Hooks) *providerStore[V] {
	return &providerStore[V]{
		provider:  p,
		codec:     cd,
		prefix:    util.EntryPrefix(ns),
		retention: retention,
		log:       log,
		hooks:     hooks,
	}
}

func (s *providerStore[V]) storageKey(userKey string) string {
	// isolate by namespace
	return s.prefix + userKey
}

// get decodes the frame and payload. Undecodable bytes are reported and read
// as a miss; they are left in place.
func (s *providerStore[V]) get(ctx context.Context, key string) (Entry[V], bool, error) {
	var zero Entry[V]
	k := s.storageKey(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}

	staleAt, expireAt, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		s.corrupt(k, err)
		return zero, false, nil
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		s.corrupt(k, err)
		return zero, false, nil
	}
	return Entry[V]{Payload: v, StaleAt: staleAt, ExpireAt: expireAt}, true, nil
}

func (s *providerStore[V]) stage(payload V) (staged[V], error) {
	b, err := s.codec.Encode(payload)
	if err != nil {
		return staged[V]{}, err
	}
	return staged[V]{b: b}, nil
}

// put replaces the stored frame. ok=false means the provider refused the write.
func (s *providerStore[V]) put(ctx context.Context, key string, st staged[V], staleAt, expireAt time.Time) (bool, error) {
	k := s.storageKey(key)
	ok, err := s.provider.Set(ctx, k, wire.EncodeEntry(staleAt, expireAt, st.b), s.retention)
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.Debug("set rejected by provider", Fields{"key": key})
		s.hooks.ProviderSetRejected(k)
	}
	return ok, nil
}

func (s *providerStore[V]) keys(ctx context.Context) ([]string, error) {
	storageKeys, err := s.provider.Keys(ctx, s.prefix)
	if err != nil {
		return nil, err
	}
	return util.UserKeys(s.prefix, storageKeys), nil
}

// sweep deletes frames whose ExpireAt has passed. Foreign or corrupt bytes are
// left alone; get already treats them as misses.
func (s *providerStore[V]) sweep(ctx context.Context, now time.Time) (int, int, error) {
	expired := func(b []byte) bool {
		ea, err := wire.ExpireAt(b)
		return err == nil && !now.Before(ea)
	}

	keys, err := s.provider.Keys(ctx, s.prefix)
	if err != nil {
		return 0, 0, &OpError{Op: "sweep", Err: err}
	}

	cd, atomicDel := s.provider.(pr.ConditionalDeleter)
	removed := 0
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return removed, len(keys), err
		}
		userKey := strings.TrimPrefix(k, s.prefix)

		if atomicDel {
			deleted, err := cd.DelIf(ctx, k, expired)
			if err != nil {
				return removed, len(keys), &OpError{Op: "sweep", Key: userKey, Err: err}
			}
			if deleted {
				removed++
			}
			continue
		}

		raw, ok, err := s.provider.Get(ctx, k)
		if err != nil {
			return removed, len(keys), &OpError{Op: "sweep", Key: userKey, Err: err}
		}
		if !ok || !expired(raw) {
			continue
		}
		if err := s.provider.Del(ctx, k); err != nil {
			return removed, len(keys), &OpError{Op: "sweep", Key: userKey, Err: err}
		}
		removed++
	}
	return removed, len(keys), nil
}

func (s *providerStore[V]) close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *providerStore[V]) corrupt(storageKey string, err error) {
	s.log.Warn("undecodable entry treated as miss", Fields{"key": storageKey, "err": err})
	s.hooks.CorruptEntry(storageKey, err)
}
