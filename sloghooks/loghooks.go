package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/timedcache"
)

type Options struct {
	// Sampling to avoid floods on hot read paths; 0/1 = log all.
	StaleEvery   uint64
	ExpiredEvery uint64
	CorruptEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	staleCtr   atomic.Uint64
	expiredCtr atomic.Uint64
	corruptCtr atomic.Uint64
}

var _ timedcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) StaleServed(key string) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Debug("timedcache.stale_served", "key", h.redact(key))
}

func (h *Hooks) StaleRejected(key string) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Debug("timedcache.stale_rejected", "key", h.redact(key))
}

func (h *Hooks) ExpiredMiss(key string) {
	if h.l == nil || !sample(h.opts.ExpiredEvery, &h.expiredCtr) {
		return
	}
	h.l.Debug("timedcache.expired_miss", "key", h.redact(key))
}

func (h *Hooks) CorruptEntry(storageKey string, err error) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Warn("timedcache.corrupt_entry",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("timedcache.provider_set_rejected", "key", h.redact(storageKey))
}

func (h *Hooks) BulkRefreshed(ns string, count int) {
	if h.l == nil {
		return
	}
	h.l.Info("timedcache.bulk_refreshed",
		"ns", ns,
		"count", count)
}

func (h *Hooks) Swept(ns string, removed int) {
	if h.l == nil || removed == 0 {
		return
	}
	h.l.Info("timedcache.swept",
		"ns", ns,
		"removed", removed)
}
