package timedcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// Get returned an entry past its StaleAt (allowed by policy).
	StaleServed(key string)
	// Get treated a stale entry as absent because stale reads are disallowed.
	StaleRejected(key string)
	// Get found an entry past its ExpireAt.
	ExpiredMiss(key string)

	// Stored bytes failed frame or payload decoding; the read was a miss.
	CorruptEntry(storageKey string, err error)

	// Provider returned ok=false on Set (admission/backpressure).
	ProviderSetRejected(storageKey string)

	// DangerouslySetAll finished; count is the number of keys rewritten.
	BulkRefreshed(namespace string, count int)

	// Sweep finished; removed is the number of expired entries deleted.
	Swept(namespace string, removed int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) StaleServed(string)         {}
func (NopHooks) StaleRejected(string)       {}
func (NopHooks) ExpiredMiss(string)         {}
func (NopHooks) CorruptEntry(string, error) {}
func (NopHooks) ProviderSetRejected(string) {}
func (NopHooks) BulkRefreshed(string, int)  {}
func (NopHooks) Swept(string, int)          {}
