package cms

import (
	"sync"
	"time"
)

// queryCache holds raw JSON results per query. Values are immutable strings, so callers always
// decode a fresh copy.
type queryCache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	raw     string
	expires time.Time
}

func newQueryCache(ttl time.Duration) *queryCache {
	return &queryCache{ttl: ttl, now: time.Now, items: map[string]cacheEntry{}}
}

func (q *queryCache) get(key string) (string, bool) {
	if q == nil || q.ttl <= 0 {
		return "", false
	}
	q.mu.RLock()
	entry, ok := q.items[key]
	q.mu.RUnlock()
	if !ok || q.now().After(entry.expires) {
		return "", false
	}
	return entry.raw, true
}

func (q *queryCache) set(key, raw string) {
	if q == nil || q.ttl <= 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items[key] = cacheEntry{raw: raw, expires: q.now().Add(q.ttl)}
}

func (q *queryCache) purge() {
	if q == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = map[string]cacheEntry{}
}
