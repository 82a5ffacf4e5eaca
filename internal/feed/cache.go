package feed

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// HomeFeedKey is the single cache key the home feed is stored under.
// The cached entry is shared by every viewer and every request: only
// the first unpaginated view is cached, on purpose.
const HomeFeedKey = "index_page"

// DefaultTTL bounds how stale a cached home feed may be served.
const DefaultTTL = 20 * time.Second

// Cache is a time-bounded store for computed feed results. A nil Cache
// is valid and always computes directly, so callers never depend on the
// cache for correctness.
type Cache struct {
	store *gocache.Cache
	ttl   time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// GetOrCompute returns the entry stored under key if it is younger than
// the TTL, otherwise invokes compute, stores the result and returns it.
// Staleness up to the TTL is the contract: a hit is returned unmodified
// even if the underlying posts changed in the interim. If two callers
// race past an expired entry both compute and the last write wins.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	if c == nil {
		return compute()
	}
	if cached, ok := c.store.Get(key); ok {
		return cached, nil
	}
	value, err := compute()
	if err != nil {
		return nil, err
	}
	c.store.Set(key, value, c.ttl)
	return value, nil
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	if c == nil {
		return
	}
	c.store.Flush()
}
