package ranking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"unirank/internal/platform/logger"

	json "github.com/goccy/go-json"
)

// Cache is the byte oriented key/value seam the cached Source stores into.
// Get reports ok=false on a miss
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// DefaultCacheKey is where the full record set is memoized
const DefaultCacheKey = "unirank:universities:all"

// CachedSource memoizes an inner Source for a fixed ttl
type CachedSource struct {
	inner Source
	cache Cache
	ttl   time.Duration
	key   string
	// gen moves on every Invalidate; a load that straddles one must not stay cached
	gen atomic.Uint64
}

// CacheOption configures a CachedSource
type CacheOption func(*CachedSource)

// WithCacheKey overrides the cache key, useful when several deployments share one redis
func WithCacheKey(key string) CacheOption {
	return func(c *CachedSource) {
		if key != "" {
			c.key = key
		}
	}
}

// Cached wraps inner; a non positive ttl disables caching
func Cached(inner Source, cache Cache, ttl time.Duration, opts ...CacheOption) *CachedSource {
	if inner == nil {
		panic("ranking: nil inner source")
	}
	c := &CachedSource{inner: inner, cache: cache, ttl: ttl, key: DefaultCacheKey}
	for _, o := range opts {
		o(c)
	}
	return c
}

// All serves from cache when fresh; any cache failure falls through to the inner source
func (c *CachedSource) All(ctx context.Context) ([]Record, error) {
	if c.cache == nil || c.ttl <= 0 {
		return c.inner.All(ctx)
	}
	log := logger.C(ctx).With().Str("component", "ranking.cache").Str("key", c.key).Logger()

	b, ok, err := c.cache.Get(ctx, c.key)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("cache get failed")
	case ok:
		var out []Record
		derr := json.Unmarshal(b, &out)
		if derr == nil {
			return out, nil
		}
		log.Warn().Err(derr).Msg("cache payload undecodable")
	}

	gen := c.gen.Load()
	records, err := c.inner.All(ctx)
	if err != nil {
		return nil, err
	}
	if c.gen.Load() != gen {
		return records, nil
	}
	if payload, err := json.Marshal(records); err != nil {
		log.Warn().Err(err).Msg("cache encode failed")
	} else if err := c.cache.Set(ctx, c.key, payload, c.ttl); err != nil {
		log.Warn().Err(err).Msg("cache set failed")
	} else if c.gen.Load() != gen {
		// invalidated between the check and the set
		if err := c.cache.Del(ctx, c.key); err != nil {
			log.Warn().Err(err).Msg("cache del after stale set failed")
		}
	}
	return records, nil
}

// Invalidate drops the memoized record set and voids loads already in flight
func (c *CachedSource) Invalidate(ctx context.Context) error {
	c.gen.Add(1)
	if c.cache == nil {
		return nil
	}
	return c.cache.Del(ctx, c.key)
}

// MemoryCache is an in process Cache; entries expire when read past their deadline
type MemoryCache struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]memoryItem
}

type memoryItem struct {
	val     []byte
	expires time.Time
}

// NewMemoryCache returns an empty MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now, items: make(map[string]memoryItem)}
}

// Get returns a copy of the value under key when present and fresh
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !it.expires.IsZero() && !m.now().Before(it.expires) {
		delete(m.items, key)
		return nil, false, nil
	}
	return append([]byte(nil), it.val...), true, nil
}

// Set stores a copy of val; ttl <= 0 keeps it until deleted
func (m *MemoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := memoryItem{val: append([]byte(nil), val...)}
	if ttl > 0 {
		it.expires = m.now().Add(ttl)
	}
	m.items[key] = it
	return nil
}

// Del removes keys
func (m *MemoryCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}
