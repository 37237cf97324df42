package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultMemoryCacheEntries bounds the in-memory cache when nothing is configured.
	DefaultMemoryCacheEntries = 128

	maxMemoryCacheValueBytes = 1 << 20
)

var ErrCacheValueTooLarge = errors.New("cache value too large")

// MemoryCache is a process-local CacheRepository used when Redis is not
// configured. It holds at most maxEntries values, evicting the least recently
// used, and each value expires ttl after it was set.
type MemoryCache struct {
	entries       *expirable.LRU[string, string]
	maxValueBytes int
}

// NewMemoryCache creates a cache of at most maxEntries values. A maxEntries
// <= 0 uses DefaultMemoryCacheEntries; a ttl <= 0 never expires values.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{
		entries:       expirable.NewLRU[string, string](maxEntries, nil, ttl),
		maxValueBytes: maxMemoryCacheValueBytes,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return m.entries.Get(key)
}

// Set stores value under key. Values over 1 MiB are refused so a few huge
// simulations cannot fill the process.
func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	if len(value) > m.maxValueBytes {
		m.entries.Remove(key)
		return ErrCacheValueTooLarge
	}
	m.entries.Add(key, value)
	return nil
}

// Len reports how many values are held, expired ones included until they
// are swept.
func (m *MemoryCache) Len() int {
	return m.entries.Len()
}
