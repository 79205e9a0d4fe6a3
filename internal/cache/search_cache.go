package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

const (
	cacheName        = "mentor_search"
	cacheCheckPeriod = 30 * time.Second
)

// SearchCache caches mentor search results keyed by their filter combination.
// Entries expire on TTL and the whole cache is flushed whenever a mentor
// profile changes, so stale results are bounded by both.
type SearchCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewSearchCache creates a search cache with the given TTL in seconds
func NewSearchCache(ttlSeconds int) *SearchCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &SearchCache{
		cache: gocache.New(ttl, cacheCheckPeriod),
		ttl:   ttl,
	}
}

// Key builds the cache key for a filter combination
func (c *SearchCache) Key(filters models.SearchFilters) string {
	minCgpa := ""
	if filters.MinCGPA != nil {
		minCgpa = fmt.Sprintf("%.2f", *filters.MinCGPA)
	}
	return fmt.Sprintf("search=%s|minCgpa=%s|department=%s", filters.Search, minCgpa, filters.Department)
}

// Get returns cached results for the key, if present
func (c *SearchCache) Get(key string) ([]*models.User, bool) {
	val, found := c.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
		return nil, false
	}

	mentors, ok := val.([]*models.User)
	if !ok {
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(cacheName).Inc()
	return mentors, true
}

// Set stores results for the key with the default TTL
func (c *SearchCache) Set(key string, mentors []*models.User) {
	c.cache.Set(key, mentors, c.ttl)
}

// Invalidate flushes all cached results, called after profile updates
func (c *SearchCache) Invalidate() {
	c.cache.Flush()
}
