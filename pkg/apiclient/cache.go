package apiclient

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mwapio/console/pkg/observability"
)

// Cache is the client-side entity cache. Entries are keyed by entity
// type, optional entity ID, and encoded query parameters, and hold the
// marshaled JSON of the fetched value.
//
// A nil *Cache is valid and disables caching.
type Cache struct {
	lru     *lru.LRU[string, []byte]
	metrics *observability.Metrics
}

// NewCache creates an entity cache with the given capacity and TTL
func NewCache(size int, ttl time.Duration, metrics *observability.Metrics) *Cache {
	if size <= 0 {
		size = 128
	}
	return &Cache{
		lru:     lru.NewLRU[string, []byte](size, nil, ttl),
		metrics: metrics,
	}
}

// CacheKey builds the content-addressed key for an entity fetch.
// id is empty for list fetches; query may be nil.
func CacheKey(entity, id string, query url.Values) string {
	key := entity
	if id != "" {
		key += "/" + id
	}
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	return key
}

// Get unmarshals a cached entry into dest, reporting whether it was present
func (c *Cache) Get(key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	entity := keyEntity(key)
	data, ok := c.lru.Get(key)
	if !ok {
		c.metrics.RecordCacheMiss(entity)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// A poisoned entry is dropped rather than served.
		c.lru.Remove(key)
		c.metrics.RecordCacheMiss(entity)
		return false
	}
	c.metrics.RecordCacheHit(entity)
	return true
}

// Put stores a value under the given key
func (c *Cache) Put(key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.lru.Add(key, data)
}

// Invalidate removes every list entry for the entity type and every
// entry addressed by the given entity ID. It runs synchronously so a
// refetch issued immediately after a mutation observes fresh state.
func (c *Cache) Invalidate(entity, id string) {
	if c == nil {
		return
	}

	listPrefix := entity + "?"
	idKey := entity + "/" + id
	idPrefix := idKey + "?"

	for _, key := range c.lru.Keys() {
		if key == entity || strings.HasPrefix(key, listPrefix) {
			c.lru.Remove(key)
			continue
		}
		if id != "" && (key == idKey || strings.HasPrefix(key, idPrefix)) {
			c.lru.Remove(key)
		}
	}
	c.metrics.RecordCacheInvalidation(keyEntity(entity))
}

// Purge drops every cached entry
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// keyEntity extracts the entity type from a cache key for metrics labels
func keyEntity(key string) string {
	if i := strings.IndexAny(key, "/?"); i >= 0 {
		return key[:i]
	}
	return key
}
