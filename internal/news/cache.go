package news

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores headline payloads in Redis for a fixed TTL, mirroring the
// hourly revalidation window of the upstream source. A nil client turns
// every operation into a no-op, so Redis being absent only costs cache
// hits, never requests. Generated tweets are never cached here.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get returns the cached items for key, or false on any miss or error.
func (c *Cache) Get(ctx context.Context, key string) ([]Item, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[NewsCache] get %s failed: %v", key, err)
		}
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[NewsCache] corrupt entry for %s: %v", key, err)
		return nil, false
	}
	return items, true
}

// Set stores items under key for the configured TTL. Failures are logged
// and swallowed.
func (c *Cache) Set(ctx context.Context, key string, items []Item) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[NewsCache] set %s failed: %v", key, err)
	}
}
