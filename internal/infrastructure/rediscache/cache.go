package rediscache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

const (
	searchKeyPrefix = "search:"
	viewKeyPrefix   = "views:"

	searchTTL = 60 * time.Second
)

// Cache is a thin Redis wrapper for two jobs: a short-TTL cache of search
// responses and a write buffer for product view counters, so view tracking
// never adds a synchronous catalog write to the read path.
type Cache struct {
	rdb *redis.Client
}

// New connects using a redis:// URL and verifies with a ping.
func New(ctx context.Context, url string) (*Cache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// SearchKey derives a stable cache key from a normalized filter set.
func SearchKey(f *search.Filters) string {
	payload, _ := json.Marshal(f)
	sum := sha1.Sum(payload)
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}

// GetSearch returns a cached search response, ok=false on miss or error.
func (c *Cache) GetSearch(ctx context.Context, f *search.Filters) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, SearchKey(f)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetSearch stores a search response with the short TTL. Errors are ignored:
// the cache is best-effort.
func (c *Cache) SetSearch(ctx context.Context, f *search.Filters, payload []byte) {
	c.rdb.Set(ctx, SearchKey(f), payload, searchTTL)
}

// IncrView bumps the buffered view counter for a product.
func (c *Cache) IncrView(ctx context.Context, productID string) error {
	return c.rdb.Incr(ctx, viewKeyPrefix+productID).Err()
}

// DrainViews atomically reads and clears all buffered view counters,
// returning productID -> delta. Counters observed mid-drain stay for the
// next pass.
func (c *Cache) DrainViews(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	iter := c.rdb.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := c.rdb.GetDel(ctx, key).Result()
		if err != nil {
			continue // already drained or expired
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			continue
		}
		out[strings.TrimPrefix(key, viewKeyPrefix)] = n
	}
	if err := iter.Err(); err != nil {
		return out, fmt.Errorf("scan view counters: %w", err)
	}
	return out, nil
}
