// Package cache provides the redis-backed listings query cache. Caching is
// deliberately dumb: responses are stored per serialized filter criteria and
// invalidated as one unit under the "listings" tag after any successful
// mutation. Ordering between an invalidation and a concurrently in-flight
// fill is redis's problem, not ours; a stale entry lives at most one TTL.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "listings:"
	// tagKey tracks every live cache key so Invalidate can clear the whole tag
	tagKey = "listings:keys"

	defaultTTL = time.Hour
)

// ListingCache caches serialized listing query responses in redis
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache connects to redis and returns a listings cache
func NewListingCache(addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &ListingCache{client: client, ttl: defaultTTL}, nil
}

// Get returns the cached response for the given criteria query string, or
// (nil, nil) on a miss. Redis errors are returned so the caller can log and
// fall through to the database.
func (c *ListingCache) Get(ctx context.Context, query string) ([]byte, error) {
	data, err := c.client.Get(ctx, keyPrefix+query).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set stores a response under the criteria query string and registers the key
// with the tag set.
func (c *ListingCache) Set(ctx context.Context, query string, data []byte) error {
	key := keyPrefix + query
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return err
	}
	return c.client.SAdd(ctx, tagKey, key).Err()
}

// Invalidate drops every cached listings response. Called after any
// successful listing mutation.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, tagKey).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return c.client.Del(ctx, tagKey).Err()
}

// Close releases the redis connection
func (c *ListingCache) Close() error {
	return c.client.Close()
}
