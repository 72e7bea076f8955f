// Package rediscache caches serialized estimate responses. Identical inputs
// hit Redis instead of re-running the pipeline; an in-memory mock stands in
// when no Redis address is configured.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements domain.EstimateCache on top of Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache client for the given address.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

// Get returns the cached value for key. Misses and Redis errors both read as
// a miss; the pipeline just recomputes.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the value under key with the given TTL.
func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks Redis connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
