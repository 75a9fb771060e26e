// Package cache provides a nil-safe redis wrapper for listing responses.
// When the server runs without redis, the nil *Cache is a no-op and every
// lookup is a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/campusmarket/internal/logging"
)

const DefaultTTL = 5 * time.Minute

type Cache struct {
	client *redis.Client
	logger logging.Logger
}

// New connects to redis at addr. An empty addr returns a nil Cache, which is
// safe to use.
func New(ctx context.Context, addr string, logger logging.Logger) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client, logger: logger}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetJSON loads the value at key into dest. Returns false on a miss or any
// redis error; cache failures never fail the request.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn(ctx, "redis get failed", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn(ctx, "cache entry corrupt, dropping", "key", key, "error", err)
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// SetJSON stores value at key with the given TTL. Best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn(ctx, "redis set failed", "key", key, "error", err)
	}
}

// InvalidatePrefix removes every key under the prefix. Uses SCAN so it stays
// safe on shared instances.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn(ctx, "redis scan failed", "prefix", prefix, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn(ctx, "redis del failed", "prefix", prefix, "error", err)
	}
}
