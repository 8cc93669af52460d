package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace  = "cw:catalog"
	generationKey = keyNamespace + ":generation"
)

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
}

// RedisCache stores catalog reads as JSON. Entries are namespaced by a
// generation counter, so Invalidate only has to bump the counter and stale
// entries age out through their TTL.
type RedisCache struct {
	store cmdable
	ttl   time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{store: client, ttl: ttl}
}

// Get looks key up under the current generation and returns the slot it
// resolved to. A read-through caller writes back to that slot with Set, so a
// fill that races an Invalidate lands in the retired generation.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (string, bool, error) {
	slot, err := c.slot(ctx, key)
	if err != nil {
		return "", false, err
	}

	raw, err := c.store.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return slot, false, nil
	}
	if err != nil {
		return slot, false, fmt.Errorf("reading cache key %s: %w", slot, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return slot, false, fmt.Errorf("decoding cache key %s: %w", slot, err)
	}
	return slot, true, nil
}

func (c *RedisCache) Set(ctx context.Context, slot string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache key %s: %w", slot, err)
	}

	if err := c.store.Set(ctx, slot, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache key %s: %w", slot, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.store.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bumping catalog cache generation: %w", err)
	}
	return nil
}

func (c *RedisCache) slot(ctx context.Context, key string) (string, error) {
	gen, err := c.store.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", fmt.Errorf("reading catalog cache generation: %w", err)
	}
	return fmt.Sprintf("%s:%s:%s", keyNamespace, gen, key), nil
}
