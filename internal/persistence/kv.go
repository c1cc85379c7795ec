package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV is a Redis-backed key-value store used as the durable side of the
// session and restaurant stores. Keys are namespaced by prefix; values
// expire after ttl so abandoned sessions age out on their own.
type RedisKV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisKV builds a KV store on top of an existing Redis connection.
func NewRedisKV(r *Redis, prefix string, ttl time.Duration) *RedisKV {
	return &RedisKV{client: r.Client, prefix: prefix, ttl: ttl}
}

// Get returns the value for key and whether it exists.
func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set writes the value for key, refreshing its TTL.
func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

// Delete removes the given keys. Missing keys are not an error.
func (s *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	return s.client.Del(ctx, prefixed...).Err()
}
