package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores keys in Redis under a common prefix. Values do not
// expire.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBackend returns a backend using client. prefix is prepended to
// every key (e.g., "myapp:").
func NewRedisBackend(client redis.UniversalClient, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

// Name returns the backend name
func (b *RedisBackend) Name() string {
	return "redis"
}

// Get reads key from Redis.
func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := b.client.Get(ctx, b.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, newBackendError(b.Name(), "get", key, err)
	}
	return value, true, nil
}

// Set writes key to Redis without expiration.
func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.client.Set(ctx, b.prefix+key, value, 0).Err(); err != nil {
		return newBackendError(b.Name(), "set", key, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
