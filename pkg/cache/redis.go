package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	// URL is a redis:// or rediss:// connection string.
	URL string
	// Prefix namespaces every key, e.g. "rbgen:".
	Prefix string
	// Retry governs retries of transient failures. Zero uses DefaultRetryPolicy.
	Retry RetryPolicy
}

// RedisCache stores entries in Redis with native key expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
	retry  RetryPolicy
}

// NewRedisCache connects to the server named by cfg.URL and pings it.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := &RedisCache{
		client: redis.NewClient(opts),
		prefix: cfg.Prefix,
		retry:  cfg.Retry,
	}
	if c.retry.Attempts == 0 {
		c.retry = DefaultRetryPolicy
	}
	if err := c.retry.Do(ctx, func() error { return c.classify(c.client.Ping(ctx).Err()) }); err != nil {
		c.client.Close()
		return nil, err
	}
	return c, nil
}

// Get returns the entry for key. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var found bool
	err := c.retry.Do(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return c.classify(err)
		}
		data, found = b, true
		return nil
	})
	return data, found, err
}

// Set stores data under key. A non-positive ttl never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.retry.Do(ctx, func() error {
		return c.classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.retry.Do(ctx, func() error {
		return c.classify(c.client.Del(ctx, c.prefix+key).Err())
	})
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks connection failures retryable. Context errors and server
// replies are returned as is.
func (c *RedisCache) classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var reply redis.Error
	if errors.As(err, &reply) {
		return err
	}
	return Retryable(fmt.Errorf("%w: %v", ErrUnavailable, err))
}

var _ Cache = (*RedisCache)(nil)
