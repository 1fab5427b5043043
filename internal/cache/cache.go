// Package cache stores computed analytics summaries in Redis. The
// summary for a fixed (user, range, granularity) tuple is deterministic
// over the same transactions, so serving a cached copy is safe within a
// short TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const summaryTTL = 5 * time.Minute

// Cache is a nil-safe handle to Redis. A nil *Cache disables caching,
// every lookup misses and every store is a no-op.
type Cache struct {
	client *redis.Client
}

// FromEnv connects to the Redis instance named by REDIS_URL. With the
// variable unset it returns a nil cache and no error; caching is
// optional infrastructure.
func FromEnv() (*Cache, error) {
	redisURL, ok := os.LookupEnv("REDIS_URL")
	if !ok || redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL is not a valid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Msg("summary cache enabled")
	return &Cache{client: client}, nil
}

// SummaryKey builds the cache key for a summary request.
func SummaryKey(userID, from, to, granularity string) string {
	return fmt.Sprintf("summary:%s:%s:%s:%s", userID, from, to, granularity)
}

// GetSummary returns the cached summary JSON for the key, with ok false
// on a miss. Redis failures count as misses so that an unavailable
// cache never fails a request.
func (c *Cache) GetSummary(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
		}
		return nil, false
	}

	return data, true
}

// PutSummary stores the summary JSON under the key with the cache TTL.
func (c *Cache) PutSummary(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key, data, summaryTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
