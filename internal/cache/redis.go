package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/config"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// Cache keys for the hot read paths. Both are invalidated on any task
// mutation, directly by the handlers and again by the event worker so
// other replicas converge too.
const (
	KeyTaskList      = "tasks:all"
	KeyReportSummary = "reports:summary"
)

// Cache stores raw JSON response bytes in Redis. The cache is optional:
// when Redis is unreachable every method degrades to a no-op and reads
// fall through to the store.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis from config. A connection failure is logged, not
// fatal.
func New(ctx context.Context, cfg *config.Config) *Cache {
	c := &Cache{ttl: cfg.CacheTTL}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
		return c
	}
	opts.PoolSize = cfg.RedisPoolSize
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "Redis unavailable, cache disabled", "error", err)
		return c
	}
	c.client = client
	logger.Info(ctx, "Redis cache initialized", "pool_size", cfg.RedisPoolSize)
	return c
}

// GetRaw reads cached bytes. Returns (nil, false) on miss, error, or when
// the cache is disabled.
func (c *Cache) GetRaw(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get failed", "error", err, "key", key)
		return nil, false
	}
	return b, true
}

// SetRawAsync writes cached bytes in the background so the response path
// never waits on Redis.
func (c *Cache) SetRawAsync(key string, b []byte) {
	if c == nil || c.client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			logger.Debug(ctx, "Redis set failed", "error", err, "key", key)
		}
	}()
}

// Invalidate deletes keys so the next read goes to the store.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate failed", "error", err)
	}
}

// Ping reports Redis reachability for the readiness probe. A disabled
// cache is not a readiness failure; the service runs without it.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
