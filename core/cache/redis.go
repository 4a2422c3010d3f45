package cache

import (
	"context"
	"fmt"
	"time"

	"smartschedule-api/core/config"
	"smartschedule-api/core/constants"
	"smartschedule-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type ICache interface {
	IncrementLoginAttempt(ctx context.Context, key string) error
	LoginAttempts(ctx context.Context, key string) (int, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	SetLastScanAt(ctx context.Context, at time.Time) error
	LastScanAt(ctx context.Context) (time.Time, bool, error)
	Close() error
}

type Cache struct {
	client *redis.Client
}

func InitRedis(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &Cache{client: client}, nil
}

func (c *Cache) IncrementLoginAttempt(ctx context.Context, key string) error {
	return c.client.Incr(ctx, constants.RedisKeyLoginAttempts+key).Err()
}

func (c *Cache) LoginAttempts(ctx context.Context, key string) (int, error) {
	count, err := c.client.Get(ctx, constants.RedisKeyLoginAttempts+key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, constants.RedisKeyLoginAttempts+key, ttl).Err()
}

// SetLastScanAt records when the reminder scan last completed. Informational:
// the scan itself re-evaluates all pending/reminded events, so a stale or
// missing value never skips work.
func (c *Cache) SetLastScanAt(ctx context.Context, at time.Time) error {
	return c.client.Set(ctx, constants.RedisKeyLastScanAt, at.UTC().Format(time.RFC3339), 0).Err()
}

func (c *Cache) LastScanAt(ctx context.Context) (time.Time, bool, error) {
	val, err := c.client.Get(ctx, constants.RedisKeyLastScanAt).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	at, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false, err
	}
	return at, true, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
