package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
)

const keyPrefix = "bikesim:session:"

// RedisLocker holds one Redis lock per session so that several processes
// sharing a database never advance the same session twice
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisLocker connects to Redis and verifies the connection
func NewRedisLocker(ctx context.Context, cfg *config.RedisConfig) (*RedisLocker, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisLockerWithClient(rdb, cfg.LockTTL), rdb, nil
}

// NewRedisLockerWithClient wraps an existing client
func NewRedisLockerWithClient(rdb redislock.RedisClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	}
}

// Lock implements session.Locker
func (l *RedisLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	key := keyPrefix + sessionID
	obtained, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", session.ErrSessionBusy, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	logger := logging.LoggerFromContext(ctx)
	return func() {
		// the caller's context may already be cancelled
		if err := obtained.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Log("WARNING", "Failed to release session lock", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}, nil
}
