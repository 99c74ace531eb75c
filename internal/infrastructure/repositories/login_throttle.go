package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// LoginThrottleImpl implements domain.LoginThrottle on Redis. Each key holds
// a failure counter that expires on its own; a successful login resets it.
type LoginThrottleImpl struct {
	client      *redis.Client
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a new login throttle
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) domain.LoginThrottle {
	return &LoginThrottleImpl{
		client:      client,
		prefix:      "login_attempts:",
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow implements domain.LoginThrottle
func (t *LoginThrottleImpl) Allow(ctx context.Context, key string) (bool, error) {
	count, err := t.client.Get(ctx, t.prefix+key).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, err
	}
	return count < t.maxAttempts, nil
}

// RecordFailure implements domain.LoginThrottle
func (t *LoginThrottleImpl) RecordFailure(ctx context.Context, key string) error {
	fullKey := t.prefix + key
	count, err := t.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return err
	}
	// Start the window on the first failure only; later failures ride it out.
	if count == 1 {
		return t.client.Expire(ctx, fullKey, t.window).Err()
	}
	return nil
}

// Reset implements domain.LoginThrottle
func (t *LoginThrottleImpl) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.prefix+key).Err()
}
