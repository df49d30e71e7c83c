package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LockoutGuard counts failed password checks per username in Redis and
// reports an account as locked once MaxAttempts failures fall within Window.
// Key format: lockout:<NORMALIZED_USERNAME>
type LockoutGuard struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// LockoutConfig tunes the guard. A negative MaxAttempts disables lockout.
type LockoutConfig struct {
	MaxAttempts int
	Window      time.Duration
}

func NewLockoutGuard(client *redis.Client, cfg LockoutConfig) *LockoutGuard {
	max := cfg.MaxAttempts
	if max == 0 {
		max = defaultMaxAttempts
	}
	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}
	return &LockoutGuard{client: client, maxAttempts: int64(max), window: window}
}

func (g *LockoutGuard) enabled() bool { return g.maxAttempts > 0 }

// IsLockedOut reports whether the failure counter reached the limit.
func (g *LockoutGuard) IsLockedOut(ctx context.Context, username string) (bool, error) {
	if !g.enabled() {
		return false, nil
	}
	n, err := g.client.Get(ctx, g.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n >= g.maxAttempts, nil
}

// RecordFailure increments the counter and restarts its expiry window.
func (g *LockoutGuard) RecordFailure(ctx context.Context, username string) error {
	if !g.enabled() {
		return nil
	}
	key := g.key(username)
	_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, g.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lockout record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (g *LockoutGuard) Reset(ctx context.Context, username string) error {
	if !g.enabled() {
		return nil
	}
	return g.client.Del(ctx, g.key(username)).Err()
}

func (g *LockoutGuard) key(username string) string {
	return "lockout:" + domain.NormalizeName(username)
}
