package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter bounds how often a keyed operation may run inside a time window.
type Limiter interface {
	// Allow records one attempt for key and reports whether it is still
	// within the configured budget.
	Allow(ctx context.Context, key string) (bool, error)
}

// FixedWindow is a Limiter backed by a Redis counter per key.
//
// The first attempt in a window creates the counter with the window TTL;
// subsequent attempts increment it. Attempts beyond max are rejected until
// the window expires.
type FixedWindow struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewFixedWindow returns a fixed-window limiter allowing max attempts per window.
func NewFixedWindow(client *redis.Client, prefix string, max int64, window time.Duration) *FixedWindow {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &FixedWindow{
		client: client,
		prefix: "ratelimit:" + prefix + ":",
		max:    max,
		window: window,
	}
}

// Allow records one attempt for key and reports whether it is within budget.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	fk := l.prefix + key

	count, err := l.client.Incr(ctx, fk).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, fk, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= l.max, nil
}
