package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter implements sliding window rate limiting on Redis sorted sets.
type Limiter struct {
	client    *redis.Client
	keyPrefix string
}

// NewLimiter creates a rate limiter with a Redis backend.
func NewLimiter(client *redis.Client, keyPrefix string) *Limiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &Limiter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// The window bookkeeping runs as a Lua script so the trim, count, and insert
// are atomic under concurrent requests. Member uniqueness comes from an INCR
// counter alongside the sorted set.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current = redis.call('ZCARD', key)

	if current < limit then
		local counter = redis.call('INCR', key .. ':counter')
		redis.call('ZADD', key, now, now .. ':' .. counter)
		local expire_seconds = math.ceil(window_ms / 1000)
		redis.call('EXPIRE', key, expire_seconds)
		redis.call('EXPIRE', key .. ':counter', expire_seconds)
		return {1, limit - current - 1, 0}
	else
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
		local reset_at = 0
		if oldest and #oldest >= 2 then
			reset_at = tonumber(oldest[2]) + window_ms
		end
		return {0, 0, reset_at}
	end
`)

// Allow checks whether a request identified by key fits in the window.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	redisKey := l.keyPrefix + key

	reply, err := slidingWindowScript.Run(ctx, l.client, []string{redisKey},
		now.UnixMilli(),
		now.Add(-window).UnixMilli(),
		limit,
		window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(reply) != 3 {
		return nil, fmt.Errorf("unexpected rate limit reply length: %d", len(reply))
	}

	resetAt := now.Add(window)
	if reply[2] > 0 {
		resetAt = time.UnixMilli(reply[2])
	}

	return &Result{
		Allowed:   reply[0] == 1,
		Remaining: int(reply[1]),
		ResetAt:   resetAt,
		Limit:     limit,
	}, nil
}
