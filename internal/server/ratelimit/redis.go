package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowScript increments a fixed-window counter, starting the window on the
// first hit, and returns the count with the remaining window in milliseconds.
var windowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {n, ttl}
`)

// RedisBackend counts requests in fixed windows stored in Redis.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBackend creates a backend on an existing client. Keys are prefixed
// with "ratelimit:".
func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client, prefix: "ratelimit:"}
}

// DialRedis opens a client and verifies the connection.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Take implements Backend. Burst is ignored; the window admits limit requests.
func (b *RedisBackend) Take(ctx context.Context, key string, limit int, window time.Duration, _ int) (Info, error) {
	res, err := windowScript.Run(ctx, b.client, []string{b.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Info{}, fmt.Errorf("failed to update rate limit counter: %w", err)
	}
	if len(res) != 2 {
		return Info{}, fmt.Errorf("unexpected rate limit script result: %v", res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	info := Info{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetTime: time.Now().Add(ttl),
	}
	if !info.Allowed {
		info.RetryAfter = ttl
	}
	return info, nil
}

// Close closes the underlying client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
