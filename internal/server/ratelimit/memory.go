package ratelimit

import (
	"context"
	"sync"
	"time"
)

// tokenBucket allows capacity requests at once and refills at a steady rate.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	now := time.Now()
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

// refill must be called with mu held.
func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now
}

// take consumes a token if one is available and reports the bucket state.
func (tb *tokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.refill(now)
	tb.lastAccess = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	}

	remaining = int(tb.tokens)
	resetTime = now
	if tb.tokens < float64(tb.capacity) {
		missing := float64(tb.capacity) - tb.tokens
		resetTime = now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

func (tb *tokenBucket) idleSince() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastAccess
}

// MemoryBackend keeps one token bucket per key in process memory.
type MemoryBackend struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	maxIdle time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryBackend creates an in-memory backend. A positive cleanupInterval
// starts a goroutine that drops buckets idle for over an hour.
func NewMemoryBackend(cleanupInterval time.Duration) *MemoryBackend {
	b := &MemoryBackend{
		buckets: make(map[string]*tokenBucket),
		maxIdle: time.Hour,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go b.cleanupLoop(cleanupInterval)
	}
	return b
}

// Take implements Backend. Capacity is burst, or limit when burst is zero,
// and tokens refill at limit per window.
func (b *MemoryBackend) Take(_ context.Context, key string, limit int, window time.Duration, burst int) (Info, error) {
	bucket := b.bucket(key, limit, window, burst)
	allowed, remaining, resetTime := bucket.take()

	info := Info{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		// time until the next whole token
		info.RetryAfter = time.Duration((1.0 - bucket.fraction()) / bucket.refillRate * float64(time.Second))
	}
	return info, nil
}

func (tb *tokenBucket) fraction() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.tokens
}

func (b *MemoryBackend) bucket(key string, limit int, window time.Duration, burst int) *tokenBucket {
	b.mu.Lock()
	defer b.mu.Unlock()

	if bucket, ok := b.buckets[key]; ok {
		return bucket
	}
	capacity := burst
	if capacity <= 0 {
		capacity = limit
	}
	bucket := newTokenBucket(capacity, float64(limit)/window.Seconds())
	b.buckets[key] = bucket
	return bucket
}

func (b *MemoryBackend) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.cleanup(time.Now().Add(-b.maxIdle))
		case <-b.stop:
			return
		}
	}
}

// cleanup drops buckets not used since cutoff.
func (b *MemoryBackend) cleanup(cutoff time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, bucket := range b.buckets {
		if bucket.idleSince().Before(cutoff) {
			delete(b.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (b *MemoryBackend) Close() error {
	b.once.Do(func() { close(b.stop) })
	return nil
}
