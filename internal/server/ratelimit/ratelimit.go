// Package ratelimit limits API requests per client. Counters live in process
// memory by default or in Redis when several instances must share them.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Backend consumes one request from the counter identified by key.
type Backend interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, burst int) (Info, error)
	Close() error
}

// Limiter applies per-client, per-endpoint limits on top of a Backend.
type Limiter struct {
	config  *Config
	backend Backend
	logger  *zap.Logger
}

// NewLimiter creates a rate limiter. A nil backend selects in-memory token
// buckets and a nil config the package defaults.
func NewLimiter(config *Config, backend Backend, logger *zap.Logger) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if backend == nil {
		backend = NewMemoryBackend(config.CleanupInterval)
	}
	return &Limiter{config: config, backend: backend, logger: logger}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Backend failures let the request through.
func (l *Limiter) Allow(ctx context.Context, clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	scope := "default"
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	} else {
		scope = endpoint.Method + " " + endpoint.Path
	}

	// Unlimited endpoint (e.g., health check)
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	info, err := l.backend.Take(ctx, clientID+"|"+scope, endpoint.Limit, endpoint.Window, endpoint.Burst)
	if err != nil {
		l.logger.Warn("rate limit backend failed, allowing request",
			zap.String("client", clientID), zap.String("scope", scope), zap.Error(err))
		return true, Info{Allowed: true}
	}
	return info.Allowed, info
}

// Stop releases the backend.
func (l *Limiter) Stop() {
	if err := l.backend.Close(); err != nil {
		l.logger.Warn("failed to close rate limit backend", zap.Error(err))
	}
}
