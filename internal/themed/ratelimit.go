package themed

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RateLimitConfig defines rate limits for a specific method or globally.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustainable rate (tokens added per second).
	RequestsPerSecond float64

	// BurstSize is the maximum number of requests allowed in a burst.
	BurstSize int
}

// DefaultRateLimits provides defaults per RPC.
var DefaultRateLimits = map[string]RateLimitConfig{
	// Rendering responses - moderate limits
	GetByNameMethod:   {RequestsPerSecond: 50, BurstSize: 100},
	GetByIntentMethod: {RequestsPerSecond: 50, BurstSize: 100},

	// Listing and help - higher limits
	ListDesignsMethod: {RequestsPerSecond: 100, BurstSize: 200},
	HelpMethod:        {RequestsPerSecond: 100, BurstSize: 200},

	// Health - essentially unlimited
	PingMethod: {RequestsPerSecond: 1000, BurstSize: 1000},
}

// bucket pairs a limiter with request counters for stats.
type bucket struct {
	limiter  *rate.Limiter
	requests atomic.Int64
	denied   atomic.Int64
}

func newBucket(cfg RateLimitConfig) *bucket {
	return &bucket{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)}
}

func (b *bucket) allow() bool {
	b.requests.Add(1)
	if b.limiter.Allow() {
		return true
	}
	b.denied.Add(1)
	return false
}

// RateLimiter manages rate limits for multiple methods.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	configs map[string]RateLimitConfig

	// Global rate limit (applied to all methods)
	global       *bucket
	globalConfig *RateLimitConfig

	enabled bool
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithMethodLimits sets custom limits for specific methods.
func WithMethodLimits(limits map[string]RateLimitConfig) RateLimiterOption {
	return func(rl *RateLimiter) {
		for method, cfg := range limits {
			rl.configs[method] = cfg
		}
	}
}

// WithGlobalLimit sets a global rate limit applied to all methods.
func WithGlobalLimit(cfg RateLimitConfig) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.globalConfig = &cfg
		rl.global = newBucket(cfg)
	}
}

// WithEnabled enables or disables rate limiting.
func WithEnabled(enabled bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.enabled = enabled
	}
}

// NewRateLimiter creates a new rate limiter with the given options.
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		configs: make(map[string]RateLimitConfig),
		enabled: true,
	}
	for method, cfg := range DefaultRateLimits {
		rl.configs[method] = cfg
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow checks if a request to the given method is allowed.
func (rl *RateLimiter) Allow(method string) bool {
	if !rl.IsEnabled() {
		return true
	}
	if rl.global != nil && !rl.global.allow() {
		return false
	}

	b := rl.getBucket(method)
	if b == nil {
		return true
	}
	return b.allow()
}

// getBucket returns the bucket for a method, creating it if needed.
func (rl *RateLimiter) getBucket(method string) *bucket {
	rl.mu.RLock()
	b, exists := rl.buckets[method]
	rl.mu.RUnlock()
	if exists {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, exists = rl.buckets[method]; exists {
		return b
	}
	cfg, ok := rl.configs[method]
	if !ok {
		return nil
	}
	b = newBucket(cfg)
	rl.buckets[method] = b
	return b
}

// MethodStats reports usage of one limit.
type MethodStats struct {
	Method           string
	Available        float64
	RequestsPerSec   float64
	BurstSize        int
	TotalRequests    int64
	DeniedRequests   int64
	DeniedPercentage float64
}

func (b *bucket) stats(method string, cfg RateLimitConfig) MethodStats {
	ms := MethodStats{
		Method:         method,
		Available:      b.limiter.Tokens(),
		RequestsPerSec: cfg.RequestsPerSecond,
		BurstSize:      cfg.BurstSize,
		TotalRequests:  b.requests.Load(),
		DeniedRequests: b.denied.Load(),
	}
	if ms.TotalRequests > 0 {
		ms.DeniedPercentage = float64(ms.DeniedRequests) / float64(ms.TotalRequests) * 100
	}
	return ms
}

// Stats returns statistics for all configured methods, sorted by method.
func (rl *RateLimiter) Stats() []MethodStats {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	stats := make([]MethodStats, 0, len(rl.configs))
	for method, cfg := range rl.configs {
		if b, ok := rl.buckets[method]; ok {
			stats = append(stats, b.stats(method, cfg))
			continue
		}
		stats = append(stats, MethodStats{
			Method:         method,
			Available:      float64(cfg.BurstSize),
			RequestsPerSec: cfg.RequestsPerSecond,
			BurstSize:      cfg.BurstSize,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Method < stats[j].Method })
	return stats
}

// GlobalStats returns statistics for the global rate limit.
func (rl *RateLimiter) GlobalStats() *MethodStats {
	if rl.global == nil || rl.globalConfig == nil {
		return nil
	}
	ms := rl.global.stats("global", *rl.globalConfig)
	return &ms
}

// SetEnabled enables or disables rate limiting at runtime.
func (rl *RateLimiter) SetEnabled(enabled bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.enabled = enabled
}

// IsEnabled returns whether rate limiting is currently enabled.
func (rl *RateLimiter) IsEnabled() bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.enabled
}

// UnaryServerInterceptor returns a gRPC unary interceptor that applies rate limiting.
func (rl *RateLimiter) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if !rl.Allow(info.FullMethod) {
			return nil, status.Errorf(codes.ResourceExhausted,
				"rate limit exceeded for method %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}
