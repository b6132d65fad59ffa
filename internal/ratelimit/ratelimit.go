// Package ratelimit provides a keyed token-bucket rate limiter.
// The remote client uses it to pace outbound requests per host.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedLimiter manages per-key rate limiting.
// Each unique key gets its own independent token bucket.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a new keyed limiter.
// rps: requests per second allowed per key.
// burst: tokens available immediately per key.
func New(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until a request for the given key is allowed or the context
// is canceled. Use for outbound requests.
func (kl *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return kl.limiter(key).Wait(ctx)
}

// Allow reports whether a request for the given key may proceed right now.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.limiter(key).Allow()
}

func (kl *KeyedLimiter) limiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	l, ok := kl.limiters[key]
	if !ok {
		l = rate.NewLimiter(kl.limit, kl.burst)
		kl.limiters[key] = l
	}
	return l
}
