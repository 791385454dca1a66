package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter spaces requests to the same retailer by at least a minimum
// interval. Each key gets its own token bucket with a burst of one, created
// on first use, so different retailers never wait on each other.
type KeyedLimiter struct {
	interval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewKeyedLimiter creates a limiter that allows one request per interval per
// key. A non-positive interval disables limiting.
func NewKeyedLimiter(interval time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (k *KeyedLimiter) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.limiters[key]
	if !ok {
		limit := rate.Inf
		if k.interval > 0 {
			limit = rate.Every(k.interval)
		}
		l = rate.NewLimiter(limit, 1)
		k.limiters[key] = l
	}
	return l
}

// Wait blocks until a request to key is allowed or ctx is done. It returns
// how long the caller waited.
func (k *KeyedLimiter) Wait(ctx context.Context, key string) (time.Duration, error) {
	start := time.Now()
	if err := k.limiter(key).Wait(ctx); err != nil {
		return time.Since(start), fmt.Errorf("rate limiter wait for %s: %w", key, err)
	}
	return time.Since(start), nil
}

// Interval returns the configured minimum spacing.
func (k *KeyedLimiter) Interval() time.Duration {
	return k.interval
}

// Keys returns the number of keys seen so far.
func (k *KeyedLimiter) Keys() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}
