package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// keyLimiter holds one key's bucket and its last access time.
type keyLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// TokenBucket is an in-process Limiter with one token bucket per key.
// Idle keys are evicted by a background loop until Close is called.
type TokenBucket struct {
	rate            rate.Limit
	burst           int
	cleanupInterval time.Duration

	mu       sync.Mutex
	limiters map[string]*keyLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

var _ Limiter = (*TokenBucket)(nil)

// NewTokenBucket allows perMinute requests per key per minute, with a burst
// of the same size. Idle keys are evicted after twice cleanupInterval.
func NewTokenBucket(perMinute int, cleanupInterval time.Duration) *TokenBucket {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	tb := &TokenBucket{
		rate:            rate.Limit(float64(perMinute) / 60.0),
		burst:           perMinute,
		cleanupInterval: cleanupInterval,
		limiters:        make(map[string]*keyLimiter),
		stopCh:          make(chan struct{}),
	}
	go tb.cleanupLoop()
	return tb
}

// Allow consumes one token from key's bucket.
func (tb *TokenBucket) Allow(key string) bool {
	return tb.limiterFor(key).Allow()
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.limiters)
}

// Close stops the cleanup loop.
func (tb *TokenBucket) Close() error {
	tb.stopOnce.Do(func() { close(tb.stopCh) })
	return nil
}

func (tb *TokenBucket) limiterFor(key string) *rate.Limiter {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	kl, ok := tb.limiters[key]
	if !ok {
		kl = &keyLimiter{limiter: rate.NewLimiter(tb.rate, tb.burst)}
		tb.limiters[key] = kl
	}
	kl.lastAccess = time.Now()
	return kl.limiter
}

func (tb *TokenBucket) cleanupLoop() {
	ticker := time.NewTicker(tb.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tb.evictIdle(time.Now())
		case <-tb.stopCh:
			return
		}
	}
}

// evictIdle drops keys not seen for twice the cleanup interval.
func (tb *TokenBucket) evictIdle(now time.Time) {
	ttl := tb.cleanupInterval * 2

	tb.mu.Lock()
	defer tb.mu.Unlock()
	for key, kl := range tb.limiters {
		if now.Sub(kl.lastAccess) > ttl {
			delete(tb.limiters, key)
		}
	}
}
