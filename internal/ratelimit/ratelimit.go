// Package ratelimit throttles requests per key (typically a client IP).
package ratelimit

// Limiter decides whether one more request for key is allowed now.
type Limiter interface {
	Allow(key string) bool
	Close() error
}
