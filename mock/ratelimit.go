package mock

import "github.com/fwojciec/citycopy"

var _ citycopy.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of citycopy.RateLimiter.
type RateLimiter struct {
	AllowFn func(key string) bool
	ResetFn func(key string)
}

func (l *RateLimiter) Allow(key string) bool {
	return l.AllowFn(key)
}

func (l *RateLimiter) Reset(key string) {
	l.ResetFn(key)
}
