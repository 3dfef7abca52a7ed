package citycopy

// RateLimiter decides whether a client identified by key may make a request.
type RateLimiter interface {
	// Allow reports whether a request for key may proceed now.
	Allow(key string) bool

	// Reset forgets the state kept for key.
	Reset(key string)
}
