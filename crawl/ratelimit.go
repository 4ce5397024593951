package crawl

import (
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket is a non-blocking admission check for a single host, built on
// golang.org/x/time/rate. The bucket starts full and refills continuously at
// the configured rate; Allow admits while at least one token is available.
//
// Callers that are denied must not spin. The frontier treats a denial as
// "try a different host, or wait".
type TokenBucket struct {
	lim *rate.Limiter
	now func() time.Time
}

// BucketOption configures a TokenBucket.
type BucketOption func(*TokenBucket)

// WithClock replaces the bucket's time source.
// Tests use this to simulate refills without sleeping.
func WithClock(now func() time.Time) BucketOption {
	return func(b *TokenBucket) {
		b.now = now
	}
}

// NewTokenBucket creates a bucket that refills at ratePerSecond tokens per
// second up to a maximum burst of capacity tokens.
func NewTokenBucket(ratePerSecond float64, capacity int, opts ...BucketOption) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	b := &TokenBucket{
		lim: rate.NewLimiter(rate.Limit(ratePerSecond), capacity),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow reports whether a request may proceed now, consuming one token if so.
// A denial mutates nothing beyond the time-based refill.
func (b *TokenBucket) Allow() bool {
	return b.lim.AllowN(b.now(), 1)
}
