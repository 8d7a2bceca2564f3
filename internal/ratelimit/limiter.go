package ratelimit

import (
	"context"

	"go.uber.org/zap"
)

// PublicLimiter throttles the unauthenticated payment endpoints. When
// redis is not configured every request is allowed.
type PublicLimiter struct {
	bucket *TokenBucket
	log    *zap.Logger
	rate   float64
	burst  int
}

func NewPublicLimiter(bucket *TokenBucket, log *zap.Logger) *PublicLimiter {
	return &PublicLimiter{
		bucket: bucket,
		log:    log.Named("ratelimit"),
		rate:   2,
		burst:  10,
	}
}

// Allow reports whether the caller identified by key may proceed. Limiter
// backend failures fail open: payments must not be lost to a redis outage.
func (l *PublicLimiter) Allow(ctx context.Context, key string) (bool, *Result) {
	if l.bucket == nil {
		return true, nil
	}
	result, err := l.bucket.Allow(ctx, "ratelimit:public:"+key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limiter unavailable, failing open", zap.Error(err))
		return true, nil
	}
	return result.Allowed, result
}
