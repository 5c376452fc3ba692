package pkg

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Errors
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// RequestLimiter wraps a token-bucket rate.Limiter for the API surface.
// A single in-process bank owns all state, so a local limiter is sufficient;
// distributed enforcement would only matter with multiple replicas.
type RequestLimiter struct {
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRequestLimiter creates a limiter; if ratePerSec=0, it's unlimited.
func NewRequestLimiter(ratePerSec, burst int, logger *zap.Logger) *RequestLimiter {
	var l *rate.Limiter
	if ratePerSec > 0 {
		l = rate.NewLimiter(rate.Limit(ratePerSec), burst)
	}
	return &RequestLimiter{limiter: l, logger: logger}
}

// Allow checks if a token is available.
func (r *RequestLimiter) Allow() bool {
	if r.limiter == nil {
		return true // Unlimited
	}
	if !r.limiter.Allow() {
		r.logger.Warn("request rate limit exceeded")
		return false
	}
	return true
}
