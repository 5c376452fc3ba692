package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardbank/pkg"
)

// RateLimit returns Gin middleware that rejects requests above the configured rate.
func RateLimit(limiter *pkg.RequestLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, pkg.ErrorResponse{
				Code:    "APP_RATE_LIMITED",
				Message: pkg.ErrRateLimitExceeded.Error(),
			})
			return
		}
		c.Next()
	}
}
