package ratelimit

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
)

// Middleware limits requests per authenticated user, falling back to the
// client IP for anonymous callers.
func Middleware(limit int, window time.Duration) gin.HandlerFunc {
	limiter := New(limit, window)

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			limiter.Cleanup()
		}
	}()

	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}

		if !limiter.Allow(key) {
			response.Error(c, 429, "Too many requests", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Next()
	}
}
