package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateCounter is satisfied by cache.Client. A counter that returns 0 (cache
// unavailable) lets the request through: the limiter fails open.
type RateCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit enforces max requests per window per client IP, counted against
// a fixed window (one bucket per interval, not a sliding log); a burst
// straddling a bucket boundary can briefly exceed max. Registered ahead of
// every other middleware.
func RateLimit(counter RateCounter, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), bucket)

		n, err := counter.Incr(c.Request.Context(), key, window)
		if err == nil && n > max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
