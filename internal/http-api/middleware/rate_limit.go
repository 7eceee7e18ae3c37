package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mimo/internal/http-api/response"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	limiterRegistrySize = 10000
	limiterIdleTTL      = 10 * time.Minute
)

// RateLimit applies a token bucket per client IP. Idle buckets are dropped
// from a bounded registry.
func RateLimit(rps float64, burst int, logger *slog.Logger) (gin.HandlerFunc, error) {
	if rps <= 0 || burst < 1 {
		return nil, fmt.Errorf("rate limit: rps and burst must be positive, got %v/%d", rps, burst)
	}
	limiters := expirable.NewLRU[string, *rate.Limiter](limiterRegistrySize, nil, limiterIdleTTL)

	limiterFor := func(ip string) *rate.Limiter {
		l, ok := limiters.Get(ip)
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
		}
		// re-adding refreshes the idle timer of active clients
		limiters.Add(ip, l)
		return l
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiterFor(ip).Allow() {
			logger.Warn("rate_limited", "client_ip", ip, "path", c.Request.URL.Path)
			c.Header("Retry-After", "1")
			response.Message(c, http.StatusTooManyRequests, response.MsgTooManyRequests)
			return
		}
		c.Next()
	}, nil
}
