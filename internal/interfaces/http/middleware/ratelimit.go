package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardly/internal/infrastructure/ratelimit"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/utils"
)

// RateLimiter limits requests per client IP under one key prefix.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	prefix  string
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, prefix string, perMinute int, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		prefix:  prefix,
		config:  ratelimit.RateLimitConfig{RequestsPerMinute: perMinute},
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.prefix + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			// redis trouble must not take the public endpoint down
			rl.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
