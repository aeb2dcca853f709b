package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/cache"
	"github.com/taskmanager/taskmanager/web/entity"
	"github.com/taskmanager/taskmanager/web/locale"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures rate limiting.
type RateLimitConfig struct {
	// RequestsPerMinute of 0 or less disables the limit.
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
}

func DefaultRateLimitConfig(requestsPerMinute int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit answers 429 once a client has made RequestsPerMinute requests to
// the route within a minute.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	if config.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	counter := cache.NewCounter(time.Minute)

	return func(c *gin.Context) {
		key := "ratelimit:" + config.KeyFunc(c) + ":" + c.FullPath()
		count := counter.Incr(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.RequestsPerMinute-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(counter.ResetAt(key).Unix(), 10))

		if count > config.RequestsPerMinute {
			logger.Warningf("rate limit exceeded for %s on %s (count: %d)", config.KeyFunc(c), c.Request.URL.Path, count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Msg: locale.I18nWeb(c, "pages.login.toasts.tooManyAttempts"),
			})
			return
		}
		c.Next()
	}
}
