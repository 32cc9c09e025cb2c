package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/ratelimit"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

// RateLimit throttles action per caller. Anonymous requests pass through;
// the handler decides what to do with them.
func RateLimit(limiter *ratelimit.Limiter, action string, base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := UserIDFrom(c)
		if subject == "" {
			c.Next()
			return
		}
		retryAfter, allowed, err := limiter.Allow(c.Request.Context(), action, subject)
		if err != nil {
			logctx.FromGin(c, base).Warnw("rate limiter failed", "action", action, "err", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.AbortFail(c, response.APIResponseCodeTooManyRequests, "too many requests, please retry later")
			return
		}
		c.Next()
	}
}
