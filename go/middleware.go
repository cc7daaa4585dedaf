package recordserver

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/Apurer/recordkeeper/internal/shared/errors"
)

// RateLimit throttles the whole API with a token bucket of rps tokens per second and the
// given burst. A non-positive rps disables throttling.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	retryAfter := strconv.Itoa(int(math.Ceil(1 / rps)))
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", retryAfter)
			apierrors.Respond(c, apierrors.ErrRateLimited.WithDetail("request rate exceeded, retry later"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("http.method", c.Request.Method),
			slog.String("http.route", c.FullPath()),
			slog.Int("http.status", c.Writer.Status()),
			slog.Duration("http.duration", time.Since(start)),
		)
	}
}
