package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request once the handler chain finished. The
// userId attribute is only present when auth middleware resolved one from
// the bearer header or the session cookie.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		}
		if userID, ok := c.Get(UserIDContextKey); ok {
			attrs = append(attrs, slog.Any("userId", userID))
		}
		logger.Info("http request", attrs...)
	}
}
