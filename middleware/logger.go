package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger puts a request-scoped logger under "logger" and logs each
// request once it is served. The client's X-Request-ID is reused when present.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		logger := base.With(zap.String("request_id", reqID))
		c.Set("logger", logger)
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()
		logger.Info("request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
