package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/logger"
)

func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := map[string]interface{}{
			"request_id": c.GetString(ContextKeyRequestID),
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         utils.ClientIP(c),
		}

		if c.Writer.Status() >= 500 {
			log.Warn("HTTP Request", fields)
			return
		}
		log.Info("HTTP Request", fields)
	}
}
