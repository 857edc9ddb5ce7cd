package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/logger"
)

func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Panic recovered", fmt.Errorf("%v", rec), map[string]interface{}{
					"request_id": c.GetString(ContextKeyRequestID),
					"path":       c.Request.URL.Path,
				})

				response.InternalServerError(c, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
