package middleware

import (
	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/response"
)

// RequireRole lets the request through only when the token carries one of roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Access denied: insufficient role")
		c.Abort()
	}
}
