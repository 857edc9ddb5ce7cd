package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/jwt"
)

// Context keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyEmail     = "email"
	ContextKeyRoles     = "roles"
	ContextKeyClaims    = "claims"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware - xác thực bearer token; sets user_id, email, roles and claims.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Subject)
		c.Set(ContextKeyRoles, claims.Roles)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// GetClaims returns the claims set by AuthMiddleware.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
