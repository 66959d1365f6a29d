package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"github.com/wellnest-app/wellness-api/internal/pkg/token"
)

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	// Support both "Bearer <token>" (case-insensitive) and raw token in header
	fields := strings.Fields(authHeader)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	return authHeader
}

func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		claims, err := token.ValidateToken(tokenString, cfg)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// OptionalAuth sets the user identity when a valid token is present but never
// rejects the request. Endpoints behind it fall back to anonymous behavior.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := token.ValidateToken(tokenString, cfg); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("email", claims.Email)
			}
		}
		c.Next()
	}
}
