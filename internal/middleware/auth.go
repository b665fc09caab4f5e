package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/trackback/internal/pkg/response"
	"github.com/xyz-asif/trackback/internal/pkg/token"
)

// ContextUsername is the gin context key holding the authenticated username.
const ContextUsername = "username"

func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		tokenString := authHeader
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		}

		claims, err := token.ValidateToken(tokenString, secret)
		if err != nil {
			response.Unauthorized(c, "Invalid token", "AUTH_INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// Username returns the name set by Auth.
func Username(c *gin.Context) (string, bool) {
	u := c.GetString(ContextUsername)
	return u, u != ""
}
