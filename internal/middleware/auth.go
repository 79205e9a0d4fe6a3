package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/pkg/jwt"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
)

const sessionContextKey = "session_claims"

// SessionAuthMiddleware gates protected routes behind a valid Bearer token.
// Every validation failure maps to the same response so a caller cannot tell
// an expired token from a forged one.
func SessionAuthMiddleware(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "No token provided. Please login.",
			})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Session token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err),
			)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token. Please login again.",
			})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, claims)
		c.Next()
	}
}

// GetSession returns the authenticated session claims set by
// SessionAuthMiddleware. The second return is false on unauthenticated
// routes.
func GetSession(c *gin.Context) (*jwt.SessionClaims, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*jwt.SessionClaims)
	return claims, ok
}
