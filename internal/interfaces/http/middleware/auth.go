// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/auth"
)

const (
	contextUserIDKey    = "user_id"
	contextUserEmailKey = "user_email"
	contextUserRoleKey  = "user_role"
)

// AuthMiddleware requires a valid access token
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserEmailKey, claims.Email)
		c.Set(contextUserRoleKey, claims.Role)
		c.Next()
	}
}

// AdminMiddleware requires the authenticated user to have the admin role.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware attaches user identity when a valid token is
// present but never rejects the request.
func OptionalAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err == nil {
			if claims, err := jwtManager.ValidateAccessToken(token); err == nil {
				c.Set(contextUserIDKey, claims.UserID)
				c.Set(contextUserEmailKey, claims.Email)
				c.Set(contextUserRoleKey, claims.Role)
			}
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user ID from the request context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetUserRole returns the authenticated user role from the request context
func GetUserRole(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}

// GetUserEmail returns the authenticated user email from the request context
func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextUserEmailKey)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}
