package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidshare/pkg/auth"
	"vidshare/pkg/database"
	"vidshare/pkg/models"
)

const identityKey = "currentUser"

func resolveUser(c *gin.Context) (*models.User, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := auth.ValidateJWT(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// RequireAuth rejects the request unless a valid bearer token resolves to
// an existing user. The 401 message is deliberately generic.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(identityKey, user)
		c.Next()
	}
}

// OptionalAuth binds the caller identity when a valid token is present and
// falls through anonymously on any failure, including an absent header.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c); ok {
			c.Set(identityKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the identity bound by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	return v.(*models.User), true
}
