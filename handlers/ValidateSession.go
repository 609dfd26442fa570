package handlers

import (
	"backend/models"
	"backend/storage"
	"backend/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func sessionToken(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader("Authorization"))
	token = strings.TrimPrefix(token, "Bearer ")
	return strings.TrimSpace(token)
}

// AuthRequired resolves the Authorization header to a user and stores it in
// the request context. Every route except login runs behind it.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			c.Abort()
			return
		}

		user, err := storage.GetUserBySessionID(db, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AdminRequired gates the user-management views: the requester must have a
// profile with the admin role. A missing profile is denied the same way as
// a non-admin one.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			c.Abort()
			return
		}
		if user.Profile == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "User profile not found."})
			c.Abort()
			return
		}
		if !user.Profile.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// ValidateSession lets a client check whether its stored session is still
// good and fetch the attached user.
func ValidateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Authorization header"})
			return
		}

		user, err := storage.GetUserBySessionID(db, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		role := models.RoleInspector
		if user.Profile != nil {
			role = user.Profile.Role
		}

		resp := gin.H{
			"message": "Session is valid",
			"user":    user,
			"role":    role,
		}
		// the access token expires well before the session does; report its
		// state so the client knows when to log in again for a fresh one
		if accessToken := c.GetHeader("X-Access-Token"); accessToken != "" {
			_, err := utils.ValidateJWT(accessToken)
			resp["access_token_valid"] = err == nil
		}

		c.JSON(http.StatusOK, resp)
	}
}
