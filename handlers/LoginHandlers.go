package handlers

import (
	"backend/models"
	"backend/storage"
	"backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginHandler authenticates by email and password, opens a session and
// returns its id together with a short-lived JWT access token.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginData models.LoginRequest
		if err := c.ShouldBindJSON(&loginData); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := storage.GetUserByEmail(db, loginData.Email)
		if err != nil || !utils.ValidatePassword(user.Password, loginData.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		session := models.Session{
			SessionID: uuid.NewString(),
			UserID:    user.ID,
			HostName:  c.Request.Host,
			IPAddress: c.ClientIP(),
			ExpiresAt: time.Now().Add(storage.SessionLifetime),
		}
		if err := storage.SaveSession(db, &session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		accessToken, err := utils.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
			return
		}

		role := models.RoleInspector
		if user.Profile != nil {
			role = user.Profile.Role
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			SessionID:   session.SessionID,
			AccessToken: accessToken,
			User:        *user,
			Role:        role,
		})
	}
}

// LogoutHandler deletes the session named in the Authorization header.
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Authorization header"})
			return
		}

		if err := storage.DeleteSession(db, token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		utils.SuccessResponse(c, "Logged out", http.StatusOK)
	}
}
