package handlers

import (
	"backend/models"
	"backend/repository"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers lists user accounts with their profiles, ten per page. Admin
// only; the gate itself lives in AdminRequired.
func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := repository.ParsePage(c.Query("page"))

		var total int64
		if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting users"})
			return
		}

		var users []models.User
		err := db.Preload("Profile").
			Order("id ASC").
			Scopes(repository.Paginate(page)).
			Find(&users).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
			return
		}

		c.JSON(http.StatusOK, models.PaginatedUsers{
			Users:      users,
			Page:       page,
			TotalPages: repository.TotalPages(total),
			TotalCount: total,
		})
	}
}

// UpdateProfile updates a user's account and profile fields. Role changes
// require the caller to be an admin; other fields a user may edit on
// their own account.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CurrentUser(c)
		userID := c.Param("id")

		var req models.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}

		isAdmin := caller.Profile.IsAdmin()
		if caller.ID != user.ID && !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
			return
		}

		if req.Role != "" {
			role := models.Role(req.Role)
			if !role.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
				return
			}
			if !isAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.FirstName != "" {
				user.FirstName = req.FirstName
			}
			if req.LastName != "" {
				user.LastName = req.LastName
			}
			if req.Email != "" {
				user.Email = strings.ToLower(strings.TrimSpace(req.Email))
			}
			if err := tx.Save(&user).Error; err != nil {
				return err
			}

			profile := user.Profile
			if profile == nil {
				profile = &models.UserProfile{UserID: user.ID, Role: models.RoleInspector}
			}
			if req.Role != "" {
				profile.Role = models.Role(req.Role)
			}
			if req.Phone != "" {
				profile.Phone = req.Phone
			}
			if req.CertificationNumber != "" {
				profile.CertificationNumber = req.CertificationNumber
			}
			if req.CertificationExpiry != nil {
				profile.CertificationExpiry = req.CertificationExpiry
			}
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
			user.Profile = profile
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated",
			"user":    user,
		})
	}
}
