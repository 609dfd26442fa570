package handlers

import (
	"backend/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetNotifications lists the current user's notifications, newest first.
// Pass ?unread=true to restrict to unread ones.
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		query := db.Where("user_id = ?", user.ID)
		if c.Query("unread") == "true" {
			query = query.Where("is_read = ?", false)
		}

		var notifications []models.Notification
		if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notifications"})
			return
		}

		var unreadCount int64
		err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", user.ID, false).
			Count(&unreadCount).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"notifications": notifications,
			"unread_count":  unreadCount,
		})
	}
}

// MarkNotificationRead marks one of the current user's notifications as
// read. Other users' notifications are invisible here, so a foreign id
// reads as not found.
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		notificationID := c.Param("id")

		var notification models.Notification
		err := db.Where("id = ? AND user_id = ?", notificationID, user.ID).First(&notification).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notification"})
			return
		}

		if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating notification"})
			return
		}
		notification.IsRead = true

		c.JSON(http.StatusOK, gin.H{
			"message":      "Notification marked as read",
			"notification": notification,
		})
	}
}
