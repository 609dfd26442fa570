package storage

import (
	"backend/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SessionLifetime is how long a login session stays valid.
const SessionLifetime = 15 * 24 * time.Hour

// SaveSession inserts a new session row. Existing sessions for the user are
// left alone so multiple devices can stay logged in.
func SaveSession(db *gorm.DB, session *models.Session) error {
	if err := db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// DeleteSession removes a single session by its id (logout).
func DeleteSession(db *gorm.DB, sessionID string) error {
	result := db.Delete(&models.Session{}, "session_id = ?", sessionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("session not found or already deleted")
	}
	return nil
}

// CleanupExpiredSessions drops sessions past their expiry. Run daily from the
// cron scheduler.
func CleanupExpiredSessions(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

// GetUserBySessionID resolves the Authorization header value back to a user,
// profile preloaded. Suspended accounts are treated as not found.
func GetUserBySessionID(db *gorm.DB, sessionID string) (*models.User, error) {
	var session models.Session
	err := db.Where("session_id = ? AND expires_at > ?", sessionID, time.Now()).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("session not found or expired")
		}
		return nil, err
	}

	var user models.User
	err = db.Preload("Profile").First(&user, session.UserID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user.Suspended {
		return nil, errors.New("account suspended")
	}

	return &user, nil
}

// GetUserByEmail fetches a user by email, profile preloaded.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}
