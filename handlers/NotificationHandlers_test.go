package handlers

import (
	"backend/models"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, env *testEnv, userID uint) models.Notification {
	t.Helper()
	sentAt := time.Now()
	n := models.Notification{
		UserID:           userID,
		InspectionID:     uuid.NewString(),
		NotificationType: models.NotificationRedAlert,
		Message:          "Immediate threat on component RK-A1: fix now",
		SentAt:           &sentAt,
	}
	require.NoError(t, env.db.Create(&n).Error)
	return n
}

func TestGetNotifications(t *testing.T) {
	env := setupTestEnv(t)
	mine := seedNotification(t, env, env.inspector.ID)
	seedNotification(t, env, env.admin.ID)

	w := env.request(t, http.MethodGet, "/api/notifications", env.inspectorToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, mine.ID, resp.Notifications[0].ID)
	assert.Equal(t, int64(1), resp.UnreadCount)
}

func TestMarkNotificationRead(t *testing.T) {
	t.Run("marks own notification", func(t *testing.T) {
		env := setupTestEnv(t)
		n := seedNotification(t, env, env.inspector.ID)

		path := fmt.Sprintf("/api/notifications/%d/read", n.ID)
		w := env.request(t, http.MethodPut, path, env.inspectorToken, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Notification
		require.NoError(t, env.db.First(&got, n.ID).Error)
		assert.True(t, got.IsRead)
	})

	t.Run("another user's notification reads as not found", func(t *testing.T) {
		env := setupTestEnv(t)
		n := seedNotification(t, env, env.admin.ID)

		path := fmt.Sprintf("/api/notifications/%d/read", n.ID)
		w := env.request(t, http.MethodPut, path, env.inspectorToken, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
