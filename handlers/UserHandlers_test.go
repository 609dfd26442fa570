package handlers

import (
	"backend/models"
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	t.Run("admin sees the paginated list", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodGet, "/api/users", env.adminToken, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.PaginatedUsers
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.TotalCount)
		assert.Equal(t, 1, resp.Page)
		assert.Len(t, resp.Users, 2)
	})

	t.Run("inspector is denied", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodGet, "/api/users", env.inspectorToken, "", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Admin privileges required")
	})

	t.Run("missing profile is denied", func(t *testing.T) {
		env := setupTestEnv(t)
		user, token := seedUser(t, env.db, "bare@test.local", models.RoleInspector)
		require.NoError(t, env.db.Where("user_id = ?", user.ID).Delete(&models.UserProfile{}).Error)

		w := env.request(t, http.MethodGet, "/api/users", token, "", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "User profile not found.")
	})
}

func TestUpdateProfile(t *testing.T) {
	profileBody := func(t *testing.T, req models.UpdateProfileRequest) *bytes.Buffer {
		t.Helper()
		body, err := json.Marshal(req)
		require.NoError(t, err)
		return bytes.NewBuffer(body)
	}

	t.Run("user edits their own contact details", func(t *testing.T) {
		env := setupTestEnv(t)
		path := "/api/update_profile/" + itoa(env.inspector.ID)

		w := env.request(t, http.MethodPut, path, env.inspectorToken, "application/json",
			profileBody(t, models.UpdateProfileRequest{FirstName: "Rita", Phone: "555-0101"}))
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		require.NoError(t, env.db.Preload("Profile").First(&user, env.inspector.ID).Error)
		assert.Equal(t, "Rita", user.FirstName)
		assert.Equal(t, "555-0101", user.Profile.Phone)
	})

	t.Run("non-admin cannot change roles", func(t *testing.T) {
		env := setupTestEnv(t)
		path := "/api/update_profile/" + itoa(env.inspector.ID)

		w := env.request(t, http.MethodPut, path, env.inspectorToken, "application/json",
			profileBody(t, models.UpdateProfileRequest{Role: "admin"}))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin promotes an inspector", func(t *testing.T) {
		env := setupTestEnv(t)
		path := "/api/update_profile/" + itoa(env.inspector.ID)

		w := env.request(t, http.MethodPut, path, env.adminToken, "application/json",
			profileBody(t, models.UpdateProfileRequest{Role: "admin"}))
		require.Equal(t, http.StatusOK, w.Code)

		var profile models.UserProfile
		require.NoError(t, env.db.First(&profile, "user_id = ?", env.inspector.ID).Error)
		assert.Equal(t, models.RoleAdmin, profile.Role)
	})

	t.Run("non-admin cannot edit another user", func(t *testing.T) {
		env := setupTestEnv(t)
		path := "/api/update_profile/" + itoa(env.admin.ID)

		w := env.request(t, http.MethodPut, path, env.inspectorToken, "application/json",
			profileBody(t, models.UpdateProfileRequest{FirstName: "Hijack"}))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
