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

func loginBody(t *testing.T, email, password string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestLoginHandler(t *testing.T) {
	t.Run("valid credentials open a session", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/login", "", "application/json",
			loginBody(t, "admin@test.local", "password123"))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.SessionID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, models.RoleAdmin, resp.Role)

		var session models.Session
		require.NoError(t, env.db.First(&session, "session_id = ?", resp.SessionID).Error)
		assert.Equal(t, env.admin.ID, session.UserID)
	})

	t.Run("email match is case insensitive", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/login", "", "application/json",
			loginBody(t, "Admin@Test.Local", "password123"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/login", "", "application/json",
			loginBody(t, "admin@test.local", "wrong"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email is rejected the same way", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/login", "", "application/json",
			loginBody(t, "nobody@test.local", "password123"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("suspended account is refused", func(t *testing.T) {
		env := setupTestEnv(t)
		require.NoError(t, env.db.Model(&models.User{}).
			Where("id = ?", env.inspector.ID).Update("suspended", true).Error)

		w := env.request(t, http.MethodPost, "/api/login", "", "application/json",
			loginBody(t, "inspector@test.local", "password123"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/logout", env.inspectorToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the session is gone, the next request fails
	w = env.request(t, http.MethodGet, "/api/dashboard", env.inspectorToken, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
