package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetComponentQR(t *testing.T) {
	t.Run("serves a png label", func(t *testing.T) {
		env := setupTestEnv(t)
		layout := seedTestLayout(t, env.db, env.inspector.ID)
		comp := seedTestComponent(t, env.db, layout.ID, "RK-Q1")

		w := env.request(t, http.MethodGet, "/api/component-qr/"+comp.ID+"/", env.inspectorToken, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), comp.ID)

		body := w.Body.Bytes()
		require.True(t, len(body) > 8)
		assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), body[:8])
	})

	t.Run("unknown component is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodGet, "/api/component-qr/NO-SUCH/", env.inspectorToken, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
