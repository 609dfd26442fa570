package handlers

import (
	"backend/models"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReportPDF(t *testing.T) {
	t.Run("renders a stored report", func(t *testing.T) {
		env := setupTestEnv(t)
		layout := seedTestLayout(t, env.db, env.inspector.ID)
		comp := seedTestComponent(t, env.db, layout.ID, "RK-P1")

		insp := models.Inspection{
			ID:             uuid.NewString(),
			ComponentID:    comp.ID,
			InspectorID:    env.inspector.ID,
			DefectType:     models.DefectCorrosion,
			Severity:       models.SeverityAmber,
			InspectionDate: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		}
		require.NoError(t, env.db.Create(&insp).Error)

		report := models.Report{
			ID:            uuid.NewString(),
			LayoutID:      layout.ID,
			ReportType:    models.ReportFull,
			GeneratedBy:   env.inspector.ID,
			DateFrom:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			DateTo:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			IncludeLayout: true,
			IncludePhotos: true,
		}
		require.NoError(t, env.db.Create(&report).Error)

		w := env.request(t, http.MethodGet, "/api/report-pdf/"+report.ID+"/", env.inspectorToken, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

		body := w.Body.Bytes()
		require.True(t, len(body) > 4)
		assert.Equal(t, []byte("%PDF"), body[:4])
	})

	t.Run("unknown report is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodGet, "/api/report-pdf/no-such/", env.inspectorToken, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
