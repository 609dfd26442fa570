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

func reportBody(t *testing.T, req models.CreateReportRequest) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCreateReport(t *testing.T) {
	t.Run("stores the definition with defaults", func(t *testing.T) {
		env := setupTestEnv(t)
		layout := seedTestLayout(t, env.db, env.inspector.ID)

		w := env.request(t, http.MethodPost, "/api/reports", env.inspectorToken, "application/json",
			reportBody(t, models.CreateReportRequest{
				LayoutID:   layout.ID,
				ReportType: "defects",
				DateFrom:   "2024-01-01",
				DateTo:     "2024-01-31",
			}))
		require.Equal(t, http.StatusOK, w.Code)

		var report models.Report
		require.NoError(t, env.db.First(&report, "layout_id = ?", layout.ID).Error)
		assert.Equal(t, models.ReportDefects, report.ReportType)
		assert.Equal(t, env.inspector.ID, report.GeneratedBy)
		assert.True(t, report.IncludeLayout)
		assert.True(t, report.IncludePhotos)
		assert.False(t, report.IncludeInspectorDetails)
		assert.Empty(t, report.PDFFile)
	})

	t.Run("stores a reversed date range as given", func(t *testing.T) {
		env := setupTestEnv(t)
		layout := seedTestLayout(t, env.db, env.inspector.ID)

		w := env.request(t, http.MethodPost, "/api/reports", env.inspectorToken, "application/json",
			reportBody(t, models.CreateReportRequest{
				LayoutID:   layout.ID,
				ReportType: "full",
				DateFrom:   "2024-02-01",
				DateTo:     "2024-01-01",
			}))
		require.Equal(t, http.StatusOK, w.Code)

		var report models.Report
		require.NoError(t, env.db.First(&report, "layout_id = ?", layout.ID).Error)
		assert.Equal(t, "2024-02-01", report.DateFrom.Format("2006-01-02"))
		assert.Equal(t, "2024-01-01", report.DateTo.Format("2006-01-02"))
	})

	t.Run("unknown layout is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		w := env.request(t, http.MethodPost, "/api/reports", env.inspectorToken, "application/json",
			reportBody(t, models.CreateReportRequest{
				LayoutID:   "no-such",
				ReportType: "full",
				DateFrom:   "2024-01-01",
				DateTo:     "2024-01-31",
			}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown report type is rejected", func(t *testing.T) {
		env := setupTestEnv(t)
		layout := seedTestLayout(t, env.db, env.inspector.ID)

		w := env.request(t, http.MethodPost, "/api/reports", env.inspectorToken, "application/json",
			reportBody(t, models.CreateReportRequest{
				LayoutID:   layout.ID,
				ReportType: "weekly",
				DateFrom:   "2024-01-01",
				DateTo:     "2024-01-31",
			}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetReports(t *testing.T) {
	env := setupTestEnv(t)
	layout := seedTestLayout(t, env.db, env.inspector.ID)

	for i := 0; i < 12; i++ {
		w := env.request(t, http.MethodPost, "/api/reports", env.inspectorToken, "application/json",
			reportBody(t, models.CreateReportRequest{
				LayoutID:   layout.ID,
				ReportType: "full",
				DateFrom:   "2024-01-01",
				DateTo:     "2024-01-31",
			}))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.request(t, http.MethodGet, "/api/reports", env.inspectorToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page1 models.PaginatedReports
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page1))
	assert.Equal(t, int64(12), page1.TotalCount)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Len(t, page1.Reports, 10)

	w = env.request(t, http.MethodGet, "/api/reports?page=2", env.inspectorToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page2 models.PaginatedReports
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page2))
	assert.Equal(t, 2, page2.Page)
	assert.Len(t, page2.Reports, 2)
}
