package handlers

import (
	"backend/models"
	"backend/repository"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReports lists generated reports, newest first, ten per page.
func GetReports(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := repository.ParsePage(c.Query("page"))

		var total int64
		if err := db.Model(&models.Report{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting reports"})
			return
		}

		var reports []models.Report
		err := db.Preload("Layout").
			Order("generated_at DESC").
			Scopes(repository.Paginate(page)).
			Find(&reports).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
			return
		}

		c.JSON(http.StatusOK, models.PaginatedReports{
			Reports:    reports,
			Page:       page,
			TotalPages: repository.TotalPages(total),
			TotalCount: total,
		})
	}
}

// CreateReport records a report definition. The PDF itself is rendered on
// demand by GenerateReportPDF, not here.
func CreateReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		var req models.CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		reportType := models.ReportType(req.ReportType)
		if !reportType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report type"})
			return
		}

		dateFrom, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from"})
			return
		}
		dateTo, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to"})
			return
		}

		var layout models.WarehouseLayout
		if err := db.First(&layout, "id = ?", req.LayoutID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Layout not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching layout"})
			return
		}

		report := models.Report{
			ID:                      uuid.NewString(),
			LayoutID:                layout.ID,
			ReportType:              reportType,
			GeneratedBy:             user.ID,
			DateFrom:                dateFrom,
			DateTo:                  dateTo,
			IncludeLayout:           true,
			IncludePhotos:           true,
			IncludeInspectorDetails: false,
		}
		if req.IncludeLayout != nil {
			report.IncludeLayout = *req.IncludeLayout
		}
		if req.IncludePhotos != nil {
			report.IncludePhotos = *req.IncludePhotos
		}
		if req.IncludeInspectorDetails != nil {
			report.IncludeInspectorDetails = *req.IncludeInspectorDetails
		}

		if err := db.Create(&report).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving report"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Report created",
			"report":  report,
		})
	}
}
