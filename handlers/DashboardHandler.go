package handlers

import (
	"backend/models"
	"backend/services"
	"backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// withOverdue decorates inspections with the derived is_overdue flag.
func withOverdue(inspections []models.Inspection, now time.Time) []models.InspectionResponse {
	out := make([]models.InspectionResponse, 0, len(inspections))
	for i := range inspections {
		out = append(out, models.InspectionResponse{
			Inspection: inspections[i],
			IsOverdue:  services.IsOverdue(&inspections[i], now),
		})
	}
	return out
}

// GetDashboard serves the landing page aggregates: component counts per
// status bucket, the 10 oldest unresolved red/amber inspections, and the 5
// most recent inspections. Nothing is cached; every request recomputes.
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()
		db := db.WithContext(ctx)

		var stats models.DashboardResponse

		if err := db.Model(&models.WarehouseComponent{}).Count(&stats.TotalComponents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting components"})
			return
		}
		if err := db.Model(&models.WarehouseComponent{}).
			Where("status = ?", models.StatusImmediate).
			Count(&stats.ImmediateThreats).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting immediate threats"})
			return
		}
		if err := db.Model(&models.WarehouseComponent{}).
			Where("status = ?", models.StatusFix4Weeks).
			Count(&stats.Fix4Weeks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting fix-4-weeks components"})
			return
		}
		// good and monitor collapse into one bucket on the dashboard
		if err := db.Model(&models.WarehouseComponent{}).
			Where("status IN ?", []models.ComponentStatus{models.StatusGood, models.StatusMonitor}).
			Count(&stats.MonitorOnly).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting monitored components"})
			return
		}

		var urgent []models.Inspection
		err := db.Preload("Component").Preload("Inspector").
			Where("is_resolved = ? AND severity IN ?", false,
				[]models.SeverityLevel{models.SeverityRed, models.SeverityAmber}).
			Order("inspection_date ASC").
			Limit(10).
			Find(&urgent).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching urgent inspections"})
			return
		}

		var recent []models.Inspection
		err = db.Preload("Component").Preload("Inspector").
			Order("inspection_date DESC").
			Limit(5).
			Find(&recent).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching recent activity"})
			return
		}

		now := time.Now()
		stats.UrgentInspections = withOverdue(urgent, now)
		stats.RecentActivity = withOverdue(recent, now)

		c.JSON(http.StatusOK, stats)
	}
}
