package handlers

import (
	"backend/models"
	"backend/repository"
	"backend/services"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetInspectionPage serves the inspection form data: the active layout and
// its components, the most recent inspections, and the enumerated defect
// and severity choices.
func GetInspectionPage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		layout, err := repository.GetActiveLayout(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching layout"})
			return
		}

		components := []models.WarehouseComponent{}
		if layout != nil {
			components, err = repository.GetLayoutComponents(db, layout.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching components"})
				return
			}
		}

		var recent []models.Inspection
		err = db.Preload("Component").Preload("Inspector").
			Order("inspection_date DESC").
			Limit(10).
			Find(&recent).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching inspections"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"active_layout":      layout,
			"components":         components,
			"recent_inspections": withOverdue(recent, time.Now()),
			"defect_types":       models.DefectTypeChoices(),
			"severity_levels":    models.SeverityChoices(),
		})
	}
}

// CreateInspection records a finding against a component from the
// inspection form and runs the status-derivation rules: due date for amber
// findings, and an unconditional overwrite of the component's status.
func CreateInspection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		componentID := c.PostForm("component_id")
		defectType := models.DefectType(c.PostForm("defect_type"))
		customDefect := c.PostForm("custom_defect")
		severity := models.SeverityLevel(c.PostForm("severity"))
		notes := c.PostForm("notes")

		if componentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "component_id is required"})
			return
		}
		if !defectType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid defect type"})
			return
		}
		// form-layer rule only; storage accepts whatever it is given
		if defectType == models.DefectCustom && customDefect == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "custom_defect is required for custom defect type"})
			return
		}
		if !severity.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
			return
		}

		var component models.WarehouseComponent
		if err := db.First(&component, "id = ?", componentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching component"})
			return
		}

		inspectionDate := time.Now()
		if raw := c.PostForm("inspection_date"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				parsed, err = time.Parse("2006-01-02", raw)
			}
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inspection_date"})
				return
			}
			inspectionDate = parsed
		}

		inspection := models.Inspection{
			ID:             uuid.NewString(),
			ComponentID:    component.ID,
			InspectorID:    user.ID,
			DefectType:     defectType,
			CustomDefect:   customDefect,
			Severity:       severity,
			Notes:          notes,
			InspectionDate: inspectionDate,
		}

		if err := services.ApplyInspectionRules(db, &inspection); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving inspection: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Inspection saved successfully.",
			"inspection": models.InspectionResponse{
				Inspection: inspection,
				IsOverdue:  services.IsOverdue(&inspection, time.Now()),
			},
		})
	}
}

// ResolveInspection marks an inspection resolved. The component status is
// left untouched: only recording a new inspection changes it.
func ResolveInspection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		inspectionID := c.Param("id")

		var inspection models.Inspection
		if err := db.First(&inspection, "id = ?", inspectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Inspection not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching inspection"})
			return
		}

		now := time.Now()
		inspection.IsResolved = true
		inspection.ResolvedDate = &now
		inspection.ResolvedBy = &user.ID
		err := db.Model(&inspection).Updates(map[string]interface{}{
			"is_resolved":   true,
			"resolved_date": now,
			"resolved_by":   user.ID,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving inspection"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Inspection resolved",
			"inspection": models.InspectionResponse{Inspection: inspection},
		})
	}
}

// GetComponentData returns a component together with its most recent
// inspection, for the inspection side panel.
func GetComponentData(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		componentID := c.Param("id")

		var component models.WarehouseComponent
		if err := db.First(&component, "id = ?", componentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching component"})
			return
		}

		latest, err := repository.GetLatestInspection(db, component.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching latest inspection"})
			return
		}

		resp := gin.H{
			"component":       component,
			"defect_types":    models.DefectTypeChoices(),
			"severity_levels": models.SeverityChoices(),
		}
		if latest != nil {
			resp["latest_inspection"] = models.InspectionResponse{
				Inspection: *latest,
				IsOverdue:  services.IsOverdue(latest, time.Now()),
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
