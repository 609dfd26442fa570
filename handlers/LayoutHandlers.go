package handlers

import (
	"backend/models"
	"backend/repository"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errLayoutNotFound = errors.New("layout not found")

// GetLayoutEditor serves the layout editor data: all active layouts, the
// current one, and its components in id order.
func GetLayoutEditor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		layouts := []models.WarehouseLayout{}
		err := db.Where("is_active = ?", true).Order("updated_at DESC").Find(&layouts).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching layouts"})
			return
		}

		resp := models.LayoutResponse{Layouts: layouts, Components: []models.WarehouseComponent{}}
		if len(layouts) > 0 {
			resp.ActiveLayout = &layouts[0]
			resp.Components, err = repository.GetLayoutComponents(db, layouts[0].ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching components"})
				return
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// conflictError marks a duplicate component id under another layout.
type conflictError struct{ componentID string }

func (e conflictError) Error() string {
	return fmt.Sprintf("component id %s already exists in another layout", e.componentID)
}

// SaveLayout replaces a layout's component set with the submitted one.
// The replace is destructive: previous components are deleted and the new
// set inserted verbatim, all inside one transaction so a concurrent reader
// never observes the half-empty state.
func SaveLayout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		var req models.SaveLayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON body"})
			return
		}

		seen := map[string]bool{}
		for _, comp := range req.Components {
			if comp.ID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Component id is required"})
				return
			}
			if seen[comp.ID] {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Duplicate component id %q in layout", comp.ID)})
				return
			}
			seen[comp.ID] = true
			if !models.ComponentType(comp.Type).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid component type %q", comp.Type)})
				return
			}
			if comp.Status != "" && !models.ComponentStatus(comp.Status).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid component status %q", comp.Status)})
				return
			}
		}

		var layoutID string
		err := db.Transaction(func(tx *gorm.DB) error {
			var layout models.WarehouseLayout
			if req.LayoutID != "" {
				if err := tx.First(&layout, "id = ?", req.LayoutID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return errLayoutNotFound
					}
					return err
				}
			} else {
				layout = models.WarehouseLayout{
					ID:        uuid.NewString(),
					Name:      fmt.Sprintf("Layout %s", time.Now().Format("2006-01-02 15:04")),
					IsActive:  true,
					CreatedBy: user.ID,
				}
				if err := tx.Create(&layout).Error; err != nil {
					return err
				}
			}
			layoutID = layout.ID

			if err := tx.Where("layout_id = ?", layout.ID).
				Delete(&models.WarehouseComponent{}).Error; err != nil {
				return err
			}

			for _, comp := range req.Components {
				// the component id is global: colliding with a row under a
				// different layout is a conflict, not an overwrite
				var count int64
				if err := tx.Model(&models.WarehouseComponent{}).
					Where("id = ?", comp.ID).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return conflictError{componentID: comp.ID}
				}

				status := models.ComponentStatus(comp.Status)
				if status == "" {
					status = models.StatusGood
				}
				component := models.WarehouseComponent{
					ID:            comp.ID,
					LayoutID:      layout.ID,
					ComponentType: models.ComponentType(comp.Type),
					XPosition:     comp.X,
					YPosition:     comp.Y,
					Width:         comp.Width,
					Height:        comp.Height,
					Status:        status,
				}
				if err := tx.Create(&component).Error; err != nil {
					return err
				}
			}

			return tx.Model(&layout).Update("updated_at", time.Now()).Error
		})

		if err != nil {
			var conflict conflictError
			switch {
			case errors.Is(err, errLayoutNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Layout not found"})
			case errors.As(err, &conflict):
				c.JSON(http.StatusConflict, gin.H{"success": false, "error": conflict.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "layout_id": layoutID})
	}
}
