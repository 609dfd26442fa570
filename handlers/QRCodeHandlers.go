package handlers

import (
	"backend/models"
	"backend/utils"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// GetComponentQR serves a PNG QR code label for a component. The encoded
// payload is the component lookup path so a scan opens the inspection
// panel for that component.
func GetComponentQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		componentID := c.Param("id")

		var component models.WarehouseComponent
		if err := db.First(&component, "id = ?", componentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.ErrorResponse(c, "Component not found", http.StatusNotFound)
				return
			}
			utils.ErrorResponse(c, "Error fetching component", http.StatusInternalServerError)
			return
		}

		payload := fmt.Sprintf("/api/component/%s/", component.ID)
		png, err := qrcode.Encode(payload, qrcode.Medium, 256)
		if err != nil {
			utils.ErrorResponse(c, "Failed to generate QR code", http.StatusInternalServerError)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.png", component.ID))
		c.Data(http.StatusOK, "image/png", png)
	}
}
