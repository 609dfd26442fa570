package handlers

import (
	"backend/models"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const photoUploadDir = "uploads/inspection_photos"

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadInspectionPhoto attaches a photo to an existing inspection. The
// file lands under uploads/inspection_photos with a timestamped name and
// the stored path is recorded against the inspection.
func UploadInspectionPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		inspectionID := c.Param("inspection_id")

		var inspection models.Inspection
		if err := db.First(&inspection, "id = ?", inspectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Inspection not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching inspection"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedPhotoExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type: " + ext})
			return
		}

		if err := os.MkdirAll(photoUploadDir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory"})
			return
		}

		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(file.Filename))
		dstPath := filepath.Join(photoUploadDir, filename)

		if err := c.SaveUploadedFile(file, dstPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
			return
		}

		photo := models.InspectionPhoto{
			InspectionID: inspection.ID,
			Image:        dstPath,
			Caption:      c.PostForm("caption"),
		}
		if err := db.Create(&photo).Error; err != nil {
			os.Remove(dstPath)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving photo record"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Photo uploaded",
			"photo":   photo,
		})
	}
}
