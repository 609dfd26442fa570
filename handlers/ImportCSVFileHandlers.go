package handlers

import (
	"backend/models"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type csvRowError struct {
	Row    int
	Field  string
	Reason string
}

func (e csvRowError) Error() string {
	return fmt.Sprintf("row %d: invalid %s: %s", e.Row, e.Field, e.Reason)
}

func parseComponentRow(row int, record map[string]string) (*models.WarehouseComponent, error) {
	id := strings.TrimSpace(record["component_id"])
	if id == "" {
		return nil, csvRowError{row, "component_id", "must not be empty"}
	}

	compType := models.ComponentType(strings.TrimSpace(record["type"]))
	if !compType.Valid() {
		return nil, csvRowError{row, "type", string(compType)}
	}

	coords := map[string]float64{}
	for _, field := range []string{"x", "y", "width", "height"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[field]), 64)
		if err != nil {
			return nil, csvRowError{row, field, record[field]}
		}
		coords[field] = v
	}

	status := models.ComponentStatus(strings.TrimSpace(record["status"]))
	if status == "" {
		status = models.StatusGood
	}
	if !status.Valid() {
		return nil, csvRowError{row, "status", string(status)}
	}

	return &models.WarehouseComponent{
		ID:            id,
		ComponentType: compType,
		XPosition:     coords["x"],
		YPosition:     coords["y"],
		Width:         coords["width"],
		Height:        coords["height"],
		Status:        status,
	}, nil
}

// ImportLayoutCSV creates a brand-new layout from an uploaded CSV file.
// The import is all-or-nothing: any malformed row aborts the whole upload
// and nothing is written.
func ImportLayoutCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		fileHeader, err := c.FormFile("csv_file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "csv_file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not open uploaded file"})
			return
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is empty or unreadable"})
			return
		}
		columns := map[string]int{}
		for i, name := range header {
			columns[strings.TrimSpace(strings.ToLower(name))] = i
		}
		for _, required := range []string{"component_id", "type", "x", "y", "width", "height"} {
			if _, ok := columns[required]; !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "CSV is missing column: " + required})
				return
			}
		}

		var components []*models.WarehouseComponent
		seen := map[string]bool{}
		for row := 2; ; row++ {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("row %d: %v", row, err)})
				return
			}

			fields := map[string]string{}
			for name, idx := range columns {
				if idx < len(record) {
					fields[name] = record[idx]
				}
			}

			comp, err := parseComponentRow(row, fields)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if seen[comp.ID] {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("row %d: duplicate component_id %s", row, comp.ID)})
				return
			}
			seen[comp.ID] = true
			components = append(components, comp)
		}

		if len(components) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CSV contains no component rows"})
			return
		}

		layout := models.WarehouseLayout{
			ID:        uuid.NewString(),
			Name:      "Imported Layout " + time.Now().Format("2006-01-02 15:04:05"),
			IsActive:  true,
			CreatedBy: user.ID,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&layout).Error; err != nil {
				return err
			}
			for _, comp := range components {
				var count int64
				if err := tx.Model(&models.WarehouseComponent{}).Where("id = ?", comp.ID).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return conflictError{componentID: comp.ID}
				}
				comp.LayoutID = layout.ID
				if err := tx.Create(comp).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			var conflict conflictError
			if errors.As(err, &conflict) {
				c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error importing layout: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   fmt.Sprintf("Imported %d components", len(components)),
			"layout_id": layout.ID,
		})
	}
}
