package handlers

import (
	"backend/models"
	"backend/utils"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var layoutCSVHeader = []string{"component_id", "type", "x", "y", "width", "height", "status"}

func floatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportLayoutCSV streams the components of a layout as CSV, one row per
// component, ordered by component id.
func ExportLayoutCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		layoutID := c.Param("layout_id")

		var layout models.WarehouseLayout
		if err := db.First(&layout, "id = ?", layoutID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Layout not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching layout"})
			return
		}

		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		var components []models.WarehouseComponent
		err := db.WithContext(ctx).Where("layout_id = ?", layout.ID).Order("id ASC").Find(&components).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching components"})
			return
		}

		fileName := fmt.Sprintf("layout_%s_%s.csv", layout.ID, time.Now().Format("20060102"))
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename="+fileName)

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		if err := writer.Write(layoutCSVHeader); err != nil {
			return
		}
		for _, comp := range components {
			record := []string{
				comp.ID,
				string(comp.ComponentType),
				floatField(comp.XPosition),
				floatField(comp.YPosition),
				floatField(comp.Width),
				floatField(comp.Height),
				string(comp.Status),
			}
			if err := writer.Write(record); err != nil {
				return
			}
		}
	}
}

// ExportLayoutExcel serves the same data as ExportLayoutCSV as an xlsx
// workbook with a header row.
func ExportLayoutExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		layoutID := c.Param("layout_id")

		var layout models.WarehouseLayout
		if err := db.First(&layout, "id = ?", layoutID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Layout not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching layout"})
			return
		}

		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		var components []models.WarehouseComponent
		err := db.WithContext(ctx).Where("layout_id = ?", layout.ID).Order("id ASC").Find(&components).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching components"})
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Components"
		index, err := f.NewSheet(sheet)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating sheet"})
			return
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")

		for col, title := range layoutCSVHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, title)
		}
		for row, comp := range components {
			values := []interface{}{
				comp.ID,
				string(comp.ComponentType),
				comp.XPosition,
				comp.YPosition,
				comp.Width,
				comp.Height,
				string(comp.Status),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		fileName := fmt.Sprintf("layout_%s_%s.xlsx", layout.ID, time.Now().Format("20060102"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+fileName)

		if err := f.Write(c.Writer); err != nil {
			return
		}
	}
}
