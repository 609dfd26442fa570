package handlers

import (
	"backend/models"
	"backend/services"
	"backend/utils"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// GenerateReportPDF renders a stored report definition as a PDF and streams
// it to the client. The defects and urgent report types narrow the
// inspection set; full and compliance include everything in the window.
func GenerateReportPDF(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID := c.Param("id")
		if reportID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing report id"})
			return
		}

		titleCaser := cases.Title(language.Und)

		var report models.Report
		err := db.Preload("Layout").First(&report, "id = ?", reportID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching report"})
			return
		}

		var generatedBy models.User
		if err := db.First(&generatedBy, report.GeneratedBy).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching report author"})
			return
		}

		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		// end of the range is inclusive of the whole day
		windowEnd := report.DateTo.Add(24 * time.Hour)
		query := db.WithContext(ctx).Preload("Component").Preload("Inspector").Preload("Photos").
			Joins("JOIN warehouse_components ON warehouse_components.id = inspections.component_id").
			Where("warehouse_components.layout_id = ?", report.LayoutID).
			Where("inspections.inspection_date >= ? AND inspections.inspection_date < ?", report.DateFrom, windowEnd)

		switch report.ReportType {
		case models.ReportDefects:
			query = query.Where("inspections.severity IN ?", []models.SeverityLevel{models.SeverityAmber, models.SeverityRed})
		case models.ReportUrgent:
			query = query.Where("inspections.severity = ? AND inspections.is_resolved = ?", models.SeverityRed, false)
		}

		var inspections []models.Inspection
		if err := query.Order("inspections.inspection_date ASC").Find(&inspections).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching inspections"})
			return
		}

		layoutName := report.LayoutID
		if report.Layout != nil {
			layoutName = report.Layout.Name
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)

		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(190, 10, "RACK INSPECTION REPORT")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(95, 6, "Layout: "+layoutName)
		pdf.Cell(95, 6, "Type: "+titleCaser.String(strings.ReplaceAll(string(report.ReportType), "_", " ")))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(95, 6, fmt.Sprintf("Period: %s to %s",
			report.DateFrom.Format("02-Jan-2006"), report.DateTo.Format("02-Jan-2006")))
		if report.IncludeInspectorDetails && generatedBy.ID != 0 {
			pdf.Cell(95, 6, fmt.Sprintf("Prepared by: %s %s", generatedBy.FirstName, generatedBy.LastName))
		}
		pdf.Ln(10)

		var redCount, amberCount, resolvedCount int
		for _, insp := range inspections {
			switch insp.Severity {
			case models.SeverityRed:
				redCount++
			case models.SeverityAmber:
				amberCount++
			}
			if insp.IsResolved {
				resolvedCount++
			}
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(190, 8, "Summary")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(190, 6, fmt.Sprintf("Inspections: %d | Red: %d | Amber: %d | Resolved: %d",
			len(inspections), redCount, amberCount, resolvedCount))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(30, 8, "Component", "1", 0, "L", true, 0, "")
		pdf.CellFormat(28, 8, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 8, "Defect", "1", 0, "L", true, 0, "")
		pdf.CellFormat(22, 8, "Severity", "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 8, "Due", "1", 0, "C", true, 0, "")
		pdf.CellFormat(42, 8, "Status", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		now := time.Now()
		for _, insp := range inspections {
			defect := strings.ReplaceAll(string(insp.DefectType), "_", " ")
			if insp.DefectType == models.DefectCustom && insp.CustomDefect != "" {
				defect = insp.CustomDefect
			}
			due := "-"
			if insp.DueDate != nil {
				due = insp.DueDate.Format("02-Jan-2006")
			}
			state := "Open"
			if insp.IsResolved {
				state = "Resolved"
			} else if services.IsOverdue(&insp, now) {
				state = "OVERDUE"
			}
			if report.IncludeInspectorDetails && insp.Inspector != nil {
				state += " (" + insp.Inspector.FirstName + ")"
			}

			pdf.CellFormat(30, 8, insp.ComponentID, "1", 0, "L", false, 0, "")
			pdf.CellFormat(28, 8, insp.InspectionDate.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 8, titleCaser.String(defect), "1", 0, "L", false, 0, "")
			pdf.CellFormat(22, 8, titleCaser.String(string(insp.Severity)), "1", 0, "C", false, 0, "")
			pdf.CellFormat(28, 8, due, "1", 0, "C", false, 0, "")
			pdf.CellFormat(42, 8, state, "1", 1, "C", false, 0, "")
		}

		if report.IncludePhotos {
			pdf.Ln(8)
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(190, 8, "Photo Evidence")
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 9)
			listed := false
			for _, insp := range inspections {
				for _, photo := range insp.Photos {
					pdf.Cell(190, 6, fmt.Sprintf("%s: %s", insp.ComponentID, photo.Image))
					pdf.Ln(6)
					listed = true
				}
			}
			if !listed {
				pdf.Cell(190, 6, "No photos attached in this period.")
				pdf.Ln(6)
			}
		}

		pdf.SetY(-20)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(190, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", report.ID))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
	}
}
