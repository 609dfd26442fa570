package services

import (
	"backend/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DueDateOffset is how long an amber finding gets before it falls overdue.
const DueDateOffset = 28 * 24 * time.Hour

// DeriveComponentStatus maps an inspection severity to the component status
// it forces. The mapping is unconditional: a green inspection will downgrade
// a component that a previous red inspection set to immediate.
func DeriveComponentStatus(severity models.SeverityLevel) models.ComponentStatus {
	switch severity {
	case models.SeverityRed:
		return models.StatusImmediate
	case models.SeverityAmber:
		return models.StatusFix4Weeks
	default:
		return models.StatusMonitor
	}
}

// ComputeDueDate returns the due date for a new inspection: inspection date
// plus four weeks, date component only, and only for amber findings that do
// not already carry a due date.
func ComputeDueDate(severity models.SeverityLevel, inspectionDate time.Time, existing *time.Time) *time.Time {
	if severity != models.SeverityAmber || existing != nil {
		return existing
	}
	due := inspectionDate.Add(DueDateOffset)
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	return &d
}

// IsOverdue reports whether an inspection is overdue at the given moment:
// it has a due date, is unresolved, and the due date lies strictly before
// the current date. Derived on every read, never stored.
func IsOverdue(inspection *models.Inspection, now time.Time) bool {
	if inspection.DueDate == nil || inspection.IsResolved {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return inspection.DueDate.Before(today)
}

// ApplyInspectionRules runs the status-derivation rule for a newly created
// inspection: fill in the due date, overwrite the component status from the
// severity, then persist component and inspection in that order.
//
// The rule fires only here, on creation. Resolving an inspection later does
// NOT recompute the component status; a regression test pins that down.
func ApplyInspectionRules(db *gorm.DB, inspection *models.Inspection) error {
	inspection.DueDate = ComputeDueDate(inspection.Severity, inspection.InspectionDate, inspection.DueDate)

	return db.Transaction(func(tx *gorm.DB) error {
		var component models.WarehouseComponent
		if err := tx.First(&component, "id = ?", inspection.ComponentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("component %s not found", inspection.ComponentID)
			}
			return err
		}

		component.Status = DeriveComponentStatus(inspection.Severity)
		if err := tx.Model(&models.WarehouseComponent{}).
			Where("id = ?", component.ID).
			Update("status", component.Status).Error; err != nil {
			return fmt.Errorf("failed to update component status: %w", err)
		}

		if err := tx.Create(inspection).Error; err != nil {
			return fmt.Errorf("failed to create inspection: %w", err)
		}
		return nil
	})
}
