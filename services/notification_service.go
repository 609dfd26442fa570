package services

import (
	"backend/models"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// amberReminderWindow is how close to the due date an amber finding has to
// be before the inspector gets a reminder.
const amberReminderWindow = 7 * 24 * time.Hour

// RunNotificationSweep walks all unresolved inspections and creates the
// notifications they warrant: a red_alert for every red finding, an
// amber_reminder for amber findings due within a week, and an overdue notice
// once the due date has passed. At most one notification per (inspection,
// type), so the daily cron run is idempotent.
func RunNotificationSweep(db *gorm.DB, now time.Time) error {
	var inspections []models.Inspection
	err := db.Preload("Component").Where("is_resolved = ?", false).Find(&inspections).Error
	if err != nil {
		return fmt.Errorf("failed to fetch unresolved inspections: %w", err)
	}

	created := 0
	for i := range inspections {
		insp := &inspections[i]

		if insp.Severity == models.SeverityRed {
			n, err := createOnce(db, insp, models.NotificationRedAlert,
				fmt.Sprintf("Immediate threat on component %s: fix now", insp.ComponentID), now)
			if err != nil {
				return err
			}
			created += n
		}

		if IsOverdue(insp, now) {
			n, err := createOnce(db, insp, models.NotificationOverdue,
				fmt.Sprintf("Inspection on component %s is overdue (due %s)",
					insp.ComponentID, insp.DueDate.Format("2006-01-02")), now)
			if err != nil {
				return err
			}
			created += n
			continue
		}

		if insp.Severity == models.SeverityAmber && insp.DueDate != nil &&
			insp.DueDate.Sub(now) <= amberReminderWindow {
			n, err := createOnce(db, insp, models.NotificationAmberReminder,
				fmt.Sprintf("Component %s is due for repair by %s",
					insp.ComponentID, insp.DueDate.Format("2006-01-02")), now)
			if err != nil {
				return err
			}
			created += n
		}
	}

	if created > 0 {
		log.Printf("Notification sweep created %d notifications", created)
	}
	return nil
}

func createOnce(db *gorm.DB, insp *models.Inspection, ntype models.NotificationType, message string, now time.Time) (int, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("inspection_id = ? AND notification_type = ?", insp.ID, ntype).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to check existing notifications: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	sentAt := now
	notification := models.Notification{
		UserID:           insp.InspectorID,
		InspectionID:     insp.ID,
		NotificationType: ntype,
		Message:          message,
		SentAt:           &sentAt,
	}
	if err := db.Create(&notification).Error; err != nil {
		return 0, fmt.Errorf("failed to create notification: %w", err)
	}
	return 1, nil
}
