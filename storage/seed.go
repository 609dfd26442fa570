package storage

import (
	"backend/models"
	"backend/utils"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedSampleData creates a demo admin, an inspector, and a small warehouse
// layout so a fresh install has something to look at. Safe to call on every
// startup: it does nothing once users exist.
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}
	inspectorPassword, err := utils.HashPassword("inspect123")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:     "admin@example.com",
		Password:  adminPassword,
		FirstName: "Sarah",
		LastName:  "Mitchell",
	}
	inspector := models.User{
		Email:     "inspector@example.com",
		Password:  inspectorPassword,
		FirstName: "James",
		LastName:  "Carter",
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&inspector).Error; err != nil {
			return err
		}

		certExpiry := time.Now().AddDate(2, 0, 0)
		profiles := []models.UserProfile{
			{UserID: admin.ID, Role: models.RoleAdmin, Phone: "555-0100"},
			{
				UserID:              inspector.ID,
				Role:                models.RoleInspector,
				Phone:               "555-0101",
				CertificationNumber: "SEMA-2041",
				CertificationExpiry: &certExpiry,
			},
		}
		if err := tx.Create(&profiles).Error; err != nil {
			return err
		}

		layout := models.WarehouseLayout{
			ID:          uuid.NewString(),
			Name:        "Main Warehouse",
			Description: "Ground floor racking, aisles A-C",
			IsActive:    true,
			CreatedBy:   admin.ID,
		}
		if err := tx.Create(&layout).Error; err != nil {
			return err
		}

		components := []models.WarehouseComponent{
			{ID: "RK-A1", LayoutID: layout.ID, ComponentType: models.ComponentRack, XPosition: 40, YPosition: 40, Width: 120, Height: 300, Status: models.StatusGood},
			{ID: "RK-A2", LayoutID: layout.ID, ComponentType: models.ComponentRack, XPosition: 200, YPosition: 40, Width: 120, Height: 300, Status: models.StatusGood},
			{ID: "BM-A1-1", LayoutID: layout.ID, ComponentType: models.ComponentBeam, XPosition: 40, YPosition: 360, Width: 280, Height: 20, Status: models.StatusGood},
			{ID: "UP-A1-L", LayoutID: layout.ID, ComponentType: models.ComponentUpright, XPosition: 30, YPosition: 40, Width: 10, Height: 340, Status: models.StatusGood},
			{ID: "UP-A1-R", LayoutID: layout.ID, ComponentType: models.ComponentUpright, XPosition: 330, YPosition: 40, Width: 10, Height: 340, Status: models.StatusGood},
		}
		if err := tx.Create(&components).Error; err != nil {
			return err
		}

		log.Println("Seeded sample users and layout", layout.ID)
		return nil
	})
}
