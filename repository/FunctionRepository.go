package repository

import (
	"backend/models"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

// PageSize is the fixed page size used by the paginated list views.
const PageSize = 10

// ParsePage reads a page query value, defaulting to 1 on anything invalid.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate is a gorm scope applying offset/limit for the given page.
func Paginate(page int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * PageSize).Limit(PageSize)
	}
}

// TotalPages computes the page count for a total row count.
func TotalPages(total int64) int {
	pages := int((total + PageSize - 1) / PageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}

// GetActiveLayout returns the most recently updated active layout, or nil
// when none exists.
func GetActiveLayout(db *gorm.DB) (*models.WarehouseLayout, error) {
	var layout models.WarehouseLayout
	err := db.Where("is_active = ?", true).Order("updated_at DESC").First(&layout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &layout, nil
}

// GetLayoutComponents returns a layout's components in id order, the
// canonical ordering for both the editor and the CSV export.
func GetLayoutComponents(db *gorm.DB, layoutID string) ([]models.WarehouseComponent, error) {
	components := []models.WarehouseComponent{}
	err := db.Where("layout_id = ?", layoutID).Order("id ASC").Find(&components).Error
	return components, err
}

// GetLatestInspection returns the newest inspection for a component, or nil
// when it has none.
func GetLatestInspection(db *gorm.DB, componentID string) (*models.Inspection, error) {
	var inspection models.Inspection
	err := db.Preload("Inspector").
		Where("component_id = ?", componentID).
		Order("inspection_date DESC").
		First(&inspection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inspection, nil
}
