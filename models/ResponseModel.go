package models

import (
	"time"
)

// Choice is a value/label pair for form select fields.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SaveLayoutRequest is the JSON body of POST /api/save-layout/.
type SaveLayoutRequest struct {
	LayoutID   string                `json:"layout_id"`
	Components []SaveLayoutComponent `json:"components"`
}

type SaveLayoutComponent struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Status string  `json:"status"`
}

// InspectionResponse carries an inspection plus its derived overdue flag.
// is_overdue is recomputed on every read, never stored.
type InspectionResponse struct {
	Inspection
	IsOverdue bool `json:"is_overdue"`
}

// DashboardResponse aggregates the component status counts and urgent /
// recent inspection lists shown on the dashboard.
type DashboardResponse struct {
	TotalComponents   int64                `json:"total_components"`
	ImmediateThreats  int64                `json:"immediate_threats"`
	Fix4Weeks         int64                `json:"fix_4_weeks"`
	MonitorOnly       int64                `json:"monitor_only"`
	UrgentInspections []InspectionResponse `json:"urgent_inspections"`
	RecentActivity    []InspectionResponse `json:"recent_activity"`
}

type LayoutResponse struct {
	Layouts      []WarehouseLayout    `json:"layouts"`
	ActiveLayout *WarehouseLayout     `json:"active_layout,omitempty"`
	Components   []WarehouseComponent `json:"components"`
}

type CreateReportRequest struct {
	LayoutID                string `json:"layout_id" binding:"required"`
	ReportType              string `json:"report_type" binding:"required"`
	DateFrom                string `json:"date_from" binding:"required"`
	DateTo                  string `json:"date_to" binding:"required"`
	IncludeLayout           *bool  `json:"include_layout"`
	IncludePhotos           *bool  `json:"include_photos"`
	IncludeInspectorDetails *bool  `json:"include_inspector_details"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
	Role        Role   `json:"role"`
}

// PaginatedUsers is the admin user list page.
type PaginatedUsers struct {
	Users      []User `json:"users"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	TotalCount int64  `json:"total_count"`
}

type PaginatedReports struct {
	Reports    []Report `json:"reports"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	TotalCount int64    `json:"total_count"`
}

type UpdateProfileRequest struct {
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Email               string     `json:"email"`
	Role                string     `json:"role"`
	Phone               string     `json:"phone"`
	CertificationNumber string     `json:"certification_number"`
	CertificationExpiry *time.Time `json:"certification_expiry"`
}
