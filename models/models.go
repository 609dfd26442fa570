package models

import (
	"time"
)

// ComponentType classifies a warehouse rack component.
type ComponentType string

const (
	ComponentRack    ComponentType = "rack"
	ComponentBeam    ComponentType = "beam"
	ComponentUpright ComponentType = "upright"
)

// Valid reports whether t is one of the known component types.
func (t ComponentType) Valid() bool {
	switch t {
	case ComponentRack, ComponentBeam, ComponentUpright:
		return true
	}
	return false
}

// ComponentStatus is the current condition of a component. It is overwritten
// by the inspection rules whenever an inspection is recorded against it.
type ComponentStatus string

const (
	StatusGood      ComponentStatus = "good"
	StatusMonitor   ComponentStatus = "monitor"
	StatusFix4Weeks ComponentStatus = "fix_4_weeks"
	StatusImmediate ComponentStatus = "immediate"
)

func (s ComponentStatus) Valid() bool {
	switch s {
	case StatusGood, StatusMonitor, StatusFix4Weeks, StatusImmediate:
		return true
	}
	return false
}

// SeverityLevel classifies an inspection finding.
type SeverityLevel string

const (
	SeverityGreen SeverityLevel = "green"
	SeverityAmber SeverityLevel = "amber"
	SeverityRed   SeverityLevel = "red"
)

func (s SeverityLevel) Valid() bool {
	switch s {
	case SeverityGreen, SeverityAmber, SeverityRed:
		return true
	}
	return false
}

// DefectType enumerates the defect categories an inspector can record.
// DefectCustom requires a free-text description in Inspection.CustomDefect.
type DefectType string

const (
	DefectBentUpright       DefectType = "bent_upright"
	DefectDamagedBeam       DefectType = "damaged_beam"
	DefectLooseConnections  DefectType = "loose_connections"
	DefectCorrosion         DefectType = "corrosion"
	DefectMissingComponents DefectType = "missing_components"
	DefectOverloading       DefectType = "overloading"
	DefectCustom            DefectType = "custom"
)

func (d DefectType) Valid() bool {
	switch d {
	case DefectBentUpright, DefectDamagedBeam, DefectLooseConnections,
		DefectCorrosion, DefectMissingComponents, DefectOverloading, DefectCustom:
		return true
	}
	return false
}

// DefectTypeChoices lists defect types with display labels for the inspection form.
func DefectTypeChoices() []Choice {
	return []Choice{
		{Value: string(DefectBentUpright), Label: "Bent Upright"},
		{Value: string(DefectDamagedBeam), Label: "Damaged Beam"},
		{Value: string(DefectLooseConnections), Label: "Loose Connections"},
		{Value: string(DefectCorrosion), Label: "Corrosion/Rust"},
		{Value: string(DefectMissingComponents), Label: "Missing Components"},
		{Value: string(DefectOverloading), Label: "Overloading"},
		{Value: string(DefectCustom), Label: "Custom Defect"},
	}
}

// SeverityChoices lists severity levels with display labels for the inspection form.
func SeverityChoices() []Choice {
	return []Choice{
		{Value: string(SeverityGreen), Label: "Monitor - No immediate action required"},
		{Value: string(SeverityAmber), Label: "Fix within 4 weeks"},
		{Value: string(SeverityRed), Label: "Immediate threat - Fix now"},
	}
}

// Role of a user profile.
type Role string

const (
	RoleInspector Role = "inspector"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleInspector, RoleAdmin:
		return true
	}
	return false
}

// ReportType selects what a generated report covers.
type ReportType string

const (
	ReportFull       ReportType = "full"
	ReportDefects    ReportType = "defects"
	ReportUrgent     ReportType = "urgent"
	ReportCompliance ReportType = "compliance"
)

func (r ReportType) Valid() bool {
	switch r {
	case ReportFull, ReportDefects, ReportUrgent, ReportCompliance:
		return true
	}
	return false
}

// NotificationType classifies a notification row.
type NotificationType string

const (
	NotificationAmberReminder NotificationType = "amber_reminder"
	NotificationRedAlert      NotificationType = "red_alert"
	NotificationOverdue       NotificationType = "overdue"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	Suspended bool      `gorm:"default:false" json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string { return "users" }

// Session is an opaque login session. The session id travels in the
// Authorization header and is resolved back to a user on every request.
type Session struct {
	SessionID string    `gorm:"primaryKey;size:64" json:"session_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	HostName  string    `gorm:"size:255" json:"host_name"`
	IPAddress string    `gorm:"size:64" json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (Session) TableName() string { return "sessions" }

type UserProfile struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Role                Role       `gorm:"size:20;not null;default:inspector" json:"role"`
	Phone               string     `gorm:"size:20" json:"phone"`
	CertificationNumber string     `gorm:"size:50" json:"certification_number"`
	CertificationExpiry *time.Time `json:"certification_expiry,omitempty"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// IsAdmin reports whether the profile grants the admin capability.
func (p *UserProfile) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }

type WarehouseLayout struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Components []WarehouseComponent `gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE" json:"components,omitempty"`
}

func (WarehouseLayout) TableName() string { return "warehouse_layouts" }

// WarehouseComponent is a single rack/beam/upright placed on the layout
// canvas. Its id is supplied by the caller (e.g. "RK-A1-B1") and is unique
// across the whole system, not just within one layout.
type WarehouseComponent struct {
	ID            string          `gorm:"primaryKey;size:50" json:"id"`
	LayoutID      string          `gorm:"size:36;index;not null" json:"layout_id"`
	ComponentType ComponentType   `gorm:"size:20;not null" json:"component_type"`
	XPosition     float64         `gorm:"not null" json:"x"`
	YPosition     float64         `gorm:"not null" json:"y"`
	Width         float64         `gorm:"not null" json:"width"`
	Height        float64         `gorm:"not null" json:"height"`
	Status        ComponentStatus `gorm:"size:20;not null;default:good" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Inspections []Inspection `gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE" json:"inspections,omitempty"`
}

func (WarehouseComponent) TableName() string { return "warehouse_components" }

type Inspection struct {
	ID             string        `gorm:"primaryKey;size:36" json:"id"`
	ComponentID    string        `gorm:"size:50;index;not null" json:"component_id"`
	InspectorID    uint          `gorm:"not null" json:"inspector_id"`
	DefectType     DefectType    `gorm:"size:50;not null" json:"defect_type"`
	CustomDefect   string        `gorm:"size:255" json:"custom_defect"`
	Severity       SeverityLevel `gorm:"size:10;not null" json:"severity"`
	Notes          string        `json:"notes"`
	InspectionDate time.Time     `gorm:"index;not null" json:"inspection_date"`
	DueDate        *time.Time    `json:"due_date,omitempty"`
	IsResolved     bool          `gorm:"default:false" json:"is_resolved"`
	ResolvedDate   *time.Time    `json:"resolved_date,omitempty"`
	ResolvedBy     *uint         `json:"resolved_by,omitempty"`

	Component *WarehouseComponent `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
	Inspector *User               `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
	Photos    []InspectionPhoto   `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

func (Inspection) TableName() string { return "inspections" }

// InspectionPhoto stores the upload path of a photo attached to an
// inspection. The file itself is written once and never modified.
type InspectionPhoto struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InspectionID string    `gorm:"size:36;index;not null" json:"inspection_id"`
	Image        string    `gorm:"size:512;not null" json:"image"`
	Caption      string    `gorm:"size:255" json:"caption"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (InspectionPhoto) TableName() string { return "inspection_photos" }

type Report struct {
	ID                      string     `gorm:"primaryKey;size:36" json:"id"`
	LayoutID                string     `gorm:"size:36;index;not null" json:"layout_id"`
	ReportType              ReportType `gorm:"size:20;not null" json:"report_type"`
	GeneratedBy             uint       `gorm:"not null" json:"generated_by"`
	GeneratedAt             time.Time  `gorm:"autoCreateTime" json:"generated_at"`
	DateFrom                time.Time  `gorm:"not null" json:"date_from"`
	DateTo                  time.Time  `gorm:"not null" json:"date_to"`
	PDFFile                 string     `gorm:"size:512" json:"pdf_file"`
	IncludeLayout           bool       `gorm:"default:true" json:"include_layout"`
	IncludePhotos           bool       `gorm:"default:true" json:"include_photos"`
	IncludeInspectorDetails bool       `gorm:"default:false" json:"include_inspector_details"`

	Layout *WarehouseLayout `gorm:"foreignKey:LayoutID" json:"layout,omitempty"`
}

func (Report) TableName() string { return "reports" }

type Notification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"index;not null" json:"user_id"`
	InspectionID     string           `gorm:"size:36;index;not null" json:"inspection_id"`
	NotificationType NotificationType `gorm:"size:20;not null" json:"notification_type"`
	Message          string           `gorm:"not null" json:"message"`
	IsRead           bool             `gorm:"default:false" json:"is_read"`
	CreatedAt        time.Time        `json:"created_at"`
	SentAt           *time.Time       `json:"sent_at,omitempty"`
}

func (Notification) TableName() string { return "notifications" }
