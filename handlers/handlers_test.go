package handlers

import (
	"backend/models"
	"backend/storage"
	"backend/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	adminToken     string
	inspectorToken string
	admin          models.User
	inspector      models.User
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, storage.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	env := &testEnv{db: db}
	env.admin, env.adminToken = seedUser(t, db, "admin@test.local", models.RoleAdmin)
	env.inspector, env.inspectorToken = seedUser(t, db, "inspector@test.local", models.RoleInspector)

	r := gin.New()
	r.POST("/api/login", LoginHandler(db))
	r.POST("/api/logout", LogoutHandler(db))
	r.POST("/api/validate-session", ValidateSession(db))

	auth := r.Group("/", AuthRequired(db))
	auth.GET("/api/dashboard", GetDashboard(db))
	auth.GET("/api/layout-editor", GetLayoutEditor(db))
	auth.POST("/api/save-layout/", SaveLayout(db))
	auth.GET("/api/export-layout-csv/:layout_id/", ExportLayoutCSV(db))
	auth.GET("/api/export-layout-excel/:layout_id/", ExportLayoutExcel(db))
	auth.POST("/api/import-layout-csv/", ImportLayoutCSV(db))
	auth.GET("/api/inspection", GetInspectionPage(db))
	auth.POST("/api/create-inspection/", CreateInspection(db))
	auth.POST("/api/resolve-inspection/:id", ResolveInspection(db))
	auth.GET("/api/component/:id/", GetComponentData(db))
	auth.GET("/api/component-qr/:id/", GetComponentQR(db))
	auth.POST("/api/upload-photo/:inspection_id/", UploadInspectionPhoto(db))
	auth.GET("/api/reports", GetReports(db))
	auth.POST("/api/reports", CreateReport(db))
	auth.GET("/api/report-pdf/:id/", GenerateReportPDF(db))
	auth.GET("/api/notifications", GetNotifications(db))
	auth.PUT("/api/notifications/:id/read", MarkNotificationRead(db))
	auth.GET("/api/users", AdminRequired(), GetUsers(db))
	auth.PUT("/api/update_profile/:id", UpdateProfile(db))
	env.router = r

	return env
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) (models.User, string) {
	t.Helper()
	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID, Role: role}).Error)

	session := models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&session).Error)
	return user, session.SessionID
}

func seedTestLayout(t *testing.T, db *gorm.DB, createdBy uint) models.WarehouseLayout {
	t.Helper()
	layout := models.WarehouseLayout{
		ID:        uuid.NewString(),
		Name:      "Test Warehouse",
		IsActive:  true,
		CreatedBy: createdBy,
	}
	require.NoError(t, db.Create(&layout).Error)
	return layout
}

func seedTestComponent(t *testing.T, db *gorm.DB, layoutID, id string) models.WarehouseComponent {
	t.Helper()
	comp := models.WarehouseComponent{
		ID:            id,
		LayoutID:      layoutID,
		ComponentType: models.ComponentRack,
		XPosition:     10,
		YPosition:     20,
		Width:         80,
		Height:        40,
		Status:        models.StatusGood,
	}
	require.NoError(t, db.Create(&comp).Error)
	return comp
}

func (env *testEnv) request(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
