package main

import (
	"backend/handlers"
	"backend/services"
	"backend/storage"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
		"http://localhost:5173",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return corsConfig
}

func main() {
	db := storage.InitDB()

	if os.Getenv("SEED_SAMPLE_DATA") == "true" {
		if err := storage.SeedSampleData(db); err != nil {
			log.Printf("Warning: sample data seeding failed: %v", err)
		}
	}

	// Daily maintenance: notification sweep plus session cleanup.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	_, err := c.AddFunc("0 6 * * *", func() {
		log.Println("Starting daily maintenance cron job")
		if err := services.RunNotificationSweep(db, time.Now()); err != nil {
			log.Printf("Notification sweep failed: %v", err)
		}
		if err := storage.CleanupExpiredSessions(db); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
		log.Println("Daily cron cycle completed")
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSession(db))

	auth := r.Group("/", handlers.AuthRequired(db))

	// ==================== 2. DASHBOARD ====================
	auth.GET("/api/dashboard", handlers.GetDashboard(db))

	// ==================== 3. LAYOUT EDITOR ====================
	auth.GET("/api/layout-editor", handlers.GetLayoutEditor(db))
	auth.POST("/api/save-layout/", handlers.SaveLayout(db))
	auth.GET("/api/export-layout-csv/:layout_id/", handlers.ExportLayoutCSV(db))
	auth.GET("/api/export-layout-excel/:layout_id/", handlers.ExportLayoutExcel(db))
	auth.POST("/api/import-layout-csv/", handlers.ImportLayoutCSV(db))

	// ==================== 4. INSPECTIONS ====================
	auth.GET("/api/inspection", handlers.GetInspectionPage(db))
	auth.POST("/api/create-inspection/", handlers.CreateInspection(db))
	auth.POST("/api/resolve-inspection/:id", handlers.ResolveInspection(db))
	auth.GET("/api/component/:id/", handlers.GetComponentData(db))
	auth.GET("/api/component-qr/:id/", handlers.GetComponentQR(db))
	auth.POST("/api/upload-photo/:inspection_id/", handlers.UploadInspectionPhoto(db))

	// ==================== 5. REPORTS ====================
	auth.GET("/api/reports", handlers.GetReports(db))
	auth.POST("/api/reports", handlers.CreateReport(db))
	auth.GET("/api/report-pdf/:id/", handlers.GenerateReportPDF(db))

	// ==================== 6. NOTIFICATIONS ====================
	auth.GET("/api/notifications", handlers.GetNotifications(db))
	auth.PUT("/api/notifications/:id/read", handlers.MarkNotificationRead(db))

	// ==================== 7. USERS ====================
	auth.GET("/api/users", handlers.AdminRequired(), handlers.GetUsers(db))
	auth.PUT("/api/update_profile/:id", handlers.UpdateProfile(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil || portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT environment variable: %s", port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
