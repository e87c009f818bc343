package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/handler"
	"github.com/CodeDreamers777/Assettone/internal/middleware"
	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/notify"
	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/config"
	"github.com/CodeDreamers777/Assettone/pkg/database"
	"github.com/CodeDreamers777/Assettone/pkg/jwtutil"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
	"github.com/CodeDreamers777/Assettone/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting Assettone API...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Profile{},
		&model.Property{},
		&model.Unit{},
		&model.Tenant{},
		&model.Lease{},
		&model.RentPayment{},
		&model.RentPeriodStatus{},
		&model.MaintenanceRequest{},
	); err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}
	log.Info("Database models migrated")

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})
	middleware.InitAuthMiddleware(jwtUtil)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire the service layer and handlers
	svc := service.New(db)
	handler.InitHandlers(svc, jwtUtil, &notify.LogSender{Log: log})

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", prometheus.HandlerFunc())

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware)

	// Profile management
	api.GET("/profile", handler.GetProfile)
	api.PATCH("/profile", handler.UpdateProfile)
	api.POST("/change-password", handler.ChangePassword)

	// Property management
	properties := api.Group("/properties")
	properties.POST("", handler.CreateProperty)
	properties.GET("", handler.ListProperties)
	properties.GET("/:id", handler.GetProperty)
	properties.PATCH("/:id", handler.UpdateProperty)

	// Unit management
	units := api.Group("/units")
	units.POST("", handler.CreateUnit)
	units.GET("", handler.ListUnits)
	units.GET("/:id", handler.GetUnit)
	units.DELETE("/:id", handler.DeleteUnit)
	units.GET("/:id/payment-status", handler.GetUnitPaymentStatus)
	units.POST("/:id/rental-notice", handler.SendRentalNotice)

	// Tenant registry
	tenants := api.Group("/tenants")
	tenants.POST("", handler.CreateTenant)
	tenants.GET("", handler.ListTenants)
	tenants.GET("/:id", handler.GetTenant)
	tenants.POST("/:id/status", handler.SetTenantStatus)
	tenants.POST("/email", handler.EmailTenants)

	// Lease lifecycle
	leases := api.Group("/leases")
	leases.POST("", handler.CreateLease)
	leases.GET("", handler.ListLeases)
	leases.GET("/:id", handler.GetLease)
	leases.POST("/:id/status", handler.ChangeLeaseStatus)
	leases.POST("/:id/terminate", handler.TerminateLease)
	leases.POST("/:id/transfer", handler.TransferLease)
	leases.POST("/:id/payments", handler.RecordRentPayment)
	leases.GET("/:id/payments", handler.ListLeasePayments)

	// Maintenance workflow
	maintenance := api.Group("/maintenance-requests")
	maintenance.POST("", handler.CreateMaintenanceRequest)
	maintenance.GET("", handler.ListMaintenanceRequests)
	maintenance.PATCH("/:id", handler.UpdateMaintenanceRequest)
	maintenance.POST("/:id/approve", handler.ApproveMaintenanceRequest)
	maintenance.POST("/:id/reject", handler.RejectMaintenanceRequest)
	maintenance.POST("/:id/complete", handler.CompleteMaintenanceRequest)

	// Reporting
	api.GET("/dashboard", handler.GetDashboardMetrics)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
