package routes

import (
	"time"

	"staytrack/internal/adapters/http/handlers"
	"staytrack/internal/adapters/http/middleware"
	"staytrack/internal/adapters/persistence/repositories"
	"staytrack/internal/config"
	"staytrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	adminService := services.NewAdminService(userRepo, refreshTokenRepo)
	roomService := services.NewRoomService(roomRepo, userRepo)
	tenantService := services.NewTenantService(db, tenantRepo, roomRepo)
	paymentService := services.NewPaymentService(paymentRepo, tenantRepo, roomRepo, cfg.UploadDir)
	reportService := services.NewReportService(paymentRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	adminHandler := handlers.NewAdminHandler(adminService)
	roomHandler := handlers.NewRoomHandler(roomService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded proof images
	app.Static("/uploads", cfg.UploadDir)

	requireAuth := middleware.AuthMiddleware(authService)

	// Auth routes
	auth := app.Group("/api/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/register/owner", middleware.AuthRateLimiter(), authHandler.RegisterOwner)
	auth.Post("/register/admin", requireAuth, middleware.OwnerOnly(), authHandler.RegisterAdmin)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", requireAuth, authHandler.LogoutAll)
	auth.Get("/me", requireAuth, authHandler.Me)

	// Owner-only admin management
	admin := app.Group("/api/admin", requireAuth)
	admin.Post("/create", middleware.OwnerOnly(), authHandler.RegisterAdmin)
	admin.Get("/list", middleware.OwnerOnly(), adminHandler.ListAdmins)

	// Room registry (owner or admin)
	rooms := admin.Group("/rooms", middleware.StaffOnly())
	rooms.Post("/create", roomHandler.CreateRoom)
	rooms.Get("/", roomHandler.ListRooms)
	rooms.Get("/:id", roomHandler.GetRoom)
	rooms.Put("/:id", roomHandler.UpdateRoom)
	rooms.Delete("/:id", roomHandler.DeleteRoom)

	// Tenant lifecycle (owner or admin)
	tenants := admin.Group("/tenants", middleware.StaffOnly())
	tenants.Post("/create", tenantHandler.CheckIn)
	tenants.Get("/", tenantHandler.ListTenants)
	tenants.Put("/checkout/:id", tenantHandler.CheckOut)
	tenants.Get("/:id", tenantHandler.GetTenant)
	tenants.Put("/:id", tenantHandler.UpdateTenant)

	// Payment ledger (owner or admin)
	payments := admin.Group("/payments", middleware.StaffOnly())
	payments.Post("/create", paymentHandler.CreatePayment)
	payments.Get("/", paymentHandler.ListPayments)
	payments.Post("/:id/proof", paymentHandler.UploadProof)

	// Reports (owner or admin)
	admin.Get("/reports", middleware.StaffOnly(), middleware.PrivateCacheHeaders(30*time.Second), reportHandler.GetReport)

	// Owner-scoped admin CRUD, registered after /rooms etc. so the
	// param route does not shadow them
	admin.Get("/:id", middleware.OwnerOnly(), adminHandler.GetAdmin)
	admin.Delete("/:id", middleware.OwnerOnly(), adminHandler.DeleteAdmin)
	admin.Put("/:id/reset-password", middleware.OwnerOnly(), middleware.StrictRateLimiter(), adminHandler.ResetAdminPassword)
}
