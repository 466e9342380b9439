package routes

import (
	"time"

	"campushub/internal/adapters/http/handlers"
	"campushub/internal/adapters/http/middleware"
	"campushub/internal/adapters/persistence/models"
	"campushub/internal/adapters/persistence/repositories"
	"campushub/internal/config"
	"campushub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	memberRepo := repositories.NewClubMemberRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	clubService := services.NewClubService(clubRepo, userRepo)
	membershipService := services.NewMembershipService(memberRepo, clubRepo, userRepo)
	eventService := services.NewEventService(eventRepo, clubRepo, userRepo)
	contentService := services.NewContentService(achievementRepo, resourceRepo, clubRepo, memberRepo, userRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(userService, clubService)
	clubHandler := handlers.NewClubHandler(clubService)
	memberHandler := handlers.NewClubMemberHandler(membershipService)
	eventHandler := handlers.NewEventHandler(eventService)
	contentHandler := handlers.NewContentHandler(contentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, userService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)
	setupUserRoutes(apiV1, userHandler, memberHandler, eventHandler, cfg)
	setupAdminRoutes(apiV1.Group("/admin"), adminHandler, cfg)
	setupClubRoutes(apiV1, clubHandler, memberHandler, contentHandler, cfg)
	setupEventRoutes(apiV1, eventHandler, cfg)
	setupDashboardRoutes(apiV1.Group("/dashboard"), dashboardHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), middleware.StrictRateLimiter(), handler.LogoutAll)
}

// setupUserRoutes configures profile and user administration routes
func setupUserRoutes(
	router fiber.Router,
	userHandler *handlers.UserHandler,
	memberHandler *handlers.ClubMemberHandler,
	eventHandler *handlers.EventHandler,
	cfg *config.Config,
) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))

	// Own profile
	users.Get("/me", middleware.NoCacheHeaders(), userHandler.GetProfile)
	users.Put("/me", userHandler.UpdateProfile)
	users.Put("/me/password", middleware.StrictRateLimiter(), userHandler.ChangePassword)
	users.Get("/me/memberships", memberHandler.ListMyMemberships)
	users.Get("/me/events", eventHandler.ListMyEvents)

	// Administration (department scoped for ADMIN, global for SUPER_ADMIN)
	users.Get("/", middleware.AdminOrAbove(), userHandler.ListUsers)
	users.Get("/:id", middleware.AdminOrAbove(), userHandler.GetUser)
	users.Put("/:id", middleware.AdminOrAbove(), userHandler.UpdateUser)
	users.Delete("/:id", middleware.AdminOrAbove(), userHandler.DeleteUser)
}

// setupAdminRoutes configures administrative routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Post("/admins", middleware.SuperAdminOnly(), handler.CreateAdmin)
	router.Post("/clubs/:id/manager", middleware.AdminOrAbove(), handler.AssignClubManager)
}

// setupClubRoutes configures club, membership and content routes
func setupClubRoutes(
	router fiber.Router,
	clubHandler *handlers.ClubHandler,
	memberHandler *handlers.ClubMemberHandler,
	contentHandler *handlers.ContentHandler,
	cfg *config.Config,
) {
	clubs := router.Group("/clubs")

	// Public browsing, short-lived cache
	clubs.Get("/", middleware.CacheControl(1*time.Minute), clubHandler.List)
	clubs.Get("/:id", middleware.CacheControl(1*time.Minute), clubHandler.Get)
	clubs.Get("/:id/achievements", middleware.OptionalAuth(cfg), contentHandler.ListAchievements)
	clubs.Get("/:id/resources", middleware.OptionalAuth(cfg), contentHandler.ListResources)

	// Club management
	clubs.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOrAbove(), clubHandler.Create)
	clubs.Put("/:id", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), clubHandler.Update)
	clubs.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOrAbove(), clubHandler.Delete)

	// Membership workflow
	clubs.Post("/:id/join", middleware.AuthMiddleware(cfg), memberHandler.RequestJoin)
	clubs.Get("/:id/members", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), memberHandler.ListMembers)

	// Content management
	clubs.Post("/:id/achievements", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), contentHandler.CreateAchievement)
	clubs.Post("/:id/resources", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), contentHandler.CreateResource)

	// Member record routes
	members := router.Group("/members")
	members.Use(middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin())
	members.Patch("/:id", memberHandler.HandleRequest)
	members.Put("/:id/role", memberHandler.UpdateRole)
	members.Delete("/:id", memberHandler.RemoveMember)

	// Content record routes
	achievements := router.Group("/achievements")
	achievements.Use(middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin())
	achievements.Put("/:id", contentHandler.UpdateAchievement)
	achievements.Delete("/:id", contentHandler.DeleteAchievement)

	resources := router.Group("/resources")
	resources.Use(middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin())
	resources.Put("/:id", contentHandler.UpdateResource)
	resources.Delete("/:id", contentHandler.DeleteResource)
}

// setupEventRoutes configures event routes
func setupEventRoutes(router fiber.Router, handler *handlers.EventHandler, cfg *config.Config) {
	events := router.Group("/events")

	// Public browsing, short-lived cache
	events.Get("/", middleware.CacheControl(1*time.Minute), handler.List)
	events.Get("/:id", middleware.CacheControl(1*time.Minute), handler.Get)

	// Event management
	events.Post("/", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), handler.Create)
	events.Put("/:id", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), handler.Update)
	events.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), handler.Delete)
	events.Get("/:id/registrations", middleware.AuthMiddleware(cfg), middleware.ManagerOrAdmin(), handler.ListRegistrations)

	// Registration (any authenticated user)
	events.Post("/:id/register", middleware.AuthMiddleware(cfg), handler.Register)
	events.Delete("/:id/register", middleware.AuthMiddleware(cfg), handler.Cancel)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())

	router.Get("/admin", middleware.AdminOrAbove(), handler.AdminDashboard)
	router.Get("/manager", middleware.RoleMiddleware(models.RoleClubManager), handler.ManagerDashboard)
	router.Get("/student", handler.StudentDashboard)
}
