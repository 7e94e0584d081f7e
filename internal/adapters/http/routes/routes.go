package routes

import (
	"nova-library/internal/adapters/http/handlers"
	"nova-library/internal/adapters/http/middleware"
	"nova-library/internal/adapters/persistence/store"
	"nova-library/internal/config"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
)

// Dependencies are the adapters the routes are built on
type Dependencies struct {
	Config   *config.Config
	Store    *store.Store
	Sessions *session.Store
	// Storage backs the rate limiters; nil keeps them in memory
	Storage fiber.Storage
	// SessionHealth is nil when sessions live in memory
	SessionHealth handlers.Checker
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) error {
	cfg := deps.Config
	st := deps.Store

	pricing := services.Pricing{
		PerBook: cfg.Storefront.RentalPrice,
		Symbol:  cfg.Storefront.CurrencySymbol,
	}

	// Initialize services
	catalogService := services.NewCatalogService(st.Inventory, cfg.Storefront.PlaceholderCover)
	cartService := services.NewCartService(st.Inventory, pricing)
	checkoutService := services.NewCheckoutService(st.Inventory, st.Members, st.Rentals, services.CheckoutConfig{
		Pricing:     pricing,
		RentalDays:  cfg.Storefront.RentalDays,
		PaymentLink: cfg.Storefront.PaymentLink,
	})
	memberService := services.NewMemberService(st.Members)
	inventoryService := services.NewInventoryService(st.Inventory, cfg.Storefront.PublicBaseURL)
	logisticsService := services.NewLogisticsService(st.Rentals, st.Inventory)
	dashboardService := services.NewDashboardService(st.Inventory, st.Members, st.Rentals)
	staffService, err := services.NewStaffService(cfg.Staff.AdminPIN, cfg.Staff.JWTSecret, cfg.Staff.AccessTokenMins)
	if err != nil {
		return err
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(st, deps.SessionHealth)
	storefrontHandler := handlers.NewStorefrontHandler(
		catalogService,
		cartService,
		checkoutService,
		dashboardService,
		logisticsService,
		deps.Sessions,
	)
	memberHandler := handlers.NewMemberHandler(memberService, deps.Sessions)
	staffHandler := handlers.NewStaffHandler(staffService, deps.Sessions, cfg)
	adminHandler := handlers.NewAdminHandler(inventoryService, logisticsService, dashboardService, deps.Sessions)
	catalogHandler := handlers.NewCatalogHandler(catalogService, cartService)

	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	setupStorefrontRoutes(app, storefrontHandler, memberHandler, staffHandler, deps.Storage, cfg)
	setupAdminPages(app.Group("/admin"), adminHandler, cfg)

	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, catalogHandler, memberHandler, staffHandler, adminHandler, deps.Storage, cfg)
	return nil
}

// setupStorefrontRoutes configures the visitor pages and forms
func setupStorefrontRoutes(
	app *fiber.App,
	storefrontHandler *handlers.StorefrontHandler,
	memberHandler *handlers.MemberHandler,
	staffHandler *handlers.StaffHandler,
	storage fiber.Storage,
	cfg *config.Config,
) {
	pages := app.Group("", middleware.NoCacheHeaders(), middleware.OptionalStaff(cfg.Staff.JWTSecret))

	pages.Get("/", storefrontHandler.Index)

	pages.Post("/cart/add", storefrontHandler.AddToCart)
	pages.Post("/cart/remove", storefrontHandler.RemoveFromCart)
	pages.Post("/cart/clear", storefrontHandler.ClearCart)

	pages.Post("/checkout/pickup", storefrontHandler.ReservePickup)
	pages.Post("/checkout/delivery", storefrontHandler.ReserveDelivery)

	pages.Post("/members", memberHandler.SignUp)

	pages.Post("/staff/unlock", middleware.UnlockRateLimiter(storage), staffHandler.Unlock)
	pages.Post("/staff/lock", staffHandler.Lock)
}

// setupAdminPages configures the staff-only dashboard forms
func setupAdminPages(router fiber.Router, adminHandler *handlers.AdminHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders(), middleware.StaffPages(cfg.Staff.JWTSecret))

	router.Post("/inventory", adminHandler.Acquire)
	router.Post("/inventory/:id/status", adminHandler.SetBookStatus)
	router.Get("/inventory/:id/qr.png", adminHandler.BookQR)
	router.Post("/rentals/:id/status", adminHandler.SetRentalStatus)
	router.Post("/rentals/:id/paid", adminHandler.SetRentalPaid)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	memberHandler *handlers.MemberHandler,
	staffHandler *handlers.StaffHandler,
	adminHandler *handlers.AdminHandler,
	storage fiber.Storage,
	cfg *config.Config,
) {
	router.Get("/", healthHandler.APIInfo)

	// Catalog routes (public)
	router.Get("/books", catalogHandler.ListBooks)
	router.Get("/books/:id", catalogHandler.GetBook)

	router.Post("/members", memberHandler.Register)
	router.Post("/staff/token", middleware.UnlockRateLimiter(storage), staffHandler.Token)

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(middleware.StaffAuth(cfg.Staff.JWTSecret))
	admin.Use(middleware.AdminOnly())

	admin.Get("/dashboard", adminHandler.GetDashboard)
	admin.Get("/members", memberHandler.List)
	admin.Post("/books", adminHandler.CreateBook)
	admin.Patch("/books/:id/status", adminHandler.UpdateBookStatus)
	admin.Get("/books/:id/qr.png", adminHandler.BookQR)
	admin.Get("/rentals", adminHandler.ListRentals)
	admin.Patch("/rentals/:id/status", adminHandler.UpdateRentalStatus)
	admin.Patch("/rentals/:id/paid", adminHandler.UpdateRentalPaid)

	router.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}
