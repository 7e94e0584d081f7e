package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nova-library/internal/adapters/http/handlers"
	"nova-library/internal/adapters/http/middleware"
	"nova-library/internal/adapters/http/routes"
	"nova-library/internal/adapters/http/views"
	"nova-library/internal/adapters/persistence/store"
	"nova-library/internal/adapters/session"
	"nova-library/internal/config"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/logger"
	"nova-library/internal/pkg/money"

	"github.com/gofiber/fiber/v2"

	_ "nova-library/docs" // Swagger docs
)

// @title Nova Library API
// @version 1.0
// @description Catalog, membership and staff logistics API of the Nova Digital Library

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open table store")
	}
	defer st.Close()

	if cfg.Store.SeedOnStart {
		if err := config.SeedCatalogIfEmpty(context.Background(), st.Inventory, cfg.Storefront.PublicBaseURL, os.Stdout); err != nil {
			log.Warn().Err(err).Msg("failed to seed opening catalog")
		}
	}

	// Session storage: Redis when configured, memory otherwise
	var (
		storage       fiber.Storage
		sessionHealth handlers.Checker
	)
	if cfg.Session.RedisAddr != "" {
		redisStorage, err := session.NewRedisStorage(session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Session.RedisAddr).Msg("failed to connect to redis")
		}
		defer redisStorage.Close()
		storage = redisStorage
		sessionHealth = redisStorage
	}
	sessions := session.NewStore(storage, session.Options{
		Expiration:   cfg.Session.Expiration,
		CookieSecure: cfg.Session.CookieSecure,
	})

	sweeper := services.NewHoldSweeper(st.Rentals, st.Inventory, cfg.Sweeper.Hold)
	if err := sweeper.Start(cfg.Sweeper.Schedule); err != nil {
		log.Fatal().Err(err).Msg("failed to start hold sweeper")
	}
	defer sweeper.Stop()

	engine := views.New(func(amount int64) string {
		return money.Format(amount, cfg.Storefront.CurrencySymbol)
	}, cfg.IsDev())

	app := fiber.New(fiber.Config{
		AppName:      "Nova Library",
		Views:        engine,
		ErrorHandler: middleware.CustomErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	middleware.Setup(app, cfg, storage)

	if err := routes.Setup(app, routes.Dependencies{
		Config:        cfg,
		Store:         st,
		Sessions:      sessions,
		Storage:       storage,
		SessionHealth: sessionHealth,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	go gracefulShutdown(app)

	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	log := logger.Get()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
