package handlers

import (
	"context"
	"time"

	"nova-library/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Checker reports whether a backing service is reachable
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store    Checker
	sessions Checker
}

// NewHealthHandler creates a new health handler. sessions may be nil.
func NewHealthHandler(store, sessions Checker) *HealthHandler {
	return &HealthHandler{store: store, sessions: sessions}
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, table store and session store health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	status := fiber.StatusOK
	storeStatus := "healthy"
	if err := h.store.HealthCheck(ctx); err != nil {
		storeStatus = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	sessionStatus := "memory"
	if h.sessions != nil {
		sessionStatus = "healthy"
		if err := h.sessions.HealthCheck(ctx); err != nil {
			sessionStatus = "unhealthy"
			status = fiber.StatusServiceUnavailable
		}
	}

	mode := ""
	if config.AppConfig != nil {
		mode = config.AppConfig.AppMode
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"mode":   mode,
		"checks": fiber.Map{
			"api":      "healthy",
			"store":    storeStatus,
			"sessions": sessionStatus,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Nova Library API v1",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}
