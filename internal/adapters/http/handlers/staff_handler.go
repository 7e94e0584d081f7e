package handlers

import (
	"time"

	"nova-library/internal/adapters/http/middleware"
	"nova-library/internal/config"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/logger"
	"nova-library/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// StaffHandler handles the staff PIN unlock
type StaffHandler struct {
	staffService *services.StaffService
	sessions     *session.Store
	cfg          *config.Config
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *services.StaffService, sessions *session.Store, cfg *config.Config) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		sessions:     sessions,
		cfg:          cfg,
	}
}

// UnlockRequest represents the staff PIN form
type UnlockRequest struct {
	PIN string `json:"pin" form:"pin"`
}

// Unlock checks the PIN from the sidebar form and sets the staff cookie
func (h *StaffHandler) Unlock(c *fiber.Ctx) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	var req UnlockRequest
	_ = c.BodyParser(&req)

	token, err := h.staffService.Unlock(req.PIN)
	if err != nil {
		log := logger.Get()
		log.Warn().Str("ip", c.IP()).Msg("staff unlock rejected")
		v.fail(userMessage(err))
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	h.setStaffCookie(c, token)
	return c.Redirect("/?tab=admin", fiber.StatusSeeOther)
}

// Lock clears the staff cookie
func (h *StaffHandler) Lock(c *fiber.Ctx) error {
	h.clearStaffCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Token exchanges the PIN for a bearer token
// @Summary Staff token
// @Description Exchange the admin PIN for a staff bearer token
// @Tags Staff
// @Accept json
// @Produce json
// @Param body body UnlockRequest true "Admin PIN"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /staff/token [post]
func (h *StaffHandler) Token(c *fiber.Ctx) error {
	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.staffService.Unlock(req.PIN)
	if err != nil {
		return response.Unauthorized(c, MsgInvalidPIN)
	}

	h.setStaffCookie(c, token)
	return response.Success(c, "Staff mode active", fiber.Map{
		"access_token": token,
		"expires_in":   h.staffService.ExpiryMinutes() * 60,
	})
}

func (h *StaffHandler) setStaffCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.StaffCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.staffService.ExpiryMinutes() * 60,
		Secure:   h.cfg.Session.CookieSecure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (h *StaffHandler) clearStaffCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.StaffCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Session.CookieSecure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
