package handlers

import (
	"fmt"
	"strconv"

	"nova-library/internal/core/domain"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/pagination"
	"nova-library/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AdminHandler handles acquisitions, shelf status and logistics
type AdminHandler struct {
	inventoryService *services.InventoryService
	logisticsService *services.LogisticsService
	dashboardService *services.DashboardService
	sessions         *session.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	inventoryService *services.InventoryService,
	logisticsService *services.LogisticsService,
	dashboardService *services.DashboardService,
	sessions *session.Store,
) *AdminHandler {
	return &AdminHandler{
		inventoryService: inventoryService,
		logisticsService: logisticsService,
		dashboardService: dashboardService,
		sessions:         sessions,
	}
}

// AcquireRequest represents the acquisition form
type AcquireRequest struct {
	Title     string `json:"title" form:"title"`
	Author    string `json:"author" form:"author"`
	Genre     string `json:"genre" form:"genre"`
	Condition string `json:"condition" form:"condition"`
	CoverURL  string `json:"cover_url" form:"cover_url"`
}

func (r AcquireRequest) input() services.AcquireInput {
	return services.AcquireInput{
		Title:     r.Title,
		Author:    r.Author,
		Genre:     r.Genre,
		Condition: r.Condition,
		CoverURL:  r.CoverURL,
	}
}

// StatusRequest carries a new status and an optional paid flag
type StatusRequest struct {
	Status string `json:"status" form:"status"`
	Paid   bool   `json:"paid" form:"paid"`
}

// errInvalidRequest replaces parse errors of the admin forms
var errInvalidRequest = domain.Invalid("Invalid request.")

func paramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// after runs one admin form action and redirects back to tab with its outcome
func (h *AdminHandler) after(c *fiber.Ctx, tab string, action func() (string, error)) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	msg, err := action()
	if err != nil {
		v.fail(userMessage(err))
	} else {
		v.flash(msg)
	}
	return c.Redirect(backTo(c, "/?tab="+tab), fiber.StatusSeeOther)
}

// Acquire handles the acquisition form
func (h *AdminHandler) Acquire(c *fiber.Ctx) error {
	return h.after(c, TabAdmin, func() (string, error) {
		var req AcquireRequest
		if err := c.BodyParser(&req); err != nil {
			return "", errInvalidRequest
		}
		book, err := h.inventoryService.Acquire(c.Context(), req.input())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("'%s' added to the collection (#%d). Download its QR label below.", book.Title, book.ID), nil
	})
}

// SetBookStatus handles the shelf status form
func (h *AdminHandler) SetBookStatus(c *fiber.Ctx) error {
	return h.after(c, TabAdmin, func() (string, error) {
		id, err := paramID(c)
		if err != nil {
			return "", errInvalidRequest
		}
		status := c.FormValue("status")
		if err := h.inventoryService.SetStatus(c.Context(), id, status); err != nil {
			return "", err
		}
		return fmt.Sprintf("Book #%d marked %s.", id, status), nil
	})
}

// SetRentalStatus handles the delivery hub status form
func (h *AdminHandler) SetRentalStatus(c *fiber.Ctx) error {
	return h.after(c, TabDelivery, func() (string, error) {
		id, err := paramID(c)
		if err != nil {
			return "", errInvalidRequest
		}
		rental, err := h.logisticsService.UpdateDeliveryStatus(c.Context(), id, c.FormValue("status"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Rental #%d is now %s.", rental.ID, rental.DeliveryStatus), nil
	})
}

// SetRentalPaid handles the delivery hub paid toggle
func (h *AdminHandler) SetRentalPaid(c *fiber.Ctx) error {
	return h.after(c, TabDelivery, func() (string, error) {
		id, err := paramID(c)
		if err != nil {
			return "", errInvalidRequest
		}
		paid := c.FormValue("paid", "true") == "true"
		if err := h.logisticsService.MarkPaid(c.Context(), id, paid); err != nil {
			return "", err
		}
		if paid {
			return fmt.Sprintf("Rental #%d marked paid.", id), nil
		}
		return fmt.Sprintf("Rental #%d marked unpaid.", id), nil
	})
}

// BookQR downloads the checkout QR label of a copy
// @Summary Book QR label
// @Description PNG QR code linking to the express checkout of one copy (Admin only)
// @Tags Admin
// @Produce png
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /admin/books/{id}/qr.png [get]
func (h *AdminHandler) BookQR(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	png, filename, err := h.inventoryService.QRCode(c.Context(), id)
	if err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(png)
}

// GetDashboard returns the staff overview
// @Summary Admin Dashboard
// @Description Book and rental counters plus recent members (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get admin dashboard")
	}
	return response.Success(c, "Admin dashboard retrieved successfully", data)
}

// CreateBook adds a copy to the collection
// @Summary Acquire book
// @Description Add a new Available copy to the collection (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AcquireRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/books [post]
func (h *AdminHandler) CreateBook(c *fiber.Ctx) error {
	var req AcquireRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.inventoryService.Acquire(c.Context(), req.input())
	if err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}
	return response.Created(c, "Book acquired successfully", book)
}

// UpdateBookStatus changes the shelf status of a copy
// @Summary Update book status
// @Description Set Available, Reserved or Rented (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/books/{id}/status [patch]
func (h *AdminHandler) UpdateBookStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.inventoryService.SetStatus(c.Context(), id, req.Status); err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}
	return response.Success(c, "Book status updated", fiber.Map{"id": id, "status": req.Status})
}

// ListRentals returns rentals narrowed by delivery status
// @Summary List rentals
// @Description Paginated rentals, optionally filtered by delivery status (Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Delivery status or All"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/rentals [get]
func (h *AdminHandler) ListRentals(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	rentals, total, err := h.logisticsService.ListRentals(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}
	return response.Paginated(c, "Rentals retrieved successfully", rentals, params, total)
}

// UpdateRentalStatus moves a rental along the delivery pipeline
// @Summary Update rental status
// @Description Set the delivery status; the copy's shelf status follows (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rental ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rentals/{id}/status [patch]
func (h *AdminHandler) UpdateRentalStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rental ID")
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rental, err := h.logisticsService.UpdateDeliveryStatus(c.Context(), id, req.Status)
	if err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}
	return response.Success(c, "Rental status updated", rental)
}

// UpdateRentalPaid records payment confirmation
// @Summary Mark rental paid
// @Description Set the paid flag of a rental (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rental ID"
// @Param body body StatusRequest true "Paid flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rentals/{id}/paid [patch]
func (h *AdminHandler) UpdateRentalPaid(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rental ID")
	}
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.logisticsService.MarkPaid(c.Context(), id, req.Paid); err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}
	return response.Success(c, "Rental payment updated", fiber.Map{"id": id, "is_paid": req.Paid})
}
