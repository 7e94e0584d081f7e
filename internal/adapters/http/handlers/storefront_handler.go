package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"nova-library/internal/adapters/http/middleware"
	"nova-library/internal/adapters/http/views"
	"nova-library/internal/core/domain"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/logger"
	"nova-library/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Dashboard tabs
const (
	TabCollection = "collection"
	TabElite      = "elite"
	TabDelivery   = "delivery"
	TabAdmin      = "admin"
)

// StorefrontHandler renders the visitor pages and drives cart and checkout
type StorefrontHandler struct {
	catalog   *services.CatalogService
	carts     *services.CartService
	checkout  *services.CheckoutService
	dashboard *services.DashboardService
	logistics *services.LogisticsService
	sessions  *session.Store
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(
	catalog *services.CatalogService,
	carts *services.CartService,
	checkout *services.CheckoutService,
	dashboard *services.DashboardService,
	logistics *services.LogisticsService,
	sessions *session.Store,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:   catalog,
		carts:     carts,
		checkout:  checkout,
		dashboard: dashboard,
		logistics: logistics,
		sessions:  sessions,
	}
}

// Index is the traffic controller: ?id= opens an express checkout for one
// copy, ?checkout=true checks out the cart, anything else shows the tabs.
func (h *StorefrontHandler) Index(c *fiber.Ctx) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	cart := v.cart()
	flash, failure := v.takeMessages()

	var ids []int64
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return h.notice(c, MsgBooksNotFound)
		}
		ids = []int64{id}
	} else if c.Query("checkout") == "true" && len(cart) > 0 {
		ids = cart
	}

	if len(ids) > 0 {
		return h.renderCheckout(c, ids, failure)
	}
	return h.renderDashboard(c, cart, flash, failure)
}

func (h *StorefrontHandler) renderCheckout(c *fiber.Ctx, ids []int64, failure string) error {
	quote, err := h.checkout.Quote(c.Context(), ids)
	if err != nil {
		return h.notice(c, userMessage(err))
	}

	if failure == "" && !quote.CanProceed() {
		failure = userMessage(&domain.UnavailableError{Titles: quote.Unavailable})
	}

	return c.Render("checkout", fiber.Map{
		"Title": "Nova Secure Checkout",
		"Error": failure,
		"Quote": quote,
		"IDs":   domain.Cart(ids).String(),
	}, views.Layout)
}

func (h *StorefrontHandler) renderDashboard(c *fiber.Ctx, cart domain.Cart, flash, failure string) error {
	isStaff := middleware.IsStaff(c)
	tab := c.Query("tab", TabCollection)
	switch tab {
	case TabCollection, TabElite:
	case TabDelivery, TabAdmin:
		if !isStaff {
			tab = TabCollection
		}
	default:
		tab = TabCollection
	}

	data := fiber.Map{
		"Title":   "The Nova Collection",
		"Tab":     tab,
		"IsStaff": isStaff,
		"Flash":   flash,
		"Error":   failure,
		"Cart":    h.carts.Summary(cart),
	}

	switch tab {
	case TabCollection:
		view, err := h.catalog.Browse(c.Context(), c.Query("q"), c.Query("genre"))
		if err != nil {
			data["Error"] = userMessage(err)
			view = &services.CatalogView{Genre: domain.AllCategories}
		}
		data["Catalog"] = view

	case TabDelivery:
		params := pagination.GetParams(c)
		filter := c.Query("status", services.FilterAll)
		rentals, total, err := h.logistics.ListRentals(c.Context(), filter, params.Offset, params.Limit)
		if err != nil {
			data["Error"] = userMessage(err)
		}
		options := []string{services.FilterAll}
		for _, st := range domain.DeliveryStatuses {
			options = append(options, string(st))
		}
		data["Rentals"] = rentals
		data["RentalTotal"] = total
		data["RentalPage"] = pagination.GetMeta(params, total)
		data["StatusFilter"] = filter
		data["StatusOptions"] = options
		data["DeliveryStatuses"] = domain.DeliveryStatuses

	case TabAdmin:
		dash, err := h.dashboard.GetAdminDashboard(c.Context())
		if err != nil {
			data["Error"] = userMessage(err)
		}
		data["Dashboard"] = dash
		data["BookStatuses"] = domain.BookStatuses
	}

	return c.Render("index", data, views.Layout)
}

func (h *StorefrontHandler) notice(c *fiber.Ctx, message string) error {
	return c.Render("notice", fiber.Map{
		"Title": "Nova Secure Checkout",
		"Error": message,
	}, views.Layout)
}

// AddToCart puts one Available copy in the visitor's cart
func (h *StorefrontHandler) AddToCart(c *fiber.Ctx) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		v.fail(MsgBooksNotFound)
		return c.Redirect(backTo(c, "/"), fiber.StatusSeeOther)
	}

	cart, err := h.carts.Add(c.Context(), v.cart(), id)
	switch {
	case errors.Is(err, domain.ErrBookUnavailable):
		v.fail("That copy is no longer available.")
	case err != nil:
		v.fail(userMessage(err))
	default:
		v.setCart(cart)
	}
	return c.Redirect(backTo(c, "/"), fiber.StatusSeeOther)
}

// RemoveFromCart drops one copy from the cart
func (h *StorefrontHandler) RemoveFromCart(c *fiber.Ctx) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	if id, err := strconv.ParseInt(c.FormValue("id"), 10, 64); err == nil {
		v.setCart(h.carts.Remove(v.cart(), id))
	}
	return c.Redirect(backTo(c, "/"), fiber.StatusSeeOther)
}

// ClearCart empties the cart
func (h *StorefrontHandler) ClearCart(c *fiber.Ctx) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	v.setCart(nil)
	return c.Redirect(backTo(c, "/"), fiber.StatusSeeOther)
}

// ReservePickup reserves the selection for collection at the desk
func (h *StorefrontHandler) ReservePickup(c *fiber.Ctx) error {
	ids := domain.ParseCart(c.FormValue("ids"))
	res, err := h.checkout.ReserveForPickup(c.Context(), ids, c.FormValue("name"))
	if err != nil {
		return h.checkoutFailed(c, ids, err)
	}
	return h.reserved(c, res, MsgPickupReserved)
}

// ReserveDelivery reserves the selection for an Elite member's home delivery
func (h *StorefrontHandler) ReserveDelivery(c *fiber.Ctx) error {
	ids := domain.ParseCart(c.FormValue("ids"))
	res, err := h.checkout.ReserveForDelivery(c.Context(), ids, c.FormValue("email"))
	if err != nil {
		return h.checkoutFailed(c, ids, err)
	}
	return h.reserved(c, res, fmt.Sprintf("Verified, %s! Ledger updated.", res.Member.FullName))
}

func (h *StorefrontHandler) reserved(c *fiber.Ctx, res *services.Reservation, message string) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	v.setCart(nil)
	v.save()

	return c.Render("reserved", fiber.Map{
		"Title":       "Reservation Confirmed",
		"Message":     message,
		"Reservation": res,
	}, views.Layout)
}

func (h *StorefrontHandler) checkoutFailed(c *fiber.Ctx, ids []int64, err error) error {
	if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrMemberNotFound) {
		log := logger.Get()
		log.Warn().Err(err).Str("ids", domain.Cart(ids).String()).Msg("checkout failed")
	}
	if len(ids) == 0 {
		return h.notice(c, MsgBooksNotFound)
	}

	c.Status(fiber.StatusUnprocessableEntity)
	return h.renderCheckout(c, ids, userMessage(err))
}
