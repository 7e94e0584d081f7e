package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"nova-library/internal/adapters/http/middleware"
	"nova-library/internal/adapters/http/views"
	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/adapters/persistence/store"
	"nova-library/internal/adapters/session"
	"nova-library/internal/config"
	"nova-library/internal/pkg/money"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPIN = "NovaAdmin2026"

type harness struct {
	app     *fiber.App
	store   *store.Store
	cookies map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "routes.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{AppMode: "dev"}
	cfg.Storefront = config.StorefrontConfig{
		PublicBaseURL:    "https://aicon-library.streamlit.app",
		RentalPrice:      1500,
		CurrencySymbol:   "₦",
		RentalDays:       7,
		PaymentLink:      "https://selar.com/d20is52cl1",
		PlaceholderCover: "https://via.placeholder.com/200x300?text=No+Cover",
	}
	cfg.Staff = config.StaffConfig{AdminPIN: testPIN, JWTSecret: "test_secret", AccessTokenMins: 30}

	engine := views.New(func(amount int64) string { return money.Format(amount, "₦") }, false)
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	st := store.FromDB(db)
	require.NoError(t, Setup(app, Dependencies{
		Config:   cfg,
		Store:    st,
		Sessions: session.NewStore(nil, session.Options{}),
	}))

	return &harness{app: app, store: st, cookies: map[string]string{}}
}

func (h *harness) book(t *testing.T, title, status string) *models.Book {
	t.Helper()
	b := &models.Book{Title: title, Author: "Nick Arnold", Genre: "Science & History", Condition: "Good", Status: status}
	require.NoError(t, h.store.Inventory.Create(context.Background(), b))
	return b
}

// do sends a request carrying the cookies collected so far
func (h *harness) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	for name, value := range h.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(h.cookies, ck.Name)
			continue
		}
		h.cookies[ck.Name] = ck.Value
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (h *harness) get(t *testing.T, target string) (*http.Response, string) {
	return h.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (h *harness) post(t *testing.T, target string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(t, req)
}

func (h *harness) api(t *testing.T, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func (h *harness) staffToken(t *testing.T) string {
	t.Helper()
	resp, body := h.api(t, http.MethodPost, "/api/v1/staff/token", "", map[string]string{"pin": testPIN})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func (h *harness) rentals(t *testing.T) []*models.Rental {
	t.Helper()
	rentals, _, err := h.store.Rentals.List(context.Background(), repositories.RentalFilter{}, 0, 100)
	require.NoError(t, err)
	return rentals
}

func TestIndex_ShowsCollection(t *testing.T) {
	h := newHarness(t)
	h.book(t, "Ugly Bugs", "Available")
	h.book(t, "Bulging Brains", "Rented")

	resp, body := h.get(t, "/")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, "The Nova Collection")
	assert.Contains(t, body, "Ugly Bugs")
	assert.Contains(t, body, "Bulging Brains")

	_, body = h.get(t, "/?q=brains")
	assert.Contains(t, body, "Bulging Brains")
	assert.NotContains(t, body, "Ugly Bugs")
}

func TestIndex_StaffTabsHiddenWhenLocked(t *testing.T) {
	h := newHarness(t)

	_, body := h.get(t, "/?tab=delivery")
	assert.NotContains(t, body, "Staff Mode Active")
	assert.Contains(t, body, "The Nova Collection")
}

func TestIndex_ExpressCheckout(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "Ugly Bugs", "Available")

	_, body := h.get(t, fmt.Sprintf("/?id=%d", b.ID))
	assert.Contains(t, body, "Nova Secure Checkout")
	assert.Contains(t, body, "Ugly Bugs")
	assert.Contains(t, body, "₦1,500.00")

	_, body = h.get(t, "/?id=abc")
	assert.Contains(t, body, "Book(s) not found.")
	_, body = h.get(t, "/?id=999")
	assert.Contains(t, body, "Book(s) not found.")
}

func TestCartCheckoutAndPickup(t *testing.T) {
	h := newHarness(t)
	a := h.book(t, "Ugly Bugs", "Available")
	b := h.book(t, "Deadly Diseases", "Available")

	for _, id := range []int64{a.ID, b.ID} {
		resp, _ := h.post(t, "/cart/add", url.Values{"id": {fmt.Sprint(id)}})
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	}

	_, body := h.get(t, "/")
	assert.Contains(t, body, "2 books selected")
	assert.Contains(t, body, "₦3,000.00")

	_, body = h.get(t, "/?checkout=true")
	assert.Contains(t, body, "Nova Secure Checkout")
	assert.Contains(t, body, "Deadly Diseases")

	ids := fmt.Sprintf("%d,%d", a.ID, b.ID)
	resp, body := h.post(t, "/checkout/pickup", url.Values{"ids": {ids}, "name": {"Tunde"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Reservation logged! Books are secured for you.")
	assert.Contains(t, body, "adjust the quantity to <strong>2</strong>")
	assert.Contains(t, body, "https://selar.com/d20is52cl1")

	rentals := h.rentals(t)
	require.Len(t, rentals, 2)
	for _, r := range rentals {
		assert.Equal(t, "Pickup by Tunde", r.DeliveryType)
		assert.Equal(t, "Awaiting Pickup", r.DeliveryStatus)
	}

	// cart was emptied by the reservation
	_, body = h.get(t, "/")
	assert.NotContains(t, body, "books selected")
}

func TestPickupRequiresName(t *testing.T) {
	h := newHarness(t)
	a := h.book(t, "Ugly Bugs", "Available")

	resp, body := h.post(t, "/checkout/pickup", url.Values{"ids": {fmt.Sprint(a.ID)}, "name": {"  "}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Please provide a name for the pickup reservation.")
	assert.Empty(t, h.rentals(t))
}

func TestDeliveryRequiresRegisteredEmail(t *testing.T) {
	h := newHarness(t)
	a := h.book(t, "Ugly Bugs", "Available")

	resp, body := h.post(t, "/checkout/delivery", url.Values{"ids": {fmt.Sprint(a.ID)}, "email": {"nobody@example.com"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Email not found. Are you registered for the Elite tier?")

	resp, _ = h.post(t, "/members", url.Values{
		"full_name": {"Ada Obi"},
		"email":     {"nobody@example.com"},
		"phone":     {"0800"},
		"address":   {"12 Allen Ave"},
		"tier":      {"Elite"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, body = h.post(t, "/checkout/delivery", url.Values{"ids": {fmt.Sprint(a.ID)}, "email": {"Nobody@Example.com"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Verified, Ada Obi! Ledger updated.")
}

func TestStaffUnlock(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.post(t, "/staff/unlock", url.Values{"pin": {"guess"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	_, body := h.get(t, "/")
	assert.Contains(t, body, "Invalid Credentials")
	assert.NotContains(t, body, "Staff Mode Active")

	resp, _ = h.post(t, "/staff/unlock", url.Values{"pin": {testPIN}})
	assert.Equal(t, "/?tab=admin", resp.Header.Get("Location"))
	assert.NotEmpty(t, h.cookies[middleware.StaffCookie])

	_, body = h.get(t, "/?tab=admin")
	assert.Contains(t, body, "Staff Mode Active")

	h.post(t, "/staff/lock", nil)
	_, body = h.get(t, "/?tab=admin")
	assert.NotContains(t, body, "Staff Mode Active")
}

func TestAdminPages_RedirectWhenLocked(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.post(t, "/admin/inventory", url.Values{"title": {"T"}, "author": {"A"}, "genre": {"G"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?tab=admin", resp.Header.Get("Location"))

	books, err := h.store.Inventory.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAdminPages_AcquireWhenUnlocked(t *testing.T) {
	h := newHarness(t)
	h.post(t, "/staff/unlock", url.Values{"pin": {testPIN}})

	resp, _ := h.post(t, "/admin/inventory", url.Values{
		"title":  {"Evolve or Die"},
		"author": {"Nick Arnold"},
		"genre":  {"Science & History"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	books, err := h.store.Inventory.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Available", books[0].Status)

	resp, _ = h.get(t, fmt.Sprintf("/admin/inventory/%d/qr.png", books[0].ID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestAPI_Books(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "Ugly Bugs", "Available")

	resp, body := h.api(t, http.MethodGet, "/api/v1/books", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := body["data"].(map[string]interface{})
	assert.Len(t, page["data"], 1)

	resp, _ = h.api(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", b.ID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = h.api(t, http.MethodGet, "/api/v1/books/999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAPI_AdminRequiresToken(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "Ugly Bugs", "Available")

	resp, _ := h.api(t, http.MethodGet, "/api/v1/admin/rentals", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = h.api(t, http.MethodPost, "/api/v1/staff/token", "", map[string]string{"pin": "guess"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := h.staffToken(t)
	resp, _ = h.api(t, http.MethodGet, "/api/v1/admin/rentals", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = h.api(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/books/%d/status", b.ID), token, map[string]string{"status": "Rented"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	got, err := h.store.Inventory.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rented", got.Status)

	resp, _ = h.api(t, http.MethodGet, "/api/v1/admin/dashboard", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPI_RegisterMember(t *testing.T) {
	h := newHarness(t)
	req := map[string]string{
		"full_name": "Ada Obi",
		"email":     "ada@example.com",
		"phone":     "0800",
		"address":   "12 Allen Ave",
		"tier":      "Elite",
	}

	resp, _ := h.api(t, http.MethodPost, "/api/v1/members", "", req)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := h.api(t, http.MethodPost, "/api/v1/members", "", req)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "This email is already registered.", body["error"])
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	resp, body := h.api(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, fmt.Sprint(body), "memory")
}

func (h *harness) rental(t *testing.T, bookID int64, status string) *models.Rental {
	t.Helper()
	r := &models.Rental{BookID: bookID, DueDate: "2026-10-22", DeliveryType: "Home Delivery", DeliveryStatus: status}
	require.NoError(t, h.store.Rentals.Create(context.Background(), r))
	return r
}

func TestDeliveryHub_PagesThroughRentals(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "Ugly Bugs", "Reserved")
	for i := 0; i < 25; i++ {
		h.rental(t, b.ID, "Pending Verification")
	}
	h.post(t, "/staff/unlock", url.Values{"pin": {testPIN}})

	_, body := h.get(t, "/?tab=delivery")
	assert.Contains(t, body, "25 rental(s)")
	assert.Equal(t, 20, strings.Count(body, `/status"`))
	assert.Contains(t, body, "Page 1 of 2")
	assert.Contains(t, body, "status=All&amp;page=2")

	_, body = h.get(t, "/?tab=delivery&status=All&page=2")
	assert.Equal(t, 5, strings.Count(body, `/status"`))
	assert.Contains(t, body, "Page 2 of 2")
	assert.Contains(t, body, "page=1")
}

func TestDeliveryHub_ClosedRentalCannotReopen(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "Ugly Bugs", "Rented")
	old := h.rental(t, b.ID, "Cancelled")
	h.rental(t, b.ID, "Dispatched")
	h.post(t, "/staff/unlock", url.Values{"pin": {testPIN}})

	resp, _ := h.post(t, fmt.Sprintf("/admin/rentals/%d/status", old.ID), url.Values{"status": {"Returned"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	_, body := h.get(t, "/?tab=delivery")
	assert.Contains(t, body, "can no longer change")

	got, err := h.store.Inventory.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rented", got.Status)
}

func TestAdminPages_BadIDIsInvalidRequest(t *testing.T) {
	h := newHarness(t)
	h.post(t, "/staff/unlock", url.Values{"pin": {testPIN}})

	resp, _ := h.post(t, "/admin/rentals/abc/status", url.Values{"status": {"Dispatched"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	_, body := h.get(t, "/?tab=delivery")
	assert.Contains(t, body, "Invalid request.")
	assert.NotContains(t, body, "Database connection error")
}

func TestAPI_UnknownRoute(t *testing.T) {
	h := newHarness(t)

	resp, body := h.api(t, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found", body["error"])
}
