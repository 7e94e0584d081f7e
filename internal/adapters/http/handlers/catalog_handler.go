package handlers

import (
	"strconv"

	"nova-library/internal/core/domain"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/pagination"
	"nova-library/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the catalog as JSON
type CatalogHandler struct {
	catalogService *services.CatalogService
	cartService    *services.CartService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService, cartService *services.CartService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		cartService:    cartService,
	}
}

// ListBooks returns the filtered catalog
// @Summary List books
// @Description Catalog filtered by title/author substring and genre
// @Tags Catalog
// @Produce json
// @Param q query string false "Title or author contains"
// @Param genre query string false "Genre, or All Categories"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *CatalogHandler) ListBooks(c *fiber.Ctx) error {
	books, err := h.catalogService.Filter(c.Context(), c.Query("q"), c.Query("genre"))
	if err != nil {
		return response.InternalServerError(c, userMessage(err))
	}

	params := pagination.GetParams(c)
	start, end := params.Window(len(books))
	return response.Paginated(c, "Books retrieved successfully", books[start:end], params, int64(len(books)))
}

// GetBook returns one copy
// @Summary Get book
// @Description One catalog copy with its shelf status and rental price
// @Tags Catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *CatalogHandler) GetBook(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.catalogService.Get(c.Context(), id)
	if err != nil {
		return response.Error(c, statusFor(err), userMessage(err))
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book":  book,
		"price": h.cartService.Summary(domain.Cart{book.ID}).Total,
	})
}
