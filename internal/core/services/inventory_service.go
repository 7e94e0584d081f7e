package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/logger"
	"nova-library/internal/pkg/qrcode"
)

// DefaultCondition is recorded when an acquisition leaves condition blank
const DefaultCondition = "Good"

// InventoryService handles staff acquisitions and shelf status
type InventoryService struct {
	inventory     repositories.InventoryRepository
	publicBaseURL string
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventory repositories.InventoryRepository, publicBaseURL string) *InventoryService {
	return &InventoryService{
		inventory:     inventory,
		publicBaseURL: publicBaseURL,
	}
}

// AcquireInput is the acquisition form
type AcquireInput struct {
	Title     string `validate:"required,max=255"`
	Author    string `validate:"required,max=255"`
	Genre     string `validate:"required,max=100"`
	Condition string `validate:"max=50"`
	CoverURL  string `validate:"omitempty,url,max=500"`
}

var acquireLabels = map[string]string{
	"Title":     "a title",
	"Author":    "an author",
	"Genre":     "a genre",
	"Condition": "condition",
	"CoverURL":  "the cover",
}

// Acquire adds a new Available copy to the collection
func (s *InventoryService) Acquire(ctx context.Context, input AcquireInput) (*models.Book, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Genre = strings.TrimSpace(input.Genre)
	input.Condition = strings.TrimSpace(input.Condition)
	input.CoverURL = strings.TrimSpace(input.CoverURL)

	if err := validate.Struct(input); err != nil {
		return nil, validationError(err, acquireLabels)
	}
	if input.Condition == "" {
		input.Condition = DefaultCondition
	}

	book := &models.Book{
		Title:     input.Title,
		Author:    input.Author,
		Genre:     input.Genre,
		Condition: input.Condition,
		CoverURL:  input.CoverURL,
		Status:    string(domain.BookAvailable),
	}
	if err := s.inventory.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	log := logger.Get()
	log.Info().Int64("book_id", book.ID).Str("title", book.Title).Msg("book acquired")
	return book, nil
}

// SetStatus changes the shelf status of a copy
func (s *InventoryService) SetStatus(ctx context.Context, id int64, status string) error {
	st := domain.BookStatus(status)
	if !st.Valid() {
		return domain.Invalid(fmt.Sprintf("Unknown book status %q.", status))
	}
	err := s.inventory.UpdateStatus(ctx, id, string(st))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrBookNotFound
	}
	return err
}

// QRCode renders the checkout label of a copy and its download file name
func (s *InventoryService) QRCode(ctx context.Context, id int64) ([]byte, string, error) {
	book, err := s.inventory.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrBookNotFound
	}
	if err != nil {
		return nil, "", err
	}

	png, err := qrcode.PNG(qrcode.URLFor(s.publicBaseURL, book.ID), qrcode.DefaultSize)
	if err != nil {
		return nil, "", err
	}
	return png, qrcode.SafeFileName(book.Title), nil
}
