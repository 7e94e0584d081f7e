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
)

// FilterAll disables the delivery status filter
const FilterAll = "All"

// LogisticsService drives the delivery hub
type LogisticsService struct {
	rentals   repositories.RentalRepository
	inventory repositories.InventoryRepository
}

// NewLogisticsService creates a new logistics service
func NewLogisticsService(rentals repositories.RentalRepository, inventory repositories.InventoryRepository) *LogisticsService {
	return &LogisticsService{rentals: rentals, inventory: inventory}
}

// ListRentals lists rentals narrowed by delivery status; "" or All means every rental
func (s *LogisticsService) ListRentals(ctx context.Context, status string, offset, limit int) ([]*models.Rental, int64, error) {
	status = strings.TrimSpace(status)
	filter := repositories.RentalFilter{}
	if status != "" && !strings.EqualFold(status, FilterAll) {
		if !domain.DeliveryStatus(status).Valid() {
			return nil, 0, domain.Invalid(fmt.Sprintf("Unknown delivery status %q.", status))
		}
		filter.DeliveryStatus = status
	}
	return s.rentals.List(ctx, filter, offset, limit)
}

// UpdateDeliveryStatus moves an open rental along and keeps the copy's shelf status in step.
// Returned and Cancelled rentals are closed.
func (s *LogisticsService) UpdateDeliveryStatus(ctx context.Context, id int64, status string) (*models.Rental, error) {
	st := domain.DeliveryStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, domain.Invalid(fmt.Sprintf("Unknown delivery status %q.", status))
	}

	rental, err := s.rentals.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}

	if current := domain.DeliveryStatus(rental.DeliveryStatus); current.IsClosed() {
		return nil, domain.Invalid(fmt.Sprintf("Rental #%d is already %s and can no longer change.", id, current))
	}

	if err := s.rentals.UpdateDeliveryStatus(ctx, id, string(st)); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}
	rental.DeliveryStatus = string(st)

	if shelf, ok := st.ShelfStatus(); ok {
		if err := s.inventory.UpdateStatus(ctx, rental.BookID, string(shelf)); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("update book status: %w", err)
		}
		if rental.Book != nil {
			rental.Book.Status = string(shelf)
		}
	}

	log := logger.Get()
	log.Info().Int64("rental_id", id).Str("status", string(st)).Msg("delivery status updated")
	return rental, nil
}

// MarkPaid records payment confirmation
func (s *LogisticsService) MarkPaid(ctx context.Context, id int64, paid bool) error {
	err := s.rentals.MarkPaid(ctx, id, paid)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrRentalNotFound
	}
	return err
}
