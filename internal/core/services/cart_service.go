package services

import (
	"context"
	"errors"

	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
)

// CartService applies cart changes; the cart itself lives in the visitor session
type CartService struct {
	inventory repositories.InventoryRepository
	pricing   Pricing
}

// NewCartService creates a new cart service
func NewCartService(inventory repositories.InventoryRepository, pricing Pricing) *CartService {
	return &CartService{inventory: inventory, pricing: pricing}
}

// Add puts an Available copy into the cart
func (s *CartService) Add(ctx context.Context, cart domain.Cart, id int64) (domain.Cart, error) {
	book, err := s.inventory.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return cart, domain.ErrBookNotFound
	}
	if err != nil {
		return cart, err
	}
	if book.Status != string(domain.BookAvailable) {
		return cart, &domain.UnavailableError{Titles: []string{book.Title}}
	}
	return cart.Add(id), nil
}

// Remove drops a copy from the cart
func (s *CartService) Remove(cart domain.Cart, id int64) domain.Cart {
	return cart.Remove(id)
}

// Summary returns the count and total for the floating cart bar
func (s *CartService) Summary(cart domain.Cart) domain.CartSummary {
	return domain.CartSummary{
		Count: len(cart),
		Total: s.pricing.Total(len(cart)),
	}
}
