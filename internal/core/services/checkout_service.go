package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/logger"
)

// Visitor-facing checkout messages
const (
	MsgPickupNameRequired = "Please provide a name for the pickup reservation."
	MsgEmailRequired      = "Please enter your email."
)

// CheckoutConfig holds checkout settings
type CheckoutConfig struct {
	Pricing     Pricing
	RentalDays  int
	PaymentLink string
}

// CheckoutService turns a selection into pending rentals
type CheckoutService struct {
	inventory repositories.InventoryRepository
	members   repositories.MemberRepository
	rentals   repositories.RentalRepository
	cfg       CheckoutConfig
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	inventory repositories.InventoryRepository,
	members repositories.MemberRepository,
	rentals repositories.RentalRepository,
	cfg CheckoutConfig,
) *CheckoutService {
	if cfg.RentalDays < 1 {
		cfg.RentalDays = 7
	}
	return &CheckoutService{
		inventory: inventory,
		members:   members,
		rentals:   rentals,
		cfg:       cfg,
		now:       time.Now,
	}
}

// QuoteLine is one priced copy of a selection
type QuoteLine struct {
	Book  *models.Book `json:"book"`
	Price int64        `json:"price"`
}

// Quote is the priced selection shown before the delivery choice
type Quote struct {
	Lines       []QuoteLine `json:"lines"`
	Total       int64       `json:"total"`
	Unavailable []string    `json:"unavailable"`
}

// Books returns the copies of the quote
func (q *Quote) Books() []*models.Book {
	books := make([]*models.Book, len(q.Lines))
	for i, l := range q.Lines {
		books[i] = l.Book
	}
	return books
}

// CanProceed reports whether every copy is still Available
func (q *Quote) CanProceed() bool {
	return len(q.Unavailable) == 0
}

// Reservation is the outcome of a successful checkout
type Reservation struct {
	Method      domain.DeliveryMethod `json:"method"`
	Books       []*models.Book        `json:"books"`
	Rentals     []*models.Rental      `json:"rentals"`
	Member      *models.Member        `json:"member,omitempty"`
	GuestName   string                `json:"guest_name,omitempty"`
	Quantity    int                   `json:"quantity"`
	Total       int64                 `json:"total"`
	DueDate     string                `json:"due_date"`
	PaymentLink string                `json:"payment_link"`
}

// Pricing exposes the price table to renderers
func (s *CheckoutService) Pricing() Pricing {
	return s.cfg.Pricing
}

// Quote loads the selected copies, prices them and lists the unavailable titles
func (s *CheckoutService) Quote(ctx context.Context, ids []int64) (*Quote, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}

	books, err := s.inventory.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	if len(books) == 0 {
		return nil, domain.ErrBookNotFound
	}

	q := &Quote{}
	for _, b := range books {
		price := s.cfg.Pricing.PriceOf()
		q.Lines = append(q.Lines, QuoteLine{Book: b, Price: price})
		q.Total += price
		if b.Status != string(domain.BookAvailable) {
			q.Unavailable = append(q.Unavailable, b.Title)
		}
	}
	return q, nil
}

// ReserveForPickup books the selection for collection at the library desk
func (s *CheckoutService) ReserveForPickup(ctx context.Context, ids []int64, guestName string) (*Reservation, error) {
	name := strings.TrimSpace(guestName)
	if name == "" {
		return nil, domain.Invalid(MsgPickupNameRequired)
	}

	res, err := s.reserve(ctx, ids, func(r *models.Rental) {
		r.DeliveryType = domain.PickupBy(name)
		r.DeliveryStatus = string(domain.DeliveryAwaitingPickup)
	})
	if err != nil {
		return nil, err
	}
	res.Method = domain.MethodPickup
	res.GuestName = name
	return res, nil
}

// ReserveForDelivery books the selection for an Elite member's home delivery
func (s *CheckoutService) ReserveForDelivery(ctx context.Context, ids []int64, email string) (*Reservation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.Invalid(MsgEmailRequired)
	}

	member, err := s.members.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up member: %w", err)
	}

	memberID := member.ID
	res, err := s.reserve(ctx, ids, func(r *models.Rental) {
		r.MemberID = &memberID
		r.DeliveryType = domain.HomeDelivery
		r.DeliveryStatus = string(domain.DeliveryPendingVerification)
	})
	if err != nil {
		return nil, err
	}
	res.Method = domain.MethodDelivery
	res.Member = member
	return res, nil
}

// reserve holds every copy with a guarded update, then writes one rental per
// copy. Any failure releases the held copies and cancels rentals already written.
func (s *CheckoutService) reserve(ctx context.Context, ids []int64, fill func(*models.Rental)) (*Reservation, error) {
	quote, err := s.Quote(ctx, ids)
	if err != nil {
		return nil, err
	}
	if !quote.CanProceed() {
		return nil, &domain.UnavailableError{Titles: quote.Unavailable}
	}

	books := quote.Books()
	var held []*models.Book
	for _, b := range books {
		ok, err := s.inventory.ReserveIfAvailable(ctx, b.ID)
		if err != nil {
			s.rollback(ctx, held, nil)
			return nil, fmt.Errorf("reserve %q: %w", b.Title, err)
		}
		if !ok {
			s.rollback(ctx, held, nil)
			return nil, &domain.UnavailableError{Titles: []string{b.Title}}
		}
		b.Status = string(domain.BookReserved)
		held = append(held, b)
	}

	due := s.now().AddDate(0, 0, s.cfg.RentalDays).Format("2006-01-02")
	var written []*models.Rental
	for _, b := range books {
		rental := &models.Rental{
			BookID:  b.ID,
			DueDate: due,
			IsPaid:  false,
		}
		fill(rental)
		if err := s.rentals.Create(ctx, rental); err != nil {
			s.rollback(ctx, held, written)
			return nil, fmt.Errorf("record rental for %q: %w", b.Title, err)
		}
		written = append(written, rental)
	}

	log := logger.Get()
	log.Info().
		Int("books", len(books)).
		Str("delivery_type", written[0].DeliveryType).
		Msg("checkout reserved")

	return &Reservation{
		Books:       books,
		Rentals:     written,
		Quantity:    len(books),
		Total:       quote.Total,
		DueDate:     due,
		PaymentLink: s.cfg.PaymentLink,
	}, nil
}

// rollback is best effort; failures are logged for staff to fix by hand
func (s *CheckoutService) rollback(ctx context.Context, held []*models.Book, written []*models.Rental) {
	log := logger.Get()
	for _, r := range written {
		if err := s.rentals.UpdateDeliveryStatus(ctx, r.ID, string(domain.DeliveryCancelled)); err != nil {
			log.Error().Err(err).Int64("rental_id", r.ID).Msg("rollback: cancel rental failed")
		}
	}
	for _, b := range held {
		if err := s.inventory.UpdateStatus(ctx, b.ID, string(domain.BookAvailable)); err != nil {
			log.Error().Err(err).Int64("book_id", b.ID).Msg("rollback: release copy failed")
			continue
		}
		b.Status = string(domain.BookAvailable)
	}
}
