package services

import (
	"context"
	"errors"
	"time"

	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// HoldSweeper cancels unpaid reservations that outlived the hold window
// and puts their copies back on the shelf.
type HoldSweeper struct {
	rentals   repositories.RentalRepository
	inventory repositories.InventoryRepository
	hold      time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

// NewHoldSweeper creates a new sweeper
func NewHoldSweeper(rentals repositories.RentalRepository, inventory repositories.InventoryRepository, hold time.Duration) *HoldSweeper {
	return &HoldSweeper{
		rentals:   rentals,
		inventory: inventory,
		hold:      hold,
		now:       time.Now,
	}
}

// Start schedules Sweep with a cron spec such as "@every 15m".
// An empty spec leaves the sweeper off.
func (s *HoldSweeper) Start(spec string) error {
	log := logger.Get()
	if spec == "" || s.hold <= 0 {
		log.Info().Msg("hold sweeper disabled")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			log.Error().Err(err).Msg("hold sweep failed")
		}
	}); err != nil {
		return err
	}
	s.cron.Start()

	log.Info().Str("schedule", spec).Dur("hold", s.hold).Msg("hold sweeper started")
	return nil
}

// Stop waits for a running sweep to finish
func (s *HoldSweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log := logger.Get()
	log.Info().Msg("hold sweeper stopped")
}

// Sweep cancels stale holds and returns how many were cancelled
func (s *HoldSweeper) Sweep(ctx context.Context) (int, error) {
	log := logger.Get()
	cutoff := s.now().Add(-s.hold)

	stale, err := s.rentals.ListStaleHolds(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, r := range stale {
		if err := s.rentals.UpdateDeliveryStatus(ctx, r.ID, string(domain.DeliveryCancelled)); err != nil {
			log.Error().Err(err).Int64("rental_id", r.ID).Msg("cancel stale hold failed")
			continue
		}
		if err := s.inventory.UpdateStatus(ctx, r.BookID, string(domain.BookAvailable)); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Int64("book_id", r.BookID).Msg("release copy failed")
		}
		cancelled++
	}

	if cancelled > 0 {
		log.Info().Int("cancelled", cancelled).Time("cutoff", cutoff).Msg("stale holds cancelled")
	}
	return cancelled, nil
}
