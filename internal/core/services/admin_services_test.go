package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func addRental(t *testing.T, f *fixture, bookID int64, status string) *models.Rental {
	t.Helper()
	r := &models.Rental{BookID: bookID, DueDate: "2026-10-22", DeliveryType: "Home Delivery", DeliveryStatus: status}
	require.NoError(t, f.rentals.Create(context.Background(), r))
	return r
}

func TestLogisticsService_FilterNarrowsList(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Reserved")
	addRental(t, f, b.ID, "Pending Verification")
	addRental(t, f, b.ID, "Awaiting Pickup")
	addRental(t, f, b.ID, "Awaiting Pickup")
	svc := NewLogisticsService(f.rentals, f.inventory)
	ctx := context.Background()

	_, all, err := svc.ListRentals(ctx, "All", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, all)

	rentals, pickup, err := svc.ListRentals(ctx, "Awaiting Pickup", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pickup)
	for _, r := range rentals {
		assert.Equal(t, "Awaiting Pickup", r.DeliveryStatus)
	}

	_, _, err = svc.ListRentals(ctx, "Lost at sea", 0, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogisticsService_UpdateDeliveryStatusMovesCopy(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Reserved")
	r := addRental(t, f, b.ID, "Pending Verification")
	svc := NewLogisticsService(f.rentals, f.inventory)
	ctx := context.Background()

	steps := []struct {
		status string
		shelf  string
	}{
		{"Dispatched", "Rented"},
		{"Delivered", "Rented"},
		{"Returned", "Available"},
	}
	for _, step := range steps {
		updated, err := svc.UpdateDeliveryStatus(ctx, r.ID, step.status)
		require.NoError(t, err)
		assert.Equal(t, step.status, updated.DeliveryStatus)
		assert.Equal(t, step.shelf, f.status(t, b.ID), step.status)
	}

	_, err := svc.UpdateDeliveryStatus(ctx, r.ID, "Teleported")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// returned rentals are closed
	_, err = svc.UpdateDeliveryStatus(ctx, r.ID, "Dispatched")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Available", f.status(t, b.ID))

	_, err = svc.UpdateDeliveryStatus(ctx, 999, "Dispatched")
	assert.ErrorIs(t, err, domain.ErrRentalNotFound)
}

func TestLogisticsService_ClosedRentalLeavesCopyAlone(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Rented")
	old := addRental(t, f, b.ID, "Cancelled")
	current := addRental(t, f, b.ID, "Dispatched")
	svc := NewLogisticsService(f.rentals, f.inventory)
	ctx := context.Background()

	for _, status := range []string{"Returned", "Pending Verification", "Cancelled"} {
		_, err := svc.UpdateDeliveryStatus(ctx, old.ID, status)
		require.ErrorIs(t, err, domain.ErrInvalidInput, status)
		assert.Equal(t, "Rented", f.status(t, b.ID), status)
	}

	got, err := f.rentals.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", got.DeliveryStatus)

	_, err = svc.UpdateDeliveryStatus(ctx, current.ID, "Returned")
	require.NoError(t, err)
	assert.Equal(t, "Available", f.status(t, b.ID))
}

func TestLogisticsService_MarkPaid(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Reserved")
	r := addRental(t, f, b.ID, "Pending Verification")
	svc := NewLogisticsService(f.rentals, f.inventory)

	require.NoError(t, svc.MarkPaid(context.Background(), r.ID, true))
	got, err := f.rentals.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)

	assert.ErrorIs(t, svc.MarkPaid(context.Background(), 999, true), domain.ErrRentalNotFound)
}

func TestInventoryService_Acquire(t *testing.T) {
	f := newFixture(t)
	svc := NewInventoryService(f.inventory, "https://aicon-library.streamlit.app")

	book, err := svc.Acquire(context.Background(), AcquireInput{
		Title:  " Melody the music fairy ",
		Author: "Daisy Meadows",
		Genre:  "Children's Fantasy",
	})
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "Melody the music fairy", book.Title)
	assert.Equal(t, "Good", book.Condition)
	assert.Equal(t, "Available", book.Status)

	_, err = svc.Acquire(context.Background(), AcquireInput{Title: "No author", Genre: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Please provide an author.", err.Error())

	_, err = svc.Acquire(context.Background(), AcquireInput{Title: "T", Author: "A", Genre: "G", CoverURL: "not a link"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryService_SetStatusAndQRCode(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Available")
	svc := NewInventoryService(f.inventory, "https://aicon-library.streamlit.app")
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, b.ID, "Rented"))
	assert.Equal(t, "Rented", f.status(t, b.ID))
	assert.ErrorIs(t, svc.SetStatus(ctx, b.ID, "Lost"), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetStatus(ctx, 999, "Rented"), domain.ErrBookNotFound)

	png, name, err := svc.QRCode(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ugly_Bugs.png", name)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestStaffService_Unlock(t *testing.T) {
	svc, err := newStaffService("NovaAdmin2026", "secret", 30, bcrypt.MinCost)
	require.NoError(t, err)

	token, err := svc.Unlock("NovaAdmin2026")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Unlock("guess")
	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
	_, err = svc.Unlock("")
	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
}

func TestHoldSweeper_Sweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stale := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Reserved")
	fresh := f.book(t, "Bulging Brains", "Nick Arnold", "Science & History", "Reserved")

	old := &models.Rental{BookID: stale.ID, DeliveryStatus: "Awaiting Pickup", CreatedAt: time.Now().Add(-72 * time.Hour)}
	require.NoError(t, f.rentals.Create(ctx, old))
	addRental(t, f, fresh.ID, "Pending Verification")

	sweeper := NewHoldSweeper(f.rentals, f.inventory, 48*time.Hour)
	n, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.rentals.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", got.DeliveryStatus)
	assert.Equal(t, "Available", f.status(t, stale.ID))
	assert.Equal(t, "Reserved", f.status(t, fresh.ID))

	// nothing left to sweep
	n, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHoldSweeper_StartDisabled(t *testing.T) {
	f := newFixture(t)
	sweeper := NewHoldSweeper(f.rentals, f.inventory, 48*time.Hour)
	require.NoError(t, sweeper.Start(""))
	sweeper.Stop()

	require.Error(t, sweeper.Start("not a schedule"))
}

func TestDashboardService_GetAdminDashboard(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "Ugly Bugs", "Nick Arnold", "Science & History", "Reserved")
	f.book(t, "Bulging Brains", "Nick Arnold", "Science & History", "Available")
	f.member(t, "Ada Obi", "ada@example.com")
	addRental(t, f, b.ID, "Pending Verification")

	data, err := NewDashboardService(f.inventory, f.members, f.rentals).GetAdminDashboard(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, data.TotalBooks)
	assert.EqualValues(t, 1, data.TotalMembers)
	assert.Equal(t, StatusCount{Status: "Available", Total: 1}, data.BooksByStatus[0])
	assert.Equal(t, StatusCount{Status: "Pending Verification", Total: 1}, data.RentalsByStatus[0])
}
