package services

import (
	"context"
	"path/filepath"
	"testing"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const placeholder = "https://via.placeholder.com/200x300?text=No+Cover"

var testPricing = Pricing{PerBook: 1500, Symbol: "₦"}

type fixture struct {
	db        *gorm.DB
	inventory repositories.InventoryRepository
	members   repositories.MemberRepository
	rentals   repositories.RentalRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &fixture{
		db:        db,
		inventory: repositories.NewInventoryRepository(db),
		members:   repositories.NewMemberRepository(db),
		rentals:   repositories.NewRentalRepository(db),
	}
}

func (f *fixture) book(t *testing.T, title, author, genre, status string) *models.Book {
	t.Helper()
	b := &models.Book{Title: title, Author: author, Genre: genre, Condition: "Good", Status: status}
	require.NoError(t, f.inventory.Create(context.Background(), b))
	return b
}

func (f *fixture) member(t *testing.T, name, email string) *models.Member {
	t.Helper()
	m := &models.Member{FullName: name, Email: email, Phone: "0800", Address: "12 Allen Ave", Tier: "Elite"}
	require.NoError(t, f.members.Create(context.Background(), m))
	return m
}

func (f *fixture) status(t *testing.T, id int64) string {
	t.Helper()
	b, err := f.inventory.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b.Status
}

func (f *fixture) allRentals(t *testing.T) []*models.Rental {
	t.Helper()
	rentals, _, err := f.rentals.List(context.Background(), repositories.RentalFilter{}, 0, 100)
	require.NoError(t, err)
	return rentals
}
