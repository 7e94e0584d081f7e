package repositories

import (
	"context"
	"time"

	"nova-library/internal/adapters/persistence/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repositories.go -package=mocks

// InventoryRepository defines lib_inventory access.
// Lookups that match nothing return domain.ErrNotFound.
type InventoryRepository interface {
	List(ctx context.Context) ([]*models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	// ReserveIfAvailable flips Available to Reserved in one guarded write.
	// It reports false when the copy was not Available.
	ReserveIfAvailable(ctx context.Context, id int64) (bool, error)
}

// MemberRepository defines lib_members access
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
}

// RentalFilter narrows rental listings. Zero values match everything.
type RentalFilter struct {
	DeliveryStatus string
	Paid           *bool
}

// RentalRepository defines lib_rentals access
type RentalRepository interface {
	Create(ctx context.Context, rental *models.Rental) error
	GetByID(ctx context.Context, id int64) (*models.Rental, error)
	List(ctx context.Context, filter RentalFilter, offset, limit int) ([]*models.Rental, int64, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status string) error
	MarkPaid(ctx context.Context, id int64, paid bool) error
	// ListStaleHolds returns unpaid rentals still holding a copy that were created before cutoff
	ListStaleHolds(ctx context.Context, cutoff time.Time) ([]*models.Rental, error)
	CountByDeliveryStatus(ctx context.Context) (map[string]int64, error)
}
