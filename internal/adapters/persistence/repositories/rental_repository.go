package repositories

import (
	"context"
	"errors"
	"time"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/core/domain"

	"gorm.io/gorm"
)

// rentalRepository implements RentalRepository on gorm
type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new rental repository
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

// Create inserts a rental
func (r *rentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

// GetByID gets a rental with its book and member
func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		First(&rental, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// List lists rentals matching filter, newest first
func (r *rentalRepository) List(ctx context.Context, filter RentalFilter, offset, limit int) ([]*models.Rental, int64, error) {
	var rentals []*models.Rental
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.DeliveryStatus != "" {
			db = db.Where("delivery_status = ?", filter.DeliveryStatus)
		}
		if filter.Paid != nil {
			db = db.Where("is_paid = ?", *filter.Paid)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.Rental{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Book").
		Preload("Member").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rentals).Error

	return rentals, total, err
}

// UpdateDeliveryStatus sets the logistics status
func (r *rentalRepository) UpdateDeliveryStatus(ctx context.Context, id int64, status string) error {
	return r.update(ctx, id, "delivery_status", status)
}

// MarkPaid sets the paid flag
func (r *rentalRepository) MarkPaid(ctx context.Context, id int64, paid bool) error {
	return r.update(ctx, id, "is_paid", paid)
}

func (r *rentalRepository) update(ctx context.Context, id int64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return exists(ctx, r.db, &models.Rental{}, id)
	}
	return nil
}

// ListStaleHolds returns unpaid holds created before cutoff
func (r *rentalRepository) ListStaleHolds(ctx context.Context, cutoff time.Time) ([]*models.Rental, error) {
	var rentals []*models.Rental
	err := r.db.WithContext(ctx).
		Where("is_paid = ?", false).
		Where("delivery_status IN ?", []string{
			string(domain.DeliveryPendingVerification),
			string(domain.DeliveryAwaitingPickup),
		}).
		Where("created_at < ?", cutoff).
		Order("id ASC").
		Find(&rentals).Error
	return rentals, err
}

// CountByDeliveryStatus groups rentals by logistics status
func (r *rentalRepository) CountByDeliveryStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		DeliveryStatus string
		Total          int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Select("delivery_status, COUNT(*) AS total").
		Group("delivery_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.DeliveryStatus] = row.Total
	}
	return counts, nil
}
