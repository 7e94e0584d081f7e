package repositories

import (
	"context"
	"errors"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/core/domain"

	"gorm.io/gorm"
)

// inventoryRepository implements InventoryRepository on gorm
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// List returns every copy in insertion order
func (r *inventoryRepository) List(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&books).Error
	return books, err
}

// GetByID gets one copy
func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByIDs gets the copies whose id is in ids; missing ids are skipped
func (r *inventoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Book, error) {
	var books []*models.Book
	if len(ids) == 0 {
		return books, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&books).Error
	return books, err
}

// Create inserts a copy
func (r *inventoryRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// UpdateStatus sets the shelf status of a copy
func (r *inventoryRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return exists(ctx, r.db, &models.Book{}, id)
	}
	return nil
}

// exists tells an unchanged row apart from a missing one, since MySQL
// reports zero affected rows when the value is already set.
func exists(ctx context.Context, db *gorm.DB, model interface{}, id int64) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveIfAvailable moves an Available copy to Reserved
func (r *inventoryRepository) ReserveIfAvailable(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND status = ?", id, string(domain.BookAvailable)).
		Update("status", string(domain.BookReserved))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
