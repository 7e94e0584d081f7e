package supabase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
)

const (
	tableInventory = "lib_inventory"
	tableMembers   = "lib_members"
	tableRentals   = "lib_rentals"

	rentalSelect = "*,lib_inventory(*),lib_members(*)"
)

var (
	_ repositories.InventoryRepository = (*InventoryRepository)(nil)
	_ repositories.MemberRepository    = (*MemberRepository)(nil)
	_ repositories.RentalRepository    = (*RentalRepository)(nil)
)

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Insert payloads leave id and created_at to the table defaults.

type bookRow struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Condition string `json:"condition"`
	CoverURL  string `json:"cover_url"`
	Status    string `json:"status"`
}

type memberRow struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Tier     string `json:"tier"`
}

type rentalRow struct {
	BookID         int64  `json:"book_id"`
	MemberID       *int64 `json:"member_id,omitempty"`
	DueDate        string `json:"due_date"`
	DeliveryType   string `json:"delivery_type"`
	DeliveryStatus string `json:"delivery_status"`
	IsPaid         bool   `json:"is_paid"`
}

// ============================================================
// lib_inventory
// ============================================================

// InventoryRepository implements repositories.InventoryRepository over REST
type InventoryRepository struct {
	c *Client
}

// NewInventoryRepository creates a REST inventory repository
func NewInventoryRepository(c *Client) *InventoryRepository {
	return &InventoryRepository{c: c}
}

// List returns every copy
func (r *InventoryRepository) List(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	_, err := r.c.From(tableInventory).Select("*").Order("id", true).Execute(ctx, &books)
	return books, err
}

// GetByID gets one copy
func (r *InventoryRepository) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	var books []*models.Book
	if _, err := r.c.From(tableInventory).Select("*").Eq("id", id(bookID)).Execute(ctx, &books); err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, domain.ErrNotFound
	}
	return books[0], nil
}

// GetByIDs gets the copies whose id is in ids
func (r *InventoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Book, error) {
	var books []*models.Book
	if len(ids) == 0 {
		return books, nil
	}
	values := make([]string, len(ids))
	for i, v := range ids {
		values[i] = id(v)
	}
	_, err := r.c.From(tableInventory).Select("*").In("id", values).Order("id", true).Execute(ctx, &books)
	return books, err
}

// Create inserts a copy and fills in the generated id
func (r *InventoryRepository) Create(ctx context.Context, book *models.Book) error {
	var created []*models.Book
	row := bookRow{
		Title:     book.Title,
		Author:    book.Author,
		Genre:     book.Genre,
		Condition: book.Condition,
		CoverURL:  book.CoverURL,
		Status:    book.Status,
	}
	if _, err := r.c.From(tableInventory).Insert(row).Execute(ctx, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		return fmt.Errorf("supabase: insert into %s returned no rows", tableInventory)
	}
	*book = *created[0]
	return nil
}

// UpdateStatus sets the shelf status
func (r *InventoryRepository) UpdateStatus(ctx context.Context, bookID int64, status string) error {
	var updated []*models.Book
	_, err := r.c.From(tableInventory).
		Eq("id", id(bookID)).
		Update(map[string]string{"status": status}).
		Execute(ctx, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveIfAvailable flips Available to Reserved with a filtered PATCH
func (r *InventoryRepository) ReserveIfAvailable(ctx context.Context, bookID int64) (bool, error) {
	var updated []*models.Book
	_, err := r.c.From(tableInventory).
		Eq("id", id(bookID)).
		Eq("status", string(domain.BookAvailable)).
		Update(map[string]string{"status": string(domain.BookReserved)}).
		Execute(ctx, &updated)
	if err != nil {
		return false, err
	}
	return len(updated) == 1, nil
}

// ============================================================
// lib_members
// ============================================================

// MemberRepository implements repositories.MemberRepository over REST
type MemberRepository struct {
	c *Client
}

// NewMemberRepository creates a REST member repository
func NewMemberRepository(c *Client) *MemberRepository {
	return &MemberRepository{c: c}
}

// Create inserts a member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	var created []*models.Member
	row := memberRow{
		FullName: member.FullName,
		Email:    member.Email,
		Phone:    member.Phone,
		Address:  member.Address,
		Tier:     member.Tier,
	}
	if _, err := r.c.From(tableMembers).Insert(row).Execute(ctx, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		return fmt.Errorf("supabase: insert into %s returned no rows", tableMembers)
	}
	*member = *created[0]
	return nil
}

// GetByID gets a member by id
func (r *MemberRepository) GetByID(ctx context.Context, memberID int64) (*models.Member, error) {
	return r.first(ctx, "id", id(memberID))
}

// GetByEmail gets a member by exact email
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	return r.first(ctx, "email", email)
}

func (r *MemberRepository) first(ctx context.Context, column, value string) (*models.Member, error) {
	var members []*models.Member
	if _, err := r.c.From(tableMembers).Select("*").Eq(column, value).Limit(1).Execute(ctx, &members); err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, domain.ErrNotFound
	}
	return members[0], nil
}

// ExistsByEmail checks if the email is registered
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == domain.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// List lists members, newest first
func (r *MemberRepository) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	total, err := r.c.From(tableMembers).
		Select("*").
		Order("id", false).
		Range(offset, offset+limit-1).
		Execute(ctx, &members)
	return members, total, err
}

// ============================================================
// lib_rentals
// ============================================================

// RentalRepository implements repositories.RentalRepository over REST
type RentalRepository struct {
	c *Client
}

// NewRentalRepository creates a REST rental repository
func NewRentalRepository(c *Client) *RentalRepository {
	return &RentalRepository{c: c}
}

// Create inserts a rental
func (r *RentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	var created []*models.Rental
	row := rentalRow{
		BookID:         rental.BookID,
		MemberID:       rental.MemberID,
		DueDate:        rental.DueDate,
		DeliveryType:   rental.DeliveryType,
		DeliveryStatus: rental.DeliveryStatus,
		IsPaid:         rental.IsPaid,
	}
	if _, err := r.c.From(tableRentals).Insert(row).Execute(ctx, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		return fmt.Errorf("supabase: insert into %s returned no rows", tableRentals)
	}
	*rental = *created[0]
	return nil
}

// GetByID gets a rental with its book and member
func (r *RentalRepository) GetByID(ctx context.Context, rentalID int64) (*models.Rental, error) {
	var rentals []*models.Rental
	if _, err := r.c.From(tableRentals).Select(rentalSelect).Eq("id", id(rentalID)).Execute(ctx, &rentals); err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, domain.ErrNotFound
	}
	return rentals[0], nil
}

// List lists rentals matching filter, newest first
func (r *RentalRepository) List(ctx context.Context, filter repositories.RentalFilter, offset, limit int) ([]*models.Rental, int64, error) {
	var rentals []*models.Rental
	q := r.c.From(tableRentals).Select(rentalSelect)
	if filter.DeliveryStatus != "" {
		q = q.Eq("delivery_status", filter.DeliveryStatus)
	}
	if filter.Paid != nil {
		q = q.Eq("is_paid", strconv.FormatBool(*filter.Paid))
	}
	total, err := q.Order("id", false).Range(offset, offset+limit-1).Execute(ctx, &rentals)
	return rentals, total, err
}

// UpdateDeliveryStatus sets the logistics status
func (r *RentalRepository) UpdateDeliveryStatus(ctx context.Context, rentalID int64, status string) error {
	return r.update(ctx, rentalID, map[string]interface{}{"delivery_status": status})
}

// MarkPaid sets the paid flag
func (r *RentalRepository) MarkPaid(ctx context.Context, rentalID int64, paid bool) error {
	return r.update(ctx, rentalID, map[string]interface{}{"is_paid": paid})
}

func (r *RentalRepository) update(ctx context.Context, rentalID int64, values map[string]interface{}) error {
	var updated []*models.Rental
	if _, err := r.c.From(tableRentals).Eq("id", id(rentalID)).Update(values).Execute(ctx, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListStaleHolds returns unpaid holds created before cutoff
func (r *RentalRepository) ListStaleHolds(ctx context.Context, cutoff time.Time) ([]*models.Rental, error) {
	var rentals []*models.Rental
	_, err := r.c.From(tableRentals).
		Select("*").
		Eq("is_paid", "false").
		In("delivery_status", []string{
			`"` + string(domain.DeliveryPendingVerification) + `"`,
			`"` + string(domain.DeliveryAwaitingPickup) + `"`,
		}).
		Lt("created_at", cutoff.UTC().Format(time.RFC3339)).
		Order("id", true).
		Execute(ctx, &rentals)
	return rentals, err
}

// CountByDeliveryStatus counts rentals per logistics status
func (r *RentalRepository) CountByDeliveryStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		DeliveryStatus string `json:"delivery_status"`
	}
	if _, err := r.c.From(tableRentals).Select("delivery_status").Execute(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, row := range rows {
		counts[row.DeliveryStatus]++
	}
	return counts, nil
}
