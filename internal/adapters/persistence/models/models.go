package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Storefront tables
// ============================================================

// Book represents lib_inventory, one row per physical copy
type Book struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255;not null;index" json:"title"`
	Author    string    `gorm:"size:255;index" json:"author"`
	Genre     string    `gorm:"size:100;index" json:"genre"`
	Condition string    `gorm:"size:50;default:'Good'" json:"condition"`
	CoverURL  string    `gorm:"size:500" json:"cover_url"`
	Status    string    `gorm:"size:20;default:'Available';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Book) TableName() string {
	return "lib_inventory"
}

// Member represents lib_members
type Member struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"size:150;not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Address   string    `gorm:"size:500" json:"address"`
	Tier      string    `gorm:"size:20;default:'Elite'" json:"tier"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Member) TableName() string {
	return "lib_members"
}

// Rental represents lib_rentals
type Rental struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID         int64     `gorm:"index;not null" json:"book_id"`
	MemberID       *int64    `gorm:"index" json:"member_id"`
	DueDate        string    `gorm:"size:10" json:"due_date"`
	DeliveryType   string    `gorm:"size:150" json:"delivery_type"`
	DeliveryStatus string    `gorm:"size:40;index" json:"delivery_status"`
	IsPaid         bool      `gorm:"default:false" json:"is_paid"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Embedded relations, named after the tables so the REST select
	// "*,lib_inventory(*),lib_members(*)" decodes into the same struct.
	Book   *Book   `gorm:"foreignKey:BookID" json:"lib_inventory,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"lib_members,omitempty"`
}

func (Rental) TableName() string {
	return "lib_rentals"
}

// BookTitle returns the embedded title or a fallback for orphan rows
func (r *Rental) BookTitle() string {
	if r.Book != nil {
		return r.Book.Title
	}
	return "Unknown book"
}

// Customer returns who the rental is for
func (r *Rental) Customer() string {
	if r.Member != nil {
		return r.Member.FullName
	}
	return r.DeliveryType
}

// AutoMigrate creates the storefront tables on SQL stores
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&Member{},
		&Rental{},
	)
}
