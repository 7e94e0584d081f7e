package services

import (
	"context"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
)

// DashboardService gathers the staff overview
type DashboardService struct {
	inventory repositories.InventoryRepository
	members   repositories.MemberRepository
	rentals   repositories.RentalRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	inventory repositories.InventoryRepository,
	members repositories.MemberRepository,
	rentals repositories.RentalRepository,
) *DashboardService {
	return &DashboardService{
		inventory: inventory,
		members:   members,
		rentals:   rentals,
	}
}

// StatusCount is one labelled counter
type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// AdminDashboardData represents the staff overview
type AdminDashboardData struct {
	TotalBooks      int64            `json:"total_books"`
	BooksByStatus   []StatusCount    `json:"books_by_status"`
	RentalsByStatus []StatusCount    `json:"rentals_by_status"`
	TotalMembers    int64            `json:"total_members"`
	RecentMembers   []*models.Member `json:"recent_members"`
	Inventory       []*models.Book   `json:"-"`
}

// GetAdminDashboard returns the staff overview
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	books, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	byBook := map[string]int64{}
	for _, b := range books {
		byBook[b.Status]++
	}

	byRental, err := s.rentals.CountByDeliveryStatus(ctx)
	if err != nil {
		return nil, err
	}

	recent, totalMembers, err := s.members.List(ctx, 0, 5)
	if err != nil {
		return nil, err
	}

	data := &AdminDashboardData{
		TotalBooks:    int64(len(books)),
		TotalMembers:  totalMembers,
		RecentMembers: recent,
		Inventory:     books,
	}
	for _, st := range domain.BookStatuses {
		data.BooksByStatus = append(data.BooksByStatus, StatusCount{Status: string(st), Total: byBook[string(st)]})
	}
	for _, st := range domain.DeliveryStatuses {
		data.RentalsByStatus = append(data.RentalsByStatus, StatusCount{Status: string(st), Total: byRental[string(st)]})
	}
	return data, nil
}
