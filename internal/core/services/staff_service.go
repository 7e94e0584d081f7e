package services

import (
	"fmt"

	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/jwt"
	"nova-library/internal/pkg/password"
)

// RoleAdmin is the role carried by an unlocked staff session
const RoleAdmin = "ADMIN"

// StaffService unlocks the admin dashboard with the shared staff PIN
type StaffService struct {
	pinHash    string
	secret     string
	expiryMins int
}

// NewStaffService hashes the configured PIN so the plain value is not kept around
func NewStaffService(pin, secret string, expiryMins int) (*StaffService, error) {
	return newStaffService(pin, secret, expiryMins, password.DefaultCost)
}

func newStaffService(pin, secret string, expiryMins, cost int) (*StaffService, error) {
	hash, err := password.HashWithCost(pin, cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin pin: %w", err)
	}
	if expiryMins <= 0 {
		expiryMins = 120
	}
	return &StaffService{
		pinHash:    hash,
		secret:     secret,
		expiryMins: expiryMins,
	}, nil
}

// Unlock checks pin and returns a signed staff token
func (s *StaffService) Unlock(pin string) (string, error) {
	if pin == "" || !password.Verify(pin, s.pinHash) {
		return "", domain.ErrInvalidPIN
	}
	return jwt.GenerateAccessToken("staff", RoleAdmin, s.secret, s.expiryMins)
}

// ExpiryMinutes is the staff token lifetime
func (s *StaffService) ExpiryMinutes() int {
	return s.expiryMins
}
