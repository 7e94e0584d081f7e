package services

import (
	"context"
	"fmt"
	"strings"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/logger"
)

// MemberService handles membership signup
type MemberService struct {
	members repositories.MemberRepository
}

// NewMemberService creates a new member service
func NewMemberService(members repositories.MemberRepository) *MemberService {
	return &MemberService{members: members}
}

// SignUpInput is the Join Elite form
type SignUpInput struct {
	FullName string `validate:"required,max=150"`
	Email    string `validate:"required,email,max=150"`
	Phone    string `validate:"required,max=30"`
	Address  string `validate:"required,max=500"`
	Tier     string `validate:"omitempty,oneof=Standard Elite"`
}

var signUpLabels = map[string]string{
	"FullName": "your full name",
	"Email":    "your email",
	"Phone":    "a phone number",
	"Address":  "a delivery address",
	"Tier":     "tier",
}

// SignUp registers a member with exactly one insert
func (s *MemberService) SignUp(ctx context.Context, input SignUpInput) (*models.Member, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.Tier = strings.TrimSpace(input.Tier)

	if err := validate.Struct(input); err != nil {
		return nil, validationError(err, signUpLabels)
	}
	if input.Tier == "" {
		input.Tier = domain.TierElite
	}

	exists, err := s.members.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.ErrMemberExists
	}

	member := &models.Member{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Tier:     input.Tier,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}

	log := logger.Get()
	log.Info().Int64("member_id", member.ID).Str("tier", member.Tier).Msg("member registered")
	return member, nil
}

// List returns members for the admin dashboard
func (s *MemberService) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	return s.members.List(ctx, offset, limit)
}
