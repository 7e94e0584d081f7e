package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidPIN   = errors.New("invalid credentials")
)

// Catalog and checkout errors
var (
	ErrBookNotFound    = errors.New("book(s) not found")
	ErrEmptySelection  = errors.New("no books selected")
	ErrBookUnavailable = errors.New("books no longer available")
	ErrRentalNotFound  = errors.New("rental not found")
)

// Member errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already registered")
)

// UnavailableError lists the titles that blocked a checkout
type UnavailableError struct {
	Titles []string
}

func (e *UnavailableError) Error() string {
	return "books no longer available: " + strings.Join(e.Titles, ", ")
}

// Is lets errors.Is match ErrBookUnavailable
func (e *UnavailableError) Is(target error) bool {
	return target == ErrBookUnavailable
}

// ValidationError carries a message meant for the visitor
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is match ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds a ValidationError
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
