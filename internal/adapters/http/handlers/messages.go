package handlers

import (
	"errors"
	"strings"

	"nova-library/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Visitor-facing messages
const (
	MsgBooksNotFound   = "Book(s) not found."
	MsgEmailNotFound   = "Email not found. Are you registered for the Elite tier?"
	MsgInvalidPIN      = "Invalid Credentials"
	MsgMemberExists    = "This email is already registered."
	MsgPickupReserved  = "Reservation logged! Books are secured for you."
	MsgUnavailablePref = "Cannot proceed. The following books are no longer available: "
	MsgDatabasePrefix  = "Database connection error: "
)

// userMessage flattens any service error into the one line shown to visitors
func userMessage(err error) string {
	var unavailable *domain.UnavailableError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &unavailable):
		return MsgUnavailablePref + strings.Join(unavailable.Titles, ", ")
	case errors.As(err, &invalid):
		return invalid.Message
	case errors.Is(err, domain.ErrBookNotFound), errors.Is(err, domain.ErrEmptySelection):
		return MsgBooksNotFound
	case errors.Is(err, domain.ErrMemberNotFound):
		return MsgEmailNotFound
	case errors.Is(err, domain.ErrMemberExists):
		return MsgMemberExists
	case errors.Is(err, domain.ErrInvalidPIN):
		return MsgInvalidPIN
	case errors.Is(err, domain.ErrRentalNotFound):
		return "Rental not found."
	}
	return MsgDatabasePrefix + err.Error()
}

// statusFor maps a service error to an HTTP status for the JSON API
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptySelection):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrRentalNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrBookUnavailable), errors.Is(err, domain.ErrMemberExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidPIN), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}
