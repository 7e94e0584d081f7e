package services

import (
	"errors"
	"fmt"
	"strings"

	"nova-library/internal/core/domain"
	"nova-library/internal/pkg/money"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Pricing holds the flat per-book rental price
type Pricing struct {
	PerBook int64
	Symbol  string
}

// PriceOf returns the rental price of one copy
func (p Pricing) PriceOf() int64 {
	return p.PerBook
}

// Total returns the price of n copies
func (p Pricing) Total(n int) int64 {
	return p.PerBook * int64(n)
}

// Format renders an amount in the store currency
func (p Pricing) Format(amount int64) string {
	return money.Format(amount, p.Symbol)
}

// validationError turns the first failed rule into a visitor-facing message
func validationError(err error, labels map[string]string) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domain.Invalid(err.Error())
	}

	fe := errs[0]
	label, ok := labels[fe.Field()]
	if !ok {
		label = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return domain.Invalid(fmt.Sprintf("Please provide %s.", label))
	case "email":
		return domain.Invalid("Please enter a valid email address.")
	case "url":
		return domain.Invalid(fmt.Sprintf("Please provide a valid link for %s.", label))
	case "max":
		return domain.Invalid(fmt.Sprintf("%s is too long.", capitalize(label)))
	case "oneof":
		return domain.Invalid(fmt.Sprintf("%s must be one of: %s.", capitalize(label), fe.Param()))
	}
	return domain.Invalid(fmt.Sprintf("Invalid %s.", label))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
