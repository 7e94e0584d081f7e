package domain

import (
	"strconv"
	"strings"
)

// BookStatus is the shelf state of one physical copy
type BookStatus string

const (
	BookAvailable BookStatus = "Available"
	BookReserved  BookStatus = "Reserved"
	BookRented    BookStatus = "Rented"
)

// BookStatuses lists every shelf state in display order
var BookStatuses = []BookStatus{BookAvailable, BookReserved, BookRented}

// Valid reports whether s is a known shelf state
func (s BookStatus) Valid() bool {
	for _, v := range BookStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DeliveryStatus tracks a rental through logistics
type DeliveryStatus string

const (
	DeliveryPendingVerification DeliveryStatus = "Pending Verification"
	DeliveryAwaitingPickup      DeliveryStatus = "Awaiting Pickup"
	DeliveryDispatched          DeliveryStatus = "Dispatched"
	DeliveryDelivered           DeliveryStatus = "Delivered"
	DeliveryReturned            DeliveryStatus = "Returned"
	DeliveryCancelled           DeliveryStatus = "Cancelled"
)

// DeliveryStatuses lists every logistics state in display order
var DeliveryStatuses = []DeliveryStatus{
	DeliveryPendingVerification,
	DeliveryAwaitingPickup,
	DeliveryDispatched,
	DeliveryDelivered,
	DeliveryReturned,
	DeliveryCancelled,
}

// Valid reports whether s is a known logistics state
func (s DeliveryStatus) Valid() bool {
	for _, v := range DeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ShelfStatus is the state the copy moves to when a rental enters s.
// ok is false when the copy is left untouched.
func (s DeliveryStatus) ShelfStatus() (status BookStatus, ok bool) {
	switch s {
	case DeliveryDispatched, DeliveryDelivered:
		return BookRented, true
	case DeliveryReturned, DeliveryCancelled:
		return BookAvailable, true
	case DeliveryPendingVerification, DeliveryAwaitingPickup:
		return BookReserved, true
	}
	return "", false
}

// IsClosed reports whether the rental is finished; closed rentals no longer move
func (s DeliveryStatus) IsClosed() bool {
	return s == DeliveryReturned || s == DeliveryCancelled
}

// IsHold reports whether the rental still only holds the copy
func (s DeliveryStatus) IsHold() bool {
	return s == DeliveryPendingVerification || s == DeliveryAwaitingPickup
}

// DeliveryMethod is chosen by the visitor at checkout
type DeliveryMethod string

const (
	// MethodPickup is a standard rental collected at the library desk
	MethodPickup DeliveryMethod = "pickup"
	// MethodDelivery is an Elite member home delivery
	MethodDelivery DeliveryMethod = "delivery"
)

// HomeDelivery is the delivery_type written for Elite rentals
const HomeDelivery = "Home Delivery"

// PickupBy returns the delivery_type written for a guest pickup
func PickupBy(name string) string {
	return "Pickup by " + name
}

// Member tiers
const (
	TierStandard = "Standard"
	TierElite    = "Elite"
)

// AllCategories is the genre selector value that disables the genre filter
const AllCategories = "All Categories"

// Cart is the ordered set of inventory ids a visitor has selected
type Cart []int64

// ParseCart decodes the comma separated form kept in the session
func ParseCart(raw string) Cart {
	var cart Cart
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		cart = cart.Add(id)
	}
	return cart
}

// String encodes the cart for the session
func (c Cart) String() string {
	parts := make([]string, len(c))
	for i, id := range c {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// Contains reports whether id is already selected
func (c Cart) Contains(id int64) bool {
	for _, v := range c {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless already present
func (c Cart) Add(id int64) Cart {
	if c.Contains(id) {
		return c
	}
	return append(c, id)
}

// Remove drops id from the cart
func (c Cart) Remove(id int64) Cart {
	out := make(Cart, 0, len(c))
	for _, v := range c {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// CartSummary is shown in the floating cart bar
type CartSummary struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
}
