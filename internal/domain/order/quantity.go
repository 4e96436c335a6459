package order

import "github.com/ecommerce/backend/internal/domain/shared"

// MaxQuantity is the largest quantity a single order may carry
const MaxQuantity = 999

// ErrInvalidQuantity is returned for quantities outside [0, MaxQuantity]
var ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Invalid quantity")

// Quantity is the number of items in an order
type Quantity struct {
	value int
}

// NewQuantity validates v and wraps it
func NewQuantity(v int) (Quantity, error) {
	if v < 0 {
		return Quantity{}, shared.NewDomainError(ErrInvalidQuantity.Code, "Quantity cannot be negative")
	}
	if v > MaxQuantity {
		return Quantity{}, shared.NewDomainError(ErrInvalidQuantity.Code, "Quantity cannot exceed 999 items")
	}
	return Quantity{value: v}, nil
}

// QuantityFromPrimitive rehydrates a stored quantity
func QuantityFromPrimitive(v int) Quantity {
	return Quantity{value: v}
}

// Int returns the quantity as an int
func (q Quantity) Int() int {
	return q.value
}

// Equals reports whether both quantities are equal
func (q Quantity) Equals(other Quantity) bool {
	return q.value == other.value
}
