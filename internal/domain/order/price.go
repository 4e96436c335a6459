package order

import (
	"fmt"
	"math"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned for negative or non-finite prices
var ErrInvalidPrice = shared.NewDomainError("INVALID_PRICE", "Invalid price")

// Price is a non-negative amount held at two decimal places.
// Construction rounds half away from zero, so 10.005 becomes 10.01.
type Price struct {
	amount decimal.Decimal
}

// NewPrice creates a Price from a decimal amount
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, invalidPrice(amount.String())
	}
	return Price{amount: amount.Round(2)}, nil
}

// NewPriceFromFloat creates a Price from a float, rejecting NaN and infinities
func NewPriceFromFloat(amount float64) (Price, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Price{}, invalidPrice(fmt.Sprintf("%v", amount))
	}
	return NewPrice(decimal.NewFromFloat(amount))
}

// PriceFromPrimitive rehydrates a stored price
func PriceFromPrimitive(amount decimal.Decimal) Price {
	return Price{amount: amount}
}

func invalidPrice(repr string) error {
	return shared.NewDomainError(ErrInvalidPrice.Code, fmt.Sprintf("Invalid price: %s", repr))
}

// Amount returns the decimal amount
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// Float64 returns the amount as a float
func (p Price) Float64() float64 {
	return p.amount.InexactFloat64()
}

// Equals reports whether both prices hold the same amount
func (p Price) Equals(other Price) bool {
	return p.amount.Equal(other.amount)
}

// String formats the price with two decimals
func (p Price) String() string {
	return p.amount.StringFixed(2)
}
