package shared

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// uuidV4Pattern matches the canonical textual form of a version 4 UUID.
var uuidV4Pattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// ErrInvalidUUID is returned when a string is not a canonical UUID v4
var ErrInvalidUUID = NewDomainError("INVALID_UUID", "Invalid UUID format")

// Identifier is an immutable UUID v4 value. K is a phantom kind type that
// keeps identifiers of different aggregates apart at compile time.
type Identifier[K any] struct {
	value string
}

// ParseIdentifier validates s and wraps it without altering its case
func ParseIdentifier[K any](s string) (Identifier[K], error) {
	if !IsValidUUID(s) {
		return Identifier[K]{}, NewDomainError(ErrInvalidUUID.Code, fmt.Sprintf("Invalid UUID format: %s", s))
	}
	return Identifier[K]{value: s}, nil
}

// GenerateIdentifier creates a new random identifier
func GenerateIdentifier[K any]() Identifier[K] {
	// uuid.New draws from crypto/rand and patches version and variant bits
	return Identifier[K]{value: uuid.New().String()}
}

// IdentifierFromPrimitive rehydrates an identifier read from trusted storage
func IdentifierFromPrimitive[K any](s string) Identifier[K] {
	return Identifier[K]{value: s}
}

// String returns the canonical string form
func (id Identifier[K]) String() string {
	return id.value
}

// Equals reports whether both identifiers hold the same value
func (id Identifier[K]) Equals(other Identifier[K]) bool {
	return id.value == other.value
}

// IsZero reports whether the identifier was never set
func (id Identifier[K]) IsZero() bool {
	return id.value == ""
}

// IsValidUUID reports whether s is a canonical UUID v4
func IsValidUUID(s string) bool {
	return uuidV4Pattern.MatchString(s)
}

// Identifier kinds shared by the Order and Invoice contexts.
type (
	orderKind    struct{}
	productKind  struct{}
	customerKind struct{}
	sellerKind   struct{}
)

// OrderID identifies an order
type OrderID = Identifier[orderKind]

// ProductID identifies a product
type ProductID = Identifier[productKind]

// CustomerID identifies a customer
type CustomerID = Identifier[customerKind]

// SellerID identifies a seller
type SellerID = Identifier[sellerKind]

// ParseOrderID parses an order identifier
func ParseOrderID(s string) (OrderID, error) { return ParseIdentifier[orderKind](s) }

// ParseProductID parses a product identifier
func ParseProductID(s string) (ProductID, error) { return ParseIdentifier[productKind](s) }

// ParseCustomerID parses a customer identifier
func ParseCustomerID(s string) (CustomerID, error) { return ParseIdentifier[customerKind](s) }

// ParseSellerID parses a seller identifier
func ParseSellerID(s string) (SellerID, error) { return ParseIdentifier[sellerKind](s) }

// OrderIDFromPrimitive rehydrates a stored order identifier
func OrderIDFromPrimitive(s string) OrderID { return IdentifierFromPrimitive[orderKind](s) }

// ProductIDFromPrimitive rehydrates a stored product identifier
func ProductIDFromPrimitive(s string) ProductID { return IdentifierFromPrimitive[productKind](s) }

// CustomerIDFromPrimitive rehydrates a stored customer identifier
func CustomerIDFromPrimitive(s string) CustomerID { return IdentifierFromPrimitive[customerKind](s) }

// SellerIDFromPrimitive rehydrates a stored seller identifier
func SellerIDFromPrimitive(s string) SellerID { return IdentifierFromPrimitive[sellerKind](s) }
