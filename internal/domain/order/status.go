package order

import (
	"fmt"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusCreated            Status = "CREATED"
	StatusAccepted           Status = "ACCEPTED"
	StatusRejected           Status = "REJECTED"
	StatusShippingInProgress Status = "SHIPPING_IN_PROGRESS"
	StatusShipped            Status = "SHIPPED"
)

// AllStatuses lists every status in declaration order
func AllStatuses() []Status {
	return []Status{
		StatusCreated,
		StatusAccepted,
		StatusRejected,
		StatusShippingInProgress,
		StatusShipped,
	}
}

// ErrInvalidStatus is returned when a status string is not recognised
var ErrInvalidStatus = shared.NewDomainError("INVALID_ORDER_STATUS", "Invalid order status")

// ParseStatus parses s into a Status. Matching is exact.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		names := make([]string, 0, len(AllStatuses()))
		for _, st := range AllStatuses() {
			names = append(names, st.String())
		}
		return "", shared.NewDomainError(ErrInvalidStatus.Code,
			fmt.Sprintf("Invalid order status \"%s\". Valid statuses are: %s", s, strings.Join(names, ", ")))
	}
	return status, nil
}

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusAccepted, StatusRejected, StatusShippingInProgress, StatusShipped:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsShipped reports whether the order reached the shipped status
func (s Status) IsShipped() bool {
	return s == StatusShipped
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusShipped
}

// Equals reports whether both statuses are the same
func (s Status) Equals(other Status) bool {
	return s == other
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusCreated:
		return target == StatusAccepted || target == StatusRejected
	case StatusAccepted:
		return target == StatusShippingInProgress
	case StatusShippingInProgress:
		return target == StatusShipped
	case StatusRejected, StatusShipped:
		return false // Terminal states
	}
	return false
}
