package invoice

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// ErrInvalidSentAt is returned when a send date is outside the accepted window
var ErrInvalidSentAt = shared.NewDomainError("INVALID_SENT_AT", "Invalid sent date")

// SentAt is the moment an invoice was sent, within [now - 1 year, now]
type SentAt struct {
	value time.Time
}

// NewSentAt validates t against the current time
func NewSentAt(t time.Time) (SentAt, error) {
	now := time.Now()
	if t.After(now) {
		return SentAt{}, shared.NewDomainError(ErrInvalidSentAt.Code, "SentAt date cannot be in the future")
	}
	if t.Before(now.AddDate(-1, 0, 0)) {
		return SentAt{}, shared.NewDomainError(ErrInvalidSentAt.Code, "SentAt date cannot be more than 1 year ago")
	}
	return SentAt{value: t}, nil
}

// SentAtFromPrimitive rehydrates a stored send date
func SentAtFromPrimitive(t time.Time) SentAt {
	return SentAt{value: t}
}

// Time returns the send moment
func (s SentAt) Time() time.Time {
	return s.value
}
