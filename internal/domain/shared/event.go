package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	EventVersion() int
	OccurredAt() time.Time
	AggregateID() string
	AggregateType() string
	// Payload returns the event body keyed by wire field name
	Payload() map[string]any
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Version   int       `json:"event_version"`
	Timestamp time.Time `json:"timestamp"`
	AggID     string    `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// EventVersion returns the schema version, 1 when unset
func (e *BaseDomainEvent) EventVersion() int {
	if e.Version == 0 {
		return 1
	}
	return e.Version
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the aggregate that produced this event
func (e *BaseDomainEvent) AggregateID() string {
	return e.AggID
}

// AggregateType returns the type of the aggregate
func (e *BaseDomainEvent) AggregateType() string {
	return e.AggType
}

// NewBaseDomainEvent creates a new base domain event with schema version 1
func NewBaseDomainEvent(eventType, aggType, aggID string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Version:   1,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

// EventToPrimitives returns the stable wire form of an event
func EventToPrimitives(e DomainEvent) map[string]any {
	return map[string]any{
		"eventId":      e.EventID().String(),
		"eventType":    e.EventType(),
		"eventVersion": e.EventVersion(),
		"aggregateId":  e.AggregateID(),
		"payload":      e.Payload(),
		"occurredOn":   e.OccurredAt().Format(time.RFC3339),
	}
}
