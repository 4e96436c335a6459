package shared

import "time"

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	GetVersion() int
	IncrementVersion()
	RecordEvent(event DomainEvent)
	ReleaseEvents() []DomainEvent
	HasRecordedEvents() bool
}

// BaseAggregateRoot provides versioning and event buffering for aggregates.
// Events stay buffered until the orchestrating handler has persisted the
// aggregate and releases them.
type BaseAggregateRoot struct {
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
	events    []DomainEvent
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		events:    make([]DomainEvent, 0),
	}
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// Touch updates the modification timestamp
func (a *BaseAggregateRoot) Touch() {
	a.UpdatedAt = time.Now()
}

// RecordEvent appends a domain event to the buffer
func (a *BaseAggregateRoot) RecordEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// RecordedEvents returns the buffered events without draining them
func (a *BaseAggregateRoot) RecordedEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)
	return out
}

// ReleaseEvents returns the buffered events in recorded order and clears the buffer
func (a *BaseAggregateRoot) ReleaseEvents() []DomainEvent {
	released := a.events
	a.events = nil
	if released == nil {
		return []DomainEvent{}
	}
	return released
}

// HasRecordedEvents reports whether any events are buffered
func (a *BaseAggregateRoot) HasRecordedEvents() bool {
	return len(a.events) > 0
}

// ClearRecordedEvents drops buffered events without returning them
func (a *BaseAggregateRoot) ClearRecordedEvents() {
	a.events = nil
}
