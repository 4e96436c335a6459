package shared

import "context"

// EventHandler reacts to published domain events. Choreography between the
// order and invoice contexts is built from these handlers.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the wire names the handler wants; nil subscribes it to every event
	EventTypes() []string
}

// EventPublisher is what application handlers get to emit released events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers. Handlers for the same event run in
// registration order.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the process-wide bus with its lifecycle. Stop waits for
// in-flight publications.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
