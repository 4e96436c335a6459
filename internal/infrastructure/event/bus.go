package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Publish after Stop
var ErrBusStopped = errors.New("event bus is stopped")

type busState int32

const (
	busIdle busState = iota
	busRunning
	busStopped
)

// InMemoryEventBus delivers events synchronously inside the publishing call.
// Events are handled in the order given and each one reaches its handlers in
// subscription order. A handler that fails or panics is logged and skipped.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger

	// mu orders inFlight.Add against Stop, so every accepted publication
	// is counted before Stop starts waiting
	mu       sync.Mutex
	state    busState
	inFlight sync.WaitGroup
}

// NewInMemoryEventBus creates a bus with no subscribers
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish hands every event to its handlers before returning.
// Handler failures never reach the caller.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.mu.Lock()
	if b.state == busStopped {
		b.mu.Unlock()
		return ErrBusStopped
	}
	b.inFlight.Add(1)
	b.mu.Unlock()
	defer b.inFlight.Done()

	log := logger.FromContextOr(ctx, b.logger)
	for _, event := range events {
		b.deliver(ctx, log, event)
	}
	return nil
}

func (b *InMemoryEventBus) deliver(ctx context.Context, log *zap.Logger, event shared.DomainEvent) {
	handlers := b.registry.GetHandlers(event.EventType())
	if len(handlers) == 0 {
		log.Debug("no handlers for event", zap.String("event_type", event.EventType()))
		return
	}

	for _, handler := range handlers {
		err := b.invoke(ctx, handler, event)
		if err == nil {
			continue
		}
		log.Error("handler failed to process event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.String("handler", HandlerName(handler)),
			zap.Error(err),
		)
	}
}

// invoke runs one handler in its own span, turning a panic into an error
func (b *InMemoryEventBus) invoke(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	ctx, span := telemetry.StartEventSpan(ctx,
		event.EventType(), event.EventID().String(), event.AggregateID(), HandlerName(handler))
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
		telemetry.RecordError(span, err)
		span.End()
	}()

	return handler.Handle(ctx, event)
}

// Subscribe registers handler for eventTypes. Without explicit types the
// handler's own EventTypes are used, and nil there means every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", HandlerName(handler)),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed", zap.String("handler", HandlerName(handler)))
}

// Start marks the bus running. A stopped bus can be started again.
func (b *InMemoryEventBus) Start(context.Context) error {
	b.mu.Lock()
	b.state = busRunning
	b.mu.Unlock()
	b.logger.Info("event bus started", zap.Strings("event_types", b.registry.EventTypes()))
	return nil
}

// Stop rejects new publications, then waits for in-flight ones until ctx expires
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	b.state = busStopped
	b.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		b.inFlight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out with publications in flight")
		return ctx.Err()
	}
}

// IsRunning reports whether the bus was started and not stopped since
func (b *InMemoryEventBus) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == busRunning
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
