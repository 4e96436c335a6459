// Package command provides the in-process command bus.
package command

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

// ErrNoHandler is returned when a command has no registered handler
var ErrNoHandler = errors.New("no handler registered for command")

// HandlerFunc handles one command type
type HandlerFunc func(ctx context.Context, cmd shared.Command) error

// InMemoryCommandBus routes each command by name to exactly one handler and
// runs it synchronously on the caller's goroutine. The handler's error is
// returned unchanged so callers can match domain errors.
type InMemoryCommandBus struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

// NewInMemoryCommandBus creates an empty command bus
func NewInMemoryCommandBus(logger *zap.Logger) *InMemoryCommandBus {
	return &InMemoryCommandBus{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register binds a typed handler to the name of C.
// It panics when C already has a handler, which is a wiring bug.
func Register[C shared.Command](bus *InMemoryCommandBus, handle func(ctx context.Context, cmd C) error) {
	var zero C
	name := zero.CommandName()

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if _, exists := bus.handlers[name]; exists {
		panic(fmt.Sprintf("command handler already registered: %s", name))
	}
	bus.handlers[name] = func(ctx context.Context, cmd shared.Command) error {
		typed, ok := cmd.(C)
		if !ok {
			return fmt.Errorf("command %s has unexpected type %T", name, cmd)
		}
		return handle(ctx, typed)
	}
	bus.logger.Debug("command handler registered", zap.String("command", name))
}

// Dispatch runs the handler registered for cmd
func (b *InMemoryCommandBus) Dispatch(ctx context.Context, cmd shared.Command) (err error) {
	name := cmd.CommandName()

	b.mu.RLock()
	handler, ok := b.handlers[name]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, name)
	}

	ctx, span := telemetry.StartCommandSpan(ctx, name)
	log := logger.WithTraceContext(ctx, logger.FromContextOr(ctx, b.logger))
	defer func() {
		if r := recover(); r != nil {
			log.Error("command handler panicked", zap.String("command", name), zap.Any("panic", r))
			err = fmt.Errorf("command handler panicked: %v", r)
		}
		telemetry.RecordError(span, err)
		span.End()
	}()

	log.Debug("dispatching command", zap.String("command", name))
	err = handler(ctx, cmd)
	if err != nil {
		log.Debug("command failed", zap.String("command", name), zap.Error(err))
	}
	return err
}

var _ shared.CommandDispatcher = (*InMemoryCommandBus)(nil)
