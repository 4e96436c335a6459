package event

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Delivery outcomes reported to a DeliveryRecorder. Bypassed marks a
// delivery let through because the store could not be consulted.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
	OutcomeBypassed  = "bypassed"
)

// DeliveryRecorder receives the outcome of each deduplicated delivery.
// telemetry.BusinessMetrics implements it.
type DeliveryRecorder interface {
	RecordDelivery(ctx context.Context, handler, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordDelivery(context.Context, string, string) {}

// IdempotentHandler runs the wrapped handler at most once per event id.
// Records are keyed "{handler}:{eventId}" so the projection writer and the
// invoice sender subscribed to the same event are tracked independently.
type IdempotentHandler struct {
	inner    shared.EventHandler
	name     string
	store    shared.IdempotencyStore
	cfg      shared.IdempotencyConfig
	logger   *zap.Logger
	recorder DeliveryRecorder
}

// IdempotentHandlerOption customises an IdempotentHandler
type IdempotentHandlerOption func(*IdempotentHandler)

// WithIdempotencyConfig overrides the TTL and the enabled switch
func WithIdempotencyConfig(cfg shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.cfg = cfg }
}

// WithDeliveryRecorder reports every delivery outcome to recorder
func WithDeliveryRecorder(recorder DeliveryRecorder) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.recorder = recorder }
}

// NewIdempotentHandler wraps inner with the deduplicating store
func NewIdempotentHandler(inner shared.EventHandler, store shared.IdempotencyStore, logger *zap.Logger, opts ...IdempotentHandlerOption) *IdempotentHandler {
	h := &IdempotentHandler{
		inner:    inner,
		name:     HandlerName(inner),
		store:    store,
		cfg:      shared.DefaultIdempotencyConfig(),
		logger:   logger,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *IdempotentHandler) EventTypes() []string { return h.inner.EventTypes() }

// HandlerName is the wrapped handler's name, which keeps keys stable across restarts
func (h *IdempotentHandler) HandlerName() string { return h.name }

// Unwrap returns the decorated handler
func (h *IdempotentHandler) Unwrap() shared.EventHandler { return h.inner }

// Handle claims the key before running the handler. An unreachable store
// does not block delivery. When the handler fails the claim is released so
// a redelivery gets another attempt.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.cfg.Enabled {
		return h.inner.Handle(ctx, event)
	}

	key := h.name + ":" + event.EventID().String()
	log := h.logger.With(
		zap.String("handler", h.name),
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	)

	claimed, err := h.store.MarkProcessed(ctx, key, h.cfg.TTL)
	switch {
	case err != nil:
		h.recorder.RecordDelivery(ctx, h.name, OutcomeBypassed)
		log.Warn("idempotency store unavailable, delivering without deduplication", zap.Error(err))
	case !claimed:
		h.recorder.RecordDelivery(ctx, h.name, OutcomeDuplicate)
		log.Debug("event already handled")
		return nil
	}

	if err := h.inner.Handle(ctx, event); err != nil {
		h.recorder.RecordDelivery(ctx, h.name, OutcomeFailed)
		if ferr := h.store.Forget(ctx, key); ferr != nil {
			log.Warn("could not release idempotency key", zap.Error(ferr))
		}
		return err
	}

	h.recorder.RecordDelivery(ctx, h.name, OutcomeProcessed)
	return nil
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)

// WrapHandlersWithIdempotency applies NewIdempotentHandler to each handler
func WrapHandlersWithIdempotency(handlers []shared.EventHandler, store shared.IdempotencyStore, logger *zap.Logger, opts ...IdempotentHandlerOption) []shared.EventHandler {
	wrapped := make([]shared.EventHandler, 0, len(handlers))
	for _, inner := range handlers {
		wrapped = append(wrapped, NewIdempotentHandler(inner, store, logger, opts...))
	}
	return wrapped
}
