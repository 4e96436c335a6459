package event

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// NamedHandler lets a handler report a stable name for logs and spans
type NamedHandler interface {
	HandlerName() string
}

// HandlerName returns the handler's reported name or its Go type name
func HandlerName(handler shared.EventHandler) string {
	if named, ok := handler.(NamedHandler); ok {
		return named.HandlerName()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", handler), "*")
}

// HandlerRegistry maps event types to subscribed handlers.
// Lookups return typed handlers in subscription order, then catch-all handlers.
type HandlerRegistry struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	catchAll []shared.EventHandler
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byType: map[string][]shared.EventHandler{}}
}

// Register subscribes handler to eventTypes, or to every event when none are given.
// A repeated registration for the same type is ignored.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.catchAll = appendUnique(r.catchAll, handler)
		return
	}
	for _, eventType := range eventTypes {
		r.byType[eventType] = appendUnique(r.byType[eventType], handler)
	}
}

// Unregister drops handler from every event type and from the catch-all list
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	same := func(h shared.EventHandler) bool { return h == handler }
	r.catchAll = slices.DeleteFunc(r.catchAll, same)
	for eventType, handlers := range r.byType {
		if remaining := slices.DeleteFunc(handlers, same); len(remaining) > 0 {
			r.byType[eventType] = remaining
		} else {
			delete(r.byType, eventType)
		}
	}
}

// GetHandlers returns a copy of the handlers that receive eventType
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Concat(r.byType[eventType], r.catchAll)
}

// EventTypes lists, sorted, the event types with at least one typed handler
func (r *HandlerRegistry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byType))
}

func appendUnique(handlers []shared.EventHandler, handler shared.EventHandler) []shared.EventHandler {
	if slices.Contains(handlers, handler) {
		return handlers
	}
	return append(handlers, handler)
}
