package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/paylater/backend/internal/domain/shared"
)

// InMemoryEventBus dispatches domain events to registered handlers in the
// same process. Handler failures are logged and never propagated to the
// publisher, so a broken bonus handler cannot fail a payment confirmation.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	all      []shared.EventHandler
	running  atomic.Bool
	logger   *zap.Logger
}

func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &InMemoryEventBus{
		handlers: make(map[string][]shared.EventHandler),
		logger:   log,
	}
}

// Publish delivers events synchronously to every matching handler.
// It always returns nil once the bus is running.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.running.Load() {
		return fmt.Errorf("event bus is not running")
	}

	for _, evt := range events {
		for _, h := range b.handlersFor(evt.EventType()) {
			b.dispatch(ctx, h, evt)
		}
	}
	return nil
}

// Subscribe registers a handler. When no event types are given, the
// handler's own EventTypes are used; an empty EventTypes list subscribes
// the handler to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if handler == nil {
		return
	}
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(eventTypes) == 0 {
		b.all = append(b.all, handler)
		return
	}
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

// Unsubscribe removes a handler from all subscription lists.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for t, hs := range b.handlers {
		b.handlers[t] = removeHandler(hs, handler)
	}
	b.all = removeHandler(b.all, handler)
}

func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.running.Store(true)
	return nil
}

func (b *InMemoryEventBus) Stop(_ context.Context) error {
	b.running.Store(false)
	return nil
}

func (b *InMemoryEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	matched := b.handlers[eventType]
	out := make([]shared.EventHandler, 0, len(matched)+len(b.all))
	out = append(out, matched...)
	out = append(out, b.all...)
	return out
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.String("event_id", evt.EventID().String()),
				zap.Any("panic", r))
		}
	}()

	if err := handler.Handle(ctx, evt); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID().String()),
			zap.Error(err))
	}
}

func removeHandler(hs []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	out := hs[:0]
	for _, h := range hs {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}
