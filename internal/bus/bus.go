// Package bus implements the central publish/subscribe dispatcher for the
// coordination kernel. It owns the middleware pipeline and the handler
// registry, and persists every published event to the ledger before any
// handler sees it.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
	"github.com/KenRoach/kitzV1-sub005/internal/ledger"
	"github.com/KenRoach/kitzV1-sub005/internal/middleware"
	"github.com/KenRoach/kitzV1-sub005/internal/policy"
)

// Handler consumes a published event. Handlers for one event run
// sequentially in registration order; an error aborts the remaining
// handlers for that event and propagates out of Publish.
type Handler func(ctx context.Context, e *event.Event) error

// Bus is the event dispatcher. Construct once with New and share by
// reference among all agents.
type Bus struct {
	mu          sync.Mutex
	ledger      ledger.Ledger
	middlewares []middleware.Middleware
	handlers    map[string][]Handler
}

// New creates a bus backed by the given ledger.
func New(l ledger.Ledger) *Bus {
	return &Bus{
		ledger:   l,
		handlers: make(map[string][]Handler),
	}
}

// Use appends a middleware to the pre-persist pipeline. Registration order
// is execution order and is semantically significant: hop initialization
// must be registered before TTL enforcement.
func (b *Bus) Use(mw middleware.Middleware) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middlewares = append(b.middlewares, mw)
}

// Subscribe registers a handler for an event type. event.TypeWildcard
// subscribes to every event; wildcard handlers run after the type-specific
// ones. Multiple handlers per type run in registration order.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish hydrates the draft (id, timestamp, alignment warnings), runs the
// middleware chain, appends the event to the ledger, then dispatches to
// subscribed handlers. The returned event is the hydrated draft.
//
// Alignment warnings are computed from the draft before middleware runs, so
// middleware never sees or reacts to them; this ordering is load-bearing
// for downstream consumers and must not change.
//
// There is no rollback: a middleware or handler error aborts the remainder
// of the pipeline, but completed payload mutations and the ledger write
// stand. The ledger reflects every attempted event.
func (b *Bus) Publish(ctx context.Context, draft *event.Event) (*event.Event, error) {
	if draft == nil {
		return nil, fmt.Errorf("publish requires an event draft")
	}

	// Hydration, middleware, and the ledger append run under the bus lock
	// so interleaved publishes keep ledger order and middleware state
	// consistent. The lock is released before handlers run: handlers may
	// publish follow-up events (handoffs) through this same bus.
	b.mu.Lock()
	draft.ID = uuid.NewString()
	draft.Timestamp = time.Now()
	if warnings := policy.DetectAlignmentWarnings(draft); len(warnings) > 0 {
		draft.AlignmentWarnings = warnings
	}

	for _, mw := range b.middlewares {
		if err := mw.Process(draft); err != nil {
			b.mu.Unlock()
			return nil, fmt.Errorf("middleware %s: %w", mw.Name(), err)
		}
	}

	if err := b.ledger.AppendEvent(draft); err != nil {
		b.mu.Unlock()
		return nil, fmt.Errorf("ledger append: %w", err)
	}

	queue := append([]Handler(nil), b.handlers[draft.Type]...)
	queue = append(queue, b.handlers[event.TypeWildcard]...)
	b.mu.Unlock()

	slog.Debug("event published", "id", draft.ID, "type", draft.Type, "source", draft.Source, "severity", draft.Severity)

	for _, h := range queue {
		if err := h(ctx, draft); err != nil {
			slog.Warn("handler aborted dispatch", "id", draft.ID, "type", draft.Type, "error", err)
			return draft, fmt.Errorf("handler for %s: %w", draft.Type, err)
		}
	}
	return draft, nil
}
