// Package middleware provides the ordered chain of pre-persist interceptors
// the bus runs on every published event. Middleware annotates the in-flight
// event's payload; it never suppresses persistence or dispatch.
package middleware

import (
	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// Middleware intercepts a hydrated event before it is persisted.
type Middleware interface {
	// Name returns a short identifier for logging.
	Name() string
	// Process may write additive markers into the event payload. Returning
	// an error aborts the rest of the publish pipeline for that event.
	Process(e *event.Event) error
}
