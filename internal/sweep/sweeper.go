// Package sweep runs the periodic acknowledgment sweep. The bus never times
// out pending acks itself; this ticker queries the pending-ack table and
// raises an ACK_TIMEOUT event for each newly overdue message.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/bus"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
	"github.com/KenRoach/kitzV1-sub005/internal/middleware"
)

// DefaultInterval is how often the sweep checks for overdue acks.
const DefaultInterval = time.Minute

// Sweeper periodically reacts to overdue acknowledgments. Run Start as a
// goroutine; it exits when the context is cancelled.
type Sweeper struct {
	bus      *bus.Bus
	acks     *middleware.PendingAcks
	interval time.Duration
	reported map[string]bool
}

// New creates a sweeper. interval <= 0 uses DefaultInterval.
func New(b *bus.Bus, acks *middleware.PendingAcks, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		bus:      b,
		acks:     acks,
		interval: interval,
		reported: make(map[string]bool),
	}
}

// Start ticks until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("ack sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Sweep(ctx, now)
		}
	}
}

// Sweep publishes one ACK_TIMEOUT event per overdue message that has not
// been reported yet. The pending entry itself stays in the table until an
// acknowledgment arrives.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) {
	for _, ack := range s.acks.TimedOut(now) {
		if s.reported[ack.MessageID] {
			continue
		}
		s.reported[ack.MessageID] = true
		_, err := s.bus.Publish(ctx, &event.Event{
			Type:     event.TypeAckTimeout,
			Source:   "ackSweeper",
			Severity: event.SeverityMedium,
			Payload: map[string]any{
				"messageId": ack.MessageID,
				"source":    ack.Source,
				"sentAt":    ack.Timestamp,
			},
			RelatedIDs: []string{ack.MessageID},
		})
		if err != nil {
			slog.Warn("ack timeout publish failed", "messageId", ack.MessageID, "error", err)
		}
	}
}
