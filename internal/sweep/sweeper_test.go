package sweep

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/artifact"
	"github.com/KenRoach/kitzV1-sub005/internal/bus"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
	"github.com/KenRoach/kitzV1-sub005/internal/middleware"
)

type memLedger struct {
	mu     sync.Mutex
	events []event.Event
}

func (m *memLedger) AppendEvent(e *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memLedger) AppendArtifact(artifact.Artifact) error { return nil }

func (m *memLedger) ListEvents() ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.Event(nil), m.events...), nil
}

func (m *memLedger) ListArtifacts() ([]artifact.Artifact, error) { return nil, nil }
func (m *memLedger) Close() error                                { return nil }

func TestSweepPublishesTimeoutOncePerMessage(t *testing.T) {
	acks := middleware.NewPendingAcks(5 * time.Minute)
	b := bus.New(&memLedger{})

	var timeouts []*event.Event
	b.Subscribe(event.TypeAckTimeout, func(ctx context.Context, e *event.Event) error {
		timeouts = append(timeouts, e)
		return nil
	})

	now := time.Now()
	acks.Track(middleware.PendingAck{MessageID: "overdue", Source: "a", Timestamp: now.Add(-10 * time.Minute)})
	acks.Track(middleware.PendingAck{MessageID: "fresh", Source: "a", Timestamp: now})

	s := New(b, acks, time.Minute)
	s.Sweep(context.Background(), now)

	if len(timeouts) != 1 {
		t.Fatalf("expected 1 timeout event, got %d", len(timeouts))
	}
	if id, _ := timeouts[0].Payload["messageId"].(string); id != "overdue" {
		t.Fatalf("unexpected timeout target: %v", timeouts[0].Payload)
	}

	// A later sweep must not re-report the same overdue message.
	s.Sweep(context.Background(), now.Add(time.Minute))
	if len(timeouts) != 1 {
		t.Fatalf("overdue message re-reported: got %d timeout events", len(timeouts))
	}
}

func TestSweepLeavesPendingEntries(t *testing.T) {
	acks := middleware.NewPendingAcks(5 * time.Minute)
	b := bus.New(&memLedger{})

	now := time.Now()
	acks.Track(middleware.PendingAck{MessageID: "overdue", Source: "a", Timestamp: now.Add(-10 * time.Minute)})

	New(b, acks, time.Minute).Sweep(context.Background(), now)
	if len(acks.Pending()) != 1 {
		t.Fatal("sweeping must not remove the pending entry; only an ack does")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	acks := middleware.NewPendingAcks(5 * time.Minute)
	b := bus.New(&memLedger{})
	s := New(b, acks, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.Start(ctx); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
