package middleware

import (
	"testing"
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

func TestAckTrackerRecordsOnlyAckRequired(t *testing.T) {
	acks := NewPendingAcks(0)
	tracker := NewAckTracker(acks)

	withAck := &event.Event{ID: "m1", Source: "a", Channel: event.ChannelDirect, RequiresAck: true}
	withoutAck := &event.Event{ID: "m2", Source: "a", Channel: event.ChannelDirect}
	if err := tracker.Process(withAck); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if err := tracker.Process(withoutAck); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	pending := acks.Pending()
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending ack, got %d", len(pending))
	}
	if pending[0].MessageID != "m1" {
		t.Fatalf("unexpected pending id: %s", pending[0].MessageID)
	}
}

func TestAcknowledgeRemovesEntry(t *testing.T) {
	acks := NewPendingAcks(0)
	acks.Track(PendingAck{MessageID: "m1", Source: "a", Timestamp: time.Now()})

	acks.Acknowledge("m1")
	if len(acks.Pending()) != 0 {
		t.Fatal("acknowledged entry must be removed")
	}
	// Unknown ids are a no-op.
	acks.Acknowledge("missing")
}

func TestTimedOutRespectsWindow(t *testing.T) {
	acks := NewPendingAcks(5 * time.Minute)
	now := time.Now()
	acks.Track(PendingAck{MessageID: "overdue", Source: "a", Timestamp: now.Add(-6 * time.Minute)})
	acks.Track(PendingAck{MessageID: "fresh", Source: "a", Timestamp: now.Add(-1 * time.Minute)})

	timedOut := acks.TimedOut(now)
	if len(timedOut) != 1 {
		t.Fatalf("expected 1 timed out ack, got %d", len(timedOut))
	}
	if timedOut[0].MessageID != "overdue" {
		t.Fatalf("unexpected timed out id: %s", timedOut[0].MessageID)
	}
	// The query never removes entries.
	if len(acks.Pending()) != 2 {
		t.Fatal("timed out query must not evict entries")
	}
}

func TestPendingOrderedOldestFirst(t *testing.T) {
	acks := NewPendingAcks(0)
	now := time.Now()
	acks.Track(PendingAck{MessageID: "b", Source: "a", Timestamp: now})
	acks.Track(PendingAck{MessageID: "a", Source: "a", Timestamp: now.Add(-time.Minute)})

	pending := acks.Pending()
	if pending[0].MessageID != "a" || pending[1].MessageID != "b" {
		t.Fatalf("expected oldest first, got %v", pending)
	}
}

func TestReset(t *testing.T) {
	acks := NewPendingAcks(0)
	acks.Track(PendingAck{MessageID: "m1", Source: "a", Timestamp: time.Now()})
	acks.Reset()
	if len(acks.Pending()) != 0 {
		t.Fatal("reset must clear the table")
	}
}
