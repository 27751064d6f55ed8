package middleware

import (
	"sort"
	"sync"
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// DefaultAckWindow is how long a message may wait for acknowledgment before
// the sweep treats it as overdue.
const DefaultAckWindow = 5 * time.Minute

// PendingAck records a message awaiting acknowledgment.
type PendingAck struct {
	MessageID string    `json:"messageId"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// PendingAcks is the process-wide table of unacknowledged messages. It is
// constructed once and shared by reference between the AckTracker middleware
// and the external sweep; the table itself never times anything out.
type PendingAcks struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]PendingAck
}

// NewPendingAcks creates the table. window <= 0 uses DefaultAckWindow.
func NewPendingAcks(window time.Duration) *PendingAcks {
	if window <= 0 {
		window = DefaultAckWindow
	}
	return &PendingAcks{
		window:  window,
		pending: make(map[string]PendingAck),
	}
}

// Track records a message awaiting acknowledgment.
func (p *PendingAcks) Track(ack PendingAck) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[ack.MessageID] = ack
}

// Acknowledge removes a pending entry. Acknowledging an unknown or already
// acknowledged id is a no-op.
func (p *PendingAcks) Acknowledge(messageID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, messageID)
}

// Pending returns all unacknowledged entries, oldest first.
func (p *PendingAcks) Pending() []PendingAck {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PendingAck, 0, len(p.pending))
	for _, ack := range p.pending {
		out = append(out, ack)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// TimedOut returns entries older than the ack window at the given instant.
// Entries stay in the table; reacting to overdue acks is the sweep's job.
func (p *PendingAcks) TimedOut(now time.Time) []PendingAck {
	cutoff := now.Add(-p.window)
	out := []PendingAck{}
	for _, ack := range p.Pending() {
		if ack.Timestamp.Before(cutoff) {
			out = append(out, ack)
		}
	}
	return out
}

// Reset clears the table. Test isolation hook.
func (p *PendingAcks) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = make(map[string]PendingAck)
}

// AckTracker records messages published with requiresAck so a periodic
// external sweep can chase overdue acknowledgments.
type AckTracker struct {
	acks *PendingAcks
}

// NewAckTracker creates the middleware around a shared table.
func NewAckTracker(acks *PendingAcks) *AckTracker {
	return &AckTracker{acks: acks}
}

func (t *AckTracker) Name() string { return "ackTracker" }

func (t *AckTracker) Process(e *event.Event) error {
	if !e.RequiresAck {
		return nil
	}
	t.acks.Track(PendingAck{
		MessageID: e.ID,
		Source:    e.Source,
		Timestamp: time.Now(),
	})
	return nil
}
