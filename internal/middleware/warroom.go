package middleware

import (
	"sync"
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// War room defaults: three qualifying escalations inside a ten minute
// sliding window activate the war room.
const (
	DefaultWarRoomWindow    = 10 * time.Minute
	DefaultWarRoomThreshold = 3
)

// WarRoom is the process-wide escalation state. Activation is sticky: only
// an explicit Reset deactivates it, there is no timeout.
type WarRoom struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	arrivals  []time.Time
	active    bool
}

// NewWarRoom creates the state. Non-positive window/threshold use defaults.
func NewWarRoom(window time.Duration, threshold int) *WarRoom {
	if window <= 0 {
		window = DefaultWarRoomWindow
	}
	if threshold <= 0 {
		threshold = DefaultWarRoomThreshold
	}
	return &WarRoom{window: window, threshold: threshold}
}

// Active reports whether the war room is currently activated.
func (w *WarRoom) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Reset clears the window and deactivates the war room.
func (w *WarRoom) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.arrivals = nil
	w.active = false
}

// record appends an arrival, evicts entries that fell out of the window,
// and reports whether this arrival activated the war room.
func (w *WarRoom) record(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.arrivals = append(w.arrivals, now)
	cutoff := now.Add(-w.window)
	kept := w.arrivals[:0]
	for _, t := range w.arrivals {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.arrivals = kept

	if len(w.arrivals) >= w.threshold && !w.active {
		w.active = true
		return true
	}
	return false
}

// WarRoomActivator watches for bursts of critical events. The activating
// event alone is stamped with the trigger marker; the earlier events in the
// burst are not retroactively annotated.
type WarRoomActivator struct {
	warRoom *WarRoom
	now     func() time.Time
}

// NewWarRoomActivator creates the middleware around shared war-room state.
func NewWarRoomActivator(warRoom *WarRoom) *WarRoomActivator {
	return &WarRoomActivator{warRoom: warRoom, now: time.Now}
}

func (*WarRoomActivator) Name() string { return "warRoomActivator" }

func (a *WarRoomActivator) Process(e *event.Event) error {
	if e.Severity != event.SeverityCritical && e.Type != event.TypeIncidentDetected {
		return nil
	}
	if a.warRoom.record(a.now()) {
		e.Annotate(event.KeyWarRoomTriggered, true)
	}
	return nil
}
