package middleware

import (
	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// HopTracker initializes the hop path on addressed messages. It never
// appends hops itself: agents that forward a message append their own name
// before re-publishing.
type HopTracker struct{}

func NewHopTracker() *HopTracker { return &HopTracker{} }

func (*HopTracker) Name() string { return "hopTracker" }

func (*HopTracker) Process(e *event.Event) error {
	if e.IsMessage() && e.Hops == nil {
		e.Hops = []string{}
	}
	return nil
}

// TTLEnforcer marks messages whose hop path has reached its TTL. It only
// annotates; handlers are expected to check the flag and skip expired
// messages, dispatch is not suppressed here.
type TTLEnforcer struct{}

func NewTTLEnforcer() *TTLEnforcer { return &TTLEnforcer{} }

func (*TTLEnforcer) Name() string { return "ttlEnforcer" }

func (*TTLEnforcer) Process(e *event.Event) error {
	if e.TTL > 0 && e.Hops != nil && len(e.Hops) >= e.TTL {
		e.Annotate(event.KeyTTLExceeded, true)
	}
	return nil
}

// MessageRouter annotates cross-team messages with the routing marker.
// This is observability only: it does not yet verify that the required team
// leads appear in the hop path.
type MessageRouter struct{}

func NewMessageRouter() *MessageRouter { return &MessageRouter{} }

func (*MessageRouter) Name() string { return "messageRouter" }

func (*MessageRouter) Process(e *event.Event) error {
	if e.Channel == event.ChannelCrossTeam && e.Hops != nil {
		e.Annotate(event.KeyRoutedVia, "messageRouter")
	}
	return nil
}
