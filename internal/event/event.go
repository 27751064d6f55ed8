// Package event defines the event envelope exchanged on the coordination bus.
package event

import (
	"time"
)

// Severity levels for events.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Well-known event types. The type field stays an open string so agents can
// emit domain-specific types without touching this package; these constants
// cover the types the kernel itself reacts to.
const (
	TypeKPIChanged       = "KPI_CHANGED"
	TypeIncidentDetected = "INCIDENT_DETECTED"
	TypeSwarmHandoff     = "SWARM_HANDOFF"
	TypeAgentMessage     = "AGENT_MESSAGE"
	TypeTaskCreated      = "TASK_CREATED"
	TypeProposalCreated  = "PROPOSAL_CREATED"
	TypeDecisionMade     = "DECISION_MADE"
	TypeOutcomeRecorded  = "OUTCOME_RECORDED"
	TypeAckTimeout       = "ACK_TIMEOUT"

	// TypeWildcard subscribes a handler to every published event.
	// It is a subscription key only and never appears on a published event.
	TypeWildcard = "*"
)

// Message channels for agent-to-agent messages.
const (
	ChannelDirect    = "direct"
	ChannelCrossTeam = "cross-team"
	ChannelBroadcast = "broadcast"
)

// Payload annotation keys written by the middleware chain. Annotations are
// additive markers; middleware never rewrites prior event fields.
const (
	KeyTTLExceeded      = "_ttlExceeded"
	KeyWarRoomTriggered = "_warRoomTriggered"
	KeyRoutedVia        = "_routedVia"
)

// knownTypes is the closed subset of types the kernel dispatches on.
var knownTypes = map[string]bool{
	TypeKPIChanged:       true,
	TypeIncidentDetected: true,
	TypeSwarmHandoff:     true,
	TypeAgentMessage:     true,
	TypeTaskCreated:      true,
	TypeProposalCreated:  true,
	TypeDecisionMade:     true,
	TypeOutcomeRecorded:  true,
	TypeAckTimeout:       true,
}

// KnownType reports whether t is one of the kernel's well-known event types.
// Custom types are always legal on the wire; this only aids exhaustive
// dispatch in consumers.
func KnownType(t string) bool {
	return knownTypes[t]
}

// Event is the unit of communication between agents. Once persisted, the
// id/type/source/timestamp fields never change; Payload may gain additive
// middleware annotations during the pre-persist phase only.
type Event struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	Source            string         `json:"source"`
	Severity          string         `json:"severity"`
	Timestamp         time.Time      `json:"timestamp"`
	Payload           map[string]any `json:"payload"`
	RequiresReview    bool           `json:"requiresReview,omitempty"`
	RelatedIDs        []string       `json:"relatedIds,omitempty"`
	AlignmentWarnings []string       `json:"alignmentWarnings,omitempty"`

	// Agent-message extension. Channel == "" means the event is not an
	// addressed message and the remaining fields are meaningless.
	Channel     string   `json:"channel,omitempty"`
	Hops        []string `json:"hops,omitempty"`
	TTL         int      `json:"ttl,omitempty"`
	RequiresAck bool     `json:"requiresAck,omitempty"`
}

// IsMessage reports whether the event carries the agent-message extension.
func (e *Event) IsMessage() bool {
	return e.Channel != ""
}

// Annotate writes an additive marker into the payload, allocating the map if
// the draft was published without one.
func (e *Event) Annotate(key string, value any) {
	if e.Payload == nil {
		e.Payload = make(map[string]any)
	}
	e.Payload[key] = value
}

// AddHop appends the given agent name to the hop path. Callers that route a
// message through successive agents call this before re-publishing; the bus
// itself never appends hops.
func (e *Event) AddHop(agent string) {
	e.Hops = append(e.Hops, agent)
}
