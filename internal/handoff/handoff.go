// Package handoff implements the swarm handoff envelope: the context package
// one agent passes to the next (or to a fan-out set) when it cannot fully
// satisfy a task with its own capability.
package handoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// Handoff carries accumulated findings between agents. It is delivered as
// the payload of a SWARM_HANDOFF event, not persisted as its own entity.
// TraceID must thread unchanged through an entire chained handoff sequence
// so the full swarm run can be reconstructed from the ledger.
type Handoff struct {
	From      string         `json:"from"`
	To        []string       `json:"to"`
	Context   map[string]any `json:"context"`
	Reason    string         `json:"reason"`
	TraceID   string         `json:"traceId"`
	FromTeam  string         `json:"fromTeam,omitempty"`
	ToTeam    string         `json:"toTeam,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// New builds a handoff envelope. to accepts one or more target agent names;
// more than one means fan-out. The context map is copied so later caller
// mutations cannot leak into an envelope already on the bus.
func New(from string, to []string, context map[string]any, reason, traceID string) (*Handoff, error) {
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("handoff requires a source agent")
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("handoff requires at least one target agent")
	}
	if strings.TrimSpace(traceID) == "" {
		return nil, fmt.Errorf("handoff requires a trace id")
	}
	copied := make(map[string]any, len(context))
	for k, v := range context {
		copied[k] = v
	}
	return &Handoff{
		From:      from,
		To:        append([]string(nil), to...),
		Context:   copied,
		Reason:    reason,
		TraceID:   traceID,
		Timestamp: time.Now(),
	}, nil
}

// WithTeams annotates the envelope with the source and destination teams.
func (h *Handoff) WithTeams(fromTeam, toTeam string) *Handoff {
	h.FromTeam = fromTeam
	h.ToTeam = toTeam
	return h
}

// MergeContext folds new findings into prior context without dropping what
// earlier agents in the chain contributed. New values win on key collision;
// the inputs are left untouched.
func MergeContext(prior, findings map[string]any) map[string]any {
	merged := make(map[string]any, len(prior)+len(findings))
	for k, v := range prior {
		merged[k] = v
	}
	for k, v := range findings {
		merged[k] = v
	}
	return merged
}

// Event wraps the envelope as a publishable SWARM_HANDOFF event draft. The
// bus assigns id and timestamp on publish.
func (h *Handoff) Event() *event.Event {
	return &event.Event{
		Type:     event.TypeSwarmHandoff,
		Source:   h.From,
		Severity: event.SeverityMedium,
		Payload: map[string]any{
			"handoff": h,
		},
	}
}
