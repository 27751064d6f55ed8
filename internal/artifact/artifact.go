// Package artifact defines the higher-level ledger records derived from
// agent activity: tasks, proposals, decisions, and outcomes.
package artifact

import (
	"time"

	"github.com/google/uuid"
)

// Artifact kinds.
const (
	KindTask     = "task"
	KindProposal = "proposal"
	KindDecision = "decision"
	KindOutcome  = "outcome"
)

// Artifact is an append-once ledger record. It is built through one of the
// constructors below and never mutated after AppendArtifact.
type Artifact struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Task fields.
	Title    string `json:"title,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`

	// Proposal fields.
	Scope       string    `json:"scope,omitempty"`
	ProposedBy  string    `json:"proposed_by,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	Constraints []string  `json:"constraints,omitempty"`

	// Decision fields.
	DecidedBy string `json:"decided_by,omitempty"`
	Decision  string `json:"decision,omitempty"`
	Rationale string `json:"rationale,omitempty"`

	// Outcome fields.
	TaskID string `json:"task_id,omitempty"`
	Result string `json:"result,omitempty"`

	// Correlation with the originating swarm run, when known.
	TraceID string `json:"trace_id,omitempty"`
}

// NewTask builds a task artifact in pending status.
func NewTask(title, owner, priority string) Artifact {
	return Artifact{
		Kind:      KindTask,
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Title:     title,
		Owner:     owner,
		Status:    "pending",
		Priority:  priority,
	}
}

// NewProposal builds a proposal artifact.
func NewProposal(scope, proposedBy, summary string) Artifact {
	return Artifact{
		Kind:       KindProposal,
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		Scope:      scope,
		ProposedBy: proposedBy,
		Summary:    summary,
	}
}

// NewDecision builds a decision artifact.
func NewDecision(decidedBy, decision, rationale string) Artifact {
	return Artifact{
		Kind:      KindDecision,
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		DecidedBy: decidedBy,
		Decision:  decision,
		Rationale: rationale,
	}
}

// NewOutcome builds an outcome artifact linked to the task it resolves.
func NewOutcome(taskID, result string) Artifact {
	return Artifact{
		Kind:      KindOutcome,
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		TaskID:    taskID,
		Result:    result,
	}
}
