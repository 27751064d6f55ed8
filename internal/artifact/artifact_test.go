package artifact

import (
	"testing"
)

func TestConstructors(t *testing.T) {
	task := NewTask("launch", "growth", "high")
	if task.Kind != KindTask || task.ID == "" || task.CreatedAt.IsZero() {
		t.Fatalf("malformed task: %+v", task)
	}
	if task.Status != "pending" {
		t.Fatalf("new tasks start pending, got %s", task.Status)
	}

	proposal := NewProposal("pricing", "cfo", "raise tier 2")
	if proposal.Kind != KindProposal || proposal.Scope != "pricing" {
		t.Fatalf("malformed proposal: %+v", proposal)
	}

	decision := NewDecision("ceo", "approve", "fits strategy")
	if decision.Kind != KindDecision || decision.DecidedBy != "ceo" {
		t.Fatalf("malformed decision: %+v", decision)
	}

	outcome := NewOutcome(task.ID, "shipped")
	if outcome.Kind != KindOutcome || outcome.TaskID != task.ID {
		t.Fatalf("malformed outcome: %+v", outcome)
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewTask("a", "x", "low")
	b := NewTask("a", "x", "low")
	if a.ID == b.ID {
		t.Fatal("artifact ids must be unique")
	}
}
