// Package policy provides the pure rule functions consulted around the bus:
// approval gates, permission gates, KPI alignment checks, and focus capacity.
package policy

import (
	"fmt"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// Actions that are proposals for side effects and therefore need a reviewer
// approval before an agent may even publish them as recommendations.
var submissionActions = map[string]bool{
	"merge_recommendation":         true,
	"deploy_recommendation":        true,
	"config_change_recommendation": true,
}

// Role names recognized in approval lists.
const (
	RoleReviewer          = "Reviewer"
	RoleCFO               = "CFO"
	RoleCapitalAllocation = "CapitalAllocation"
	RoleCTO               = "CTO"
	RoleSecurity          = "Security"
)

// EnforceApprovals rejects events whose payload carries an action that lacks
// the approvals the action class requires. It is a hard stop: callers must
// not proceed with the side effect when an error is returned.
func EnforceApprovals(e *event.Event) error {
	action := payloadString(e, "action")
	if action == "" {
		return nil
	}
	approvals := payloadStrings(e, "approvals")
	has := func(role string) bool {
		for _, a := range approvals {
			if a == role {
				return true
			}
		}
		return false
	}

	if submissionActions[action] && !has(RoleReviewer) {
		return fmt.Errorf("action %s requires %s approval", action, RoleReviewer)
	}
	if action == "allocate_capital" && (!has(RoleCFO) || !has(RoleCapitalAllocation)) {
		return fmt.Errorf("action %s requires %s and %s approvals", action, RoleCFO, RoleCapitalAllocation)
	}
	if action == "security_change" && (!has(RoleCTO) || !has(RoleSecurity)) {
		return fmt.Errorf("action %s requires %s and %s approvals", action, RoleCTO, RoleSecurity)
	}
	return nil
}

// EnforcePermissions rejects direct deployment execution. Agents are
// advisory: they may recommend a deploy, never run one.
func EnforcePermissions(e *event.Event) error {
	if payloadString(e, "action") == "deploy_execute" {
		return fmt.Errorf("agents may not execute deployments directly; submit a deploy_recommendation instead")
	}
	return nil
}

// Alignment conflict messages. The exact strings are part of the contract
// with downstream digest consumers.
const (
	ConflictRevenueMargin  = "Revenue up + Margin down conflict"
	ConflictGrowthChurn    = "Growth up + Churn up conflict"
	ConflictSpeedIncidents = "Speed up + Incidents up conflict"
)

// DetectAlignmentWarnings inspects a KPI_CHANGED event for paired deltas
// moving in economically contradictory directions. Every other event type
// yields no warnings regardless of payload.
func DetectAlignmentWarnings(e *event.Event) []string {
	if e.Type != event.TypeKPIChanged {
		return []string{}
	}
	warnings := []string{}
	if payloadNumber(e, "revenueDelta") > 0 && payloadNumber(e, "marginDelta") < 0 {
		warnings = append(warnings, ConflictRevenueMargin)
	}
	if payloadNumber(e, "growthDelta") > 0 && payloadNumber(e, "churnDelta") > 0 {
		warnings = append(warnings, ConflictGrowthChurn)
	}
	if payloadNumber(e, "speedDelta") > 0 && payloadNumber(e, "incidentsDelta") > 0 {
		warnings = append(warnings, ConflictSpeedIncidents)
	}
	return warnings
}

// FocusState tracks how much parallel initiative load an agent carries.
type FocusState struct {
	ActiveInitiatives    int
	MaxActiveInitiatives int
}

// Decision is the result of a capacity evaluation.
type Decision struct {
	Allow  bool
	Reason string
}

// EnforceFocusCapacity gates start_initiative on remaining focus capacity.
// All other actions pass unconditionally.
func EnforceFocusCapacity(state FocusState, action string) Decision {
	if action != "start_initiative" {
		return Decision{Allow: true, Reason: "action_not_capacity_gated"}
	}
	if state.ActiveInitiatives >= state.MaxActiveInitiatives {
		return Decision{
			Allow:  false,
			Reason: fmt.Sprintf("focus capacity exhausted: %d/%d initiatives active", state.ActiveInitiatives, state.MaxActiveInitiatives),
		}
	}
	return Decision{Allow: true, Reason: "focus_capacity_available"}
}

func payloadString(e *event.Event, key string) string {
	if e.Payload == nil {
		return ""
	}
	s, _ := e.Payload[key].(string)
	return s
}

func payloadStrings(e *event.Event, key string) []string {
	if e.Payload == nil {
		return nil
	}
	switch v := e.Payload[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// payloadNumber reads a numeric payload field, tolerating the int/float64
// split between in-process drafts and JSON round-trips.
func payloadNumber(e *event.Event, key string) float64 {
	if e.Payload == nil {
		return 0
	}
	switch v := e.Payload[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
