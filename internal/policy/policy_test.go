package policy

import (
	"testing"

	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

func actionEvent(action string, approvals ...string) *event.Event {
	payload := map[string]any{"action": action}
	if approvals != nil {
		payload["approvals"] = approvals
	} else {
		payload["approvals"] = []string{}
	}
	return &event.Event{Type: "ACTION_PROPOSED", Source: "tester", Severity: event.SeverityMedium, Payload: payload}
}

func TestEnforceApprovals(t *testing.T) {
	tests := []struct {
		name    string
		e       *event.Event
		wantErr bool
	}{
		{"deploy recommendation unapproved", actionEvent("deploy_recommendation"), true},
		{"deploy recommendation reviewed", actionEvent("deploy_recommendation", RoleReviewer), false},
		{"merge recommendation unapproved", actionEvent("merge_recommendation"), true},
		{"config change reviewed", actionEvent("config_change_recommendation", RoleReviewer), false},
		{"capital without cfo", actionEvent("allocate_capital", RoleCapitalAllocation), true},
		{"capital without allocation", actionEvent("allocate_capital", RoleCFO), true},
		{"capital fully approved", actionEvent("allocate_capital", RoleCFO, RoleCapitalAllocation), false},
		{"security without cto", actionEvent("security_change", RoleSecurity), true},
		{"security fully approved", actionEvent("security_change", RoleCTO, RoleSecurity), false},
		{"unguarded action", actionEvent("write_report"), false},
		{"no action", &event.Event{Type: "PING"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnforceApprovals(tt.e)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EnforceApprovals error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnforcePermissions(t *testing.T) {
	if err := EnforcePermissions(actionEvent("deploy_execute")); err == nil {
		t.Fatal("deploy_execute must always be rejected")
	}
	if err := EnforcePermissions(actionEvent("deploy_recommendation", RoleReviewer)); err != nil {
		t.Fatalf("recommendations are permitted: %v", err)
	}
}

func TestDetectAlignmentWarnings(t *testing.T) {
	tests := []struct {
		name string
		e    *event.Event
		want []string
	}{
		{
			"revenue up margin down",
			&event.Event{Type: event.TypeKPIChanged, Payload: map[string]any{"revenueDelta": 5, "marginDelta": -2}},
			[]string{ConflictRevenueMargin},
		},
		{
			"growth up churn up",
			&event.Event{Type: event.TypeKPIChanged, Payload: map[string]any{"growthDelta": 3.0, "churnDelta": 1.5}},
			[]string{ConflictGrowthChurn},
		},
		{
			"speed up incidents up",
			&event.Event{Type: event.TypeKPIChanged, Payload: map[string]any{"speedDelta": 2, "incidentsDelta": 4}},
			[]string{ConflictSpeedIncidents},
		},
		{
			"multiple conflicts",
			&event.Event{Type: event.TypeKPIChanged, Payload: map[string]any{
				"revenueDelta": 5, "marginDelta": -2,
				"growthDelta": 1, "churnDelta": 1,
			}},
			[]string{ConflictRevenueMargin, ConflictGrowthChurn},
		},
		{
			"aligned deltas",
			&event.Event{Type: event.TypeKPIChanged, Payload: map[string]any{"revenueDelta": 5, "marginDelta": 2}},
			[]string{},
		},
		{
			"non kpi event with conflicting payload",
			&event.Event{Type: "INCIDENT_DETECTED", Payload: map[string]any{"revenueDelta": 5, "marginDelta": -2}},
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectAlignmentWarnings(tt.e)
			if len(got) != len(tt.want) {
				t.Fatalf("warnings = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("warnings[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEnforceFocusCapacity(t *testing.T) {
	full := FocusState{ActiveInitiatives: 3, MaxActiveInitiatives: 3}
	if d := EnforceFocusCapacity(full, "start_initiative"); d.Allow {
		t.Fatal("start_initiative must be denied at capacity")
	}
	if d := EnforceFocusCapacity(full, "write_report"); !d.Allow {
		t.Fatal("non-initiative actions are never capacity gated")
	}
	open := FocusState{ActiveInitiatives: 1, MaxActiveInitiatives: 3}
	if d := EnforceFocusCapacity(open, "start_initiative"); !d.Allow {
		t.Fatal("start_initiative must be allowed under capacity")
	}
}
