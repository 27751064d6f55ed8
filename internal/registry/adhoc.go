package registry

import (
	"time"

	"github.com/KenRoach/kitzV1-sub005/internal/artifact"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// DefaultAdHocTTLHours bounds how long an ad-hoc proposal stays open.
const DefaultAdHocTTLHours = 24

// CanSpawnAdHoc is the severity gate consulted before asking the registry
// for a spawn slot. Low-severity work needs explicit justification: either
// the owning agent asked for help or a monitored threshold was crossed.
func CanSpawnAdHoc(severity string, ownerRequested, thresholdCrossed bool) bool {
	if severity == event.SeverityLow && !ownerRequested && !thresholdCrossed {
		return false
	}
	return true
}

// NewAdHocProposal builds the proposal artifact that authorizes a scoped
// ad-hoc helper. ttlHours <= 0 uses the default. The two constraints are
// fixed: an ad-hoc helper can never authorize a deployment, and it cannot
// open a merge request without the owning agent's sign-off.
func NewAdHocProposal(scope, owner string, ttlHours int) artifact.Artifact {
	if ttlHours <= 0 {
		ttlHours = DefaultAdHocTTLHours
	}
	a := artifact.NewProposal(scope, owner, "ad-hoc helper for "+scope)
	a.Owner = owner
	a.ExpiresAt = a.CreatedAt.Add(time.Duration(ttlHours) * time.Hour)
	a.Constraints = []string{
		"cannot authorize deployment",
		"cannot open merge request without owner sign-off",
	}
	return a
}
