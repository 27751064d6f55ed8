// Package ledger provides the append-only audit log for events and
// artifacts. The log is an audit trail, not a query engine: writes preserve
// insertion order and reads are full O(n) replays.
package ledger

import (
	"errors"

	"github.com/KenRoach/kitzV1-sub005/internal/artifact"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

// ErrNotConfigured is returned by every method of the remote placeholder
// backend. Writes must fail loudly, never drop silently.
var ErrNotConfigured = errors.New("ledger backend not configured")

// Ledger is the persistence contract consumed by the bus and by read-only
// digest consumers.
type Ledger interface {
	AppendEvent(e *event.Event) error
	AppendArtifact(a artifact.Artifact) error
	ListEvents() ([]event.Event, error)
	ListArtifacts() ([]artifact.Artifact, error)
	Close() error
}

// Remote is a placeholder for a future remote ledger backend. Every
// operation fails with ErrNotConfigured until it is implemented.
type Remote struct{}

// NewRemote returns the unimplemented remote backend.
func NewRemote() *Remote { return &Remote{} }

func (*Remote) AppendEvent(*event.Event) error              { return ErrNotConfigured }
func (*Remote) AppendArtifact(artifact.Artifact) error      { return ErrNotConfigured }
func (*Remote) ListEvents() ([]event.Event, error)          { return nil, ErrNotConfigured }
func (*Remote) ListArtifacts() ([]artifact.Artifact, error) { return nil, ErrNotConfigured }
func (*Remote) Close() error                                { return nil }
