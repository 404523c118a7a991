package answer

import (
	"context"
	"errors"
	"time"
)

// DefaultKeep is the number of snapshots retained when no limit is configured.
const DefaultKeep = 50

// Snapshot errors.
var (
	ErrNoSnapshots      = errors.New("no snapshots recorded")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Snapshot is one timestamped copy of an answer value.
type Snapshot struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Value   any       `json:"value"`
}

// SnapshotStore keeps a bounded, timestamp-ordered history of values.
type SnapshotStore interface {
	// Record stores value as a new snapshot, evicting the oldest snapshots
	// beyond the configured limit.
	Record(ctx context.Context, value any) (Snapshot, error)
	// List returns all snapshots, oldest first.
	List(ctx context.Context) ([]Snapshot, error)
	// First returns the oldest snapshot. Returns ErrNoSnapshots if empty.
	First(ctx context.Context) (Snapshot, error)
	// Last returns the newest snapshot. Returns ErrNoSnapshots if empty.
	Last(ctx context.Context) (Snapshot, error)
	// Prev returns the newest n snapshots, oldest first. n <= 0 returns all.
	Prev(ctx context.Context, n int) ([]Snapshot, error)
	// Discard removes a snapshot by ID. Returns ErrSnapshotNotFound if missing.
	Discard(ctx context.Context, id string) error
}
