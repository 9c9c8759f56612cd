package cart

import "context"

// SnapshotStore persists one opaque cart snapshot per owner. Every mutation
// rewrites the whole snapshot; concurrent writers resolve as last-writer-wins
// with no merge logic.
type SnapshotStore interface {
	// Load returns the stored snapshot and whether one exists.
	Load(ctx context.Context, ownerID string) ([]byte, bool, error)
	Save(ctx context.Context, ownerID string, snapshot []byte) error
	Ping(ctx context.Context) error
}
