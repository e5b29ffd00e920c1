package storage

import (
	"context"
	"errors"
)

const DefaultKey = "familyLeagueData"

var ErrSnapshotNotFound = errors.New("league snapshot not found")

// SnapshotStore is a single durable key-value slot holding the encoded league.
// Load returns ErrSnapshotNotFound when nothing has been saved yet. Saving the
// same bytes twice is harmless.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
