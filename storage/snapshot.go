package storage

import "context"

type SnapshotResult struct {
	Key      string
	Location string
	ETag     string
}

// SnapshotStore archives generated-bracket JSON so external consumers (and
// audits) can fetch the bracket as it looked right after generation without
// touching the live tables.
type SnapshotStore interface {
	SaveBracketSnapshot(ctx context.Context, eventID int, payload []byte) (*SnapshotResult, error)

	GetPublicURL(key string) string
}
