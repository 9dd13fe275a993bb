package prospect

import "context"

// Repository stores the latest merged board snapshot.
type Repository interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LatestSnapshot(ctx context.Context) (Snapshot, bool, error)
}
