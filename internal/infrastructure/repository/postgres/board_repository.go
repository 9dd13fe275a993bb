package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// BoardRepository persists merged board snapshots. Snapshots are append-only;
// readers always take the newest row.
type BoardRepository struct {
	db *sqlx.DB
}

func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) SaveSnapshot(ctx context.Context, snap prospect.Snapshot) error {
	insertModel, err := newBoardSnapshotInsertModel(snap)
	if err != nil {
		return fmt.Errorf("build snapshot insert model: %w", err)
	}

	const query = `INSERT INTO board_snapshots (players, match_stats, updated_at)
VALUES (:players, :match_stats, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, insertModel); err != nil {
		return fmt.Errorf("insert board snapshot: %w", err)
	}

	return nil
}

func (r *BoardRepository) LatestSnapshot(ctx context.Context) (prospect.Snapshot, bool, error) {
	const query = `SELECT id, players, match_stats, updated_at, created_at
FROM board_snapshots
ORDER BY updated_at DESC, id DESC
LIMIT 1`

	var model boardSnapshotModel
	if err := r.db.GetContext(ctx, &model, query); err != nil {
		if isNotFound(err) {
			return prospect.Snapshot{}, false, nil
		}
		return prospect.Snapshot{}, false, fmt.Errorf("select latest board snapshot: %w", err)
	}

	snap, err := model.toDomain()
	if err != nil {
		return prospect.Snapshot{}, false, err
	}

	return snap, true, nil
}

// PruneSnapshots keeps the newest keep rows and deletes the rest. A refresh
// job runs hourly, so unbounded history adds up quickly.
func (r *BoardRepository) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	const query = `DELETE FROM board_snapshots
WHERE id NOT IN (
    SELECT id FROM board_snapshots ORDER BY updated_at DESC, id DESC LIMIT $1
)`

	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune board snapshots: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read pruned snapshot count: %w", err)
	}

	return deleted, nil
}
