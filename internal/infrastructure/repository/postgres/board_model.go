package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

type boardSnapshotModel struct {
	ID         int64     `db:"id"`
	Players    []byte    `db:"players"`
	MatchStats []byte    `db:"match_stats"`
	UpdatedAt  time.Time `db:"updated_at"`
	CreatedAt  time.Time `db:"created_at"`
}

type boardSnapshotInsertModel struct {
	Players    []byte    `db:"players"`
	MatchStats []byte    `db:"match_stats"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func newBoardSnapshotInsertModel(snap prospect.Snapshot) (boardSnapshotInsertModel, error) {
	players, err := sonic.Marshal(snap.Players)
	if err != nil {
		return boardSnapshotInsertModel{}, fmt.Errorf("marshal snapshot players: %w", err)
	}

	matchStats, err := sonic.Marshal(snap.MatchStats)
	if err != nil {
		return boardSnapshotInsertModel{}, fmt.Errorf("marshal snapshot match stats: %w", err)
	}

	return boardSnapshotInsertModel{
		Players:    players,
		MatchStats: matchStats,
		UpdatedAt:  snap.UpdatedAt,
	}, nil
}

func (m boardSnapshotModel) toDomain() (prospect.Snapshot, error) {
	snap := prospect.Snapshot{
		Players:   []prospect.Prospect{},
		UpdatedAt: m.UpdatedAt,
	}

	if len(m.Players) > 0 {
		if err := sonic.Unmarshal(m.Players, &snap.Players); err != nil {
			return prospect.Snapshot{}, fmt.Errorf("unmarshal snapshot players: %w", err)
		}
	}
	if len(m.MatchStats) > 0 {
		if err := sonic.Unmarshal(m.MatchStats, &snap.MatchStats); err != nil {
			return prospect.Snapshot{}, fmt.Errorf("unmarshal snapshot match stats: %w", err)
		}
	}

	return snap, nil
}
