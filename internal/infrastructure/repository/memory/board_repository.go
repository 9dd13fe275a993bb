package memory

import (
	"context"
	"sync"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// BoardRepository keeps the latest merged snapshot in process memory. The
// default store when no database is configured: the board is tiny and fully
// rebuilt on every refresh, so process restarts only cost one refresh run.
type BoardRepository struct {
	mu       sync.RWMutex
	snapshot prospect.Snapshot
	loaded   bool
}

func NewBoardRepository() *BoardRepository {
	return &BoardRepository{}
}

func (r *BoardRepository) SaveSnapshot(_ context.Context, snapshot prospect.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]prospect.Prospect, len(snapshot.Players))
	copy(players, snapshot.Players)
	snapshot.Players = players

	r.snapshot = snapshot
	r.loaded = true
	return nil
}

func (r *BoardRepository) LatestSnapshot(_ context.Context) (prospect.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return prospect.Snapshot{}, false, nil
	}

	out := r.snapshot
	players := make([]prospect.Prospect, len(out.Players))
	copy(players, out.Players)
	out.Players = players
	return out, true, nil
}
