package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/platform/logging"
)

// BoardService serves the merged draft board out of the snapshot store.
type BoardService struct {
	repo   prospect.Repository
	logger *logging.Logger
}

func NewBoardService(repo prospect.Repository, logger *logging.Logger) *BoardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BoardService{repo: repo, logger: logger}
}

// Board returns the latest merged snapshot.
func (s *BoardService) Board(ctx context.Context) (prospect.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "BoardService.Board")
	defer span.End()

	snapshot, ok, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		return prospect.Snapshot{}, fmt.Errorf("load latest snapshot: %w", err)
	}
	if !ok {
		return prospect.Snapshot{}, fmt.Errorf("%w: no board snapshot has been built yet", ErrNotFound)
	}
	return snapshot, nil
}

// PlayerBySlug returns one prospect from the latest snapshot.
func (s *BoardService) PlayerBySlug(ctx context.Context, slug string) (prospect.Prospect, error) {
	ctx, span := startUsecaseSpan(ctx, "BoardService.PlayerBySlug")
	defer span.End()

	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return prospect.Prospect{}, fmt.Errorf("%w: player slug is required", ErrInvalidInput)
	}

	snapshot, err := s.Board(ctx)
	if err != nil {
		return prospect.Prospect{}, err
	}
	for i := range snapshot.Players {
		if snapshot.Players[i].Slug == slug {
			return snapshot.Players[i], nil
		}
	}
	return prospect.Prospect{}, fmt.Errorf("%w: player slug=%s", ErrNotFound, slug)
}
