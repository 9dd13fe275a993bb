package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/platform/logging"
)

func TestBoardService_Board(t *testing.T) {
	repo := &fakeBoardRepo{}
	svc := NewBoardService(repo, logging.NewNop())

	if _, err := svc.Board(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty store: expected ErrNotFound, got %v", err)
	}

	_ = repo.SaveSnapshot(context.Background(), prospect.Snapshot{
		Players: []prospect.Prospect{{ID: "player_cooper-flagg", Slug: "cooper-flagg", Name: "Cooper Flagg"}},
	})

	snapshot, err := svc.Board(context.Background())
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(snapshot.Players) != 1 {
		t.Fatalf("players = %+v", snapshot.Players)
	}
}

func TestBoardService_PlayerBySlug(t *testing.T) {
	repo := &fakeBoardRepo{}
	_ = repo.SaveSnapshot(context.Background(), prospect.Snapshot{
		Players: []prospect.Prospect{
			{ID: "player_cooper-flagg", Slug: "cooper-flagg", Name: "Cooper Flagg"},
			{ID: "player_dylan-harper", Slug: "dylan-harper", Name: "Dylan Harper"},
		},
	})
	svc := NewBoardService(repo, logging.NewNop())

	player, err := svc.PlayerBySlug(context.Background(), "Dylan-Harper")
	if err != nil {
		t.Fatalf("PlayerBySlug: %v", err)
	}
	if player.Name != "Dylan Harper" {
		t.Fatalf("player = %+v", player)
	}

	if _, err := svc.PlayerBySlug(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.PlayerBySlug(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
