package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/infrastructure/repository/memory"
	"github.com/hoopboard/draftboard/internal/platform/logging"
	"github.com/hoopboard/draftboard/internal/usecase"
)

func testRouter(t *testing.T, repo prospect.Repository, jobToken string) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	handler := NewHandler(usecase.NewBoardService(repo, logger), nil, nil, logger)
	return NewRouter(handler, logger, false, []string{"*"}, jobToken)
}

func testSnapshot() prospect.Snapshot {
	rank := 1
	return prospect.Snapshot{
		Players: []prospect.Prospect{
			{
				ID:            prospect.PlayerID("cooper-flagg"),
				Name:          "Cooper Flagg",
				Slug:          "cooper-flagg",
				TankathonRank: &rank,
				ConsensusRank: 1,
				Position:      "SF",
				School:        "Duke",
			},
		},
		MatchStats: prospect.MatchStats{Total: 1, Matched: 1},
		UpdatedAt:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetDraftData_NoSnapshot(t *testing.T) {
	router := testRouter(t, memory.NewBoardRepository(), "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/draft-data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetDraftData_ServesLatestSnapshot(t *testing.T) {
	repo := memory.NewBoardRepository()
	if err := repo.SaveSnapshot(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	router := testRouter(t, repo, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/draft-data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data prospect.Snapshot `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if len(body.Data.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(body.Data.Players))
	}
	if body.Data.Players[0].Slug != "cooper-flagg" {
		t.Fatalf("unexpected player slug %q", body.Data.Players[0].Slug)
	}
	if body.Data.MatchStats.Total != 1 {
		t.Fatalf("expected matchStats total 1, got %d", body.Data.MatchStats.Total)
	}
}

func TestGetPlayerBySlug(t *testing.T) {
	repo := memory.NewBoardRepository()
	if err := repo.SaveSnapshot(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	router := testRouter(t, repo, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/players/Cooper-Flagg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"player_cooper-flagg"`) {
		t.Fatalf("expected player id in body, got %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/players/nobody", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRunRefreshJob_TokenGate(t *testing.T) {
	router := testRouter(t, memory.NewBoardRepository(), "secret")

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/refresh", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with wrong token, got %d", rec.Code)
	}

	// Correct token but no refresh service wired.
	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/refresh", nil)
	req.Header.Set("X-Internal-Job-Token", "secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without refresh service, got %d", rec.Code)
	}
}

func TestRunRefreshJob_InvalidYear(t *testing.T) {
	logger := logging.NewNop()
	handler := NewHandler(usecase.NewBoardService(memory.NewBoardRepository(), logger), nil, nil, logger)

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/refresh", strings.NewReader(`{"year":1990}`))
	if _, err := handler.decodeRefreshJobRequest(req); err == nil {
		t.Fatalf("expected validation error for year 1990")
	}

	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/refresh", strings.NewReader(`{"unknown":true}`))
	if _, err := handler.decodeRefreshJobRequest(req); err == nil {
		t.Fatalf("expected decode error for unknown field")
	}
}
