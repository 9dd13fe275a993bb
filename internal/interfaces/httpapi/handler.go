package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hoopboard/draftboard/internal/platform/logging"
	"github.com/hoopboard/draftboard/internal/usecase"
)

// JobDispatcher hands a job off to the external queue for delayed delivery
// back to this API.
type JobDispatcher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type Handler struct {
	boardService   *usecase.BoardService
	refreshService *usecase.RefreshService
	dispatcher     JobDispatcher
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	boardService *usecase.BoardService,
	refreshService *usecase.RefreshService,
	dispatcher JobDispatcher,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		boardService:   boardService,
		refreshService: refreshService,
		dispatcher:     dispatcher,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
