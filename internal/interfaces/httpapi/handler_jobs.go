package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/hoopboard/draftboard/internal/usecase"
)

type refreshJobRequest struct {
	// Year selects the statistics season; zero uses the configured default.
	Year int `json:"year" validate:"omitempty,gte=2008,lte=2100"`
}

type refreshJobResultDTO struct {
	Players                int       `json:"players"`
	Matched                int       `json:"matched"`
	Unmatched              int       `json:"unmatched"`
	International          int       `json:"international"`
	InternationalWithStats int       `json:"internationalWithStats"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := h.decodeRefreshJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.refreshService.RefreshSeason(ctx, req.Year)
	if err != nil {
		h.logger.WarnContext(ctx, "run refresh job failed", "year", req.Year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshJobResultDTO{
		Players:                snapshot.MatchStats.Total,
		Matched:                snapshot.MatchStats.Matched,
		Unmatched:              snapshot.MatchStats.Unmatched,
		International:          snapshot.MatchStats.International,
		InternationalWithStats: snapshot.MatchStats.InternationalWithStats,
		UpdatedAt:              snapshot.UpdatedAt,
	})
}

type scheduleRefreshRequest struct {
	Year         int `json:"year" validate:"omitempty,gte=2008,lte=2100"`
	DelaySeconds int `json:"delaySeconds" validate:"omitempty,gte=0,lte=86400"`
}

type scheduleRefreshResultDTO struct {
	Scheduled       bool   `json:"scheduled"`
	Year            int    `json:"year,omitempty"`
	DelaySeconds    int    `json:"delaySeconds,omitempty"`
	DeduplicationID string `json:"deduplicationId"`
}

// ScheduleRefreshJob enqueues a refresh run through the job queue instead of
// executing it inline. The queue delivers it back to RunRefreshJob.
func (h *Handler) ScheduleRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScheduleRefreshJob")
	defer span.End()

	if h.dispatcher == nil {
		writeError(ctx, w, fmt.Errorf("%w: job queue is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := h.decodeScheduleRefreshRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dedupID := "refresh-default"
	if req.Year > 0 {
		dedupID = fmt.Sprintf("refresh-%d", req.Year)
	}

	delay := time.Duration(req.DelaySeconds) * time.Second
	payload := refreshJobRequest{Year: req.Year}

	if err := h.dispatcher.Enqueue(ctx, "/internal/jobs/refresh", payload, delay, dedupID); err != nil {
		h.logger.WarnContext(ctx, "schedule refresh job failed", "year", req.Year, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: enqueue refresh job: %v", usecase.ErrDependencyUnavailable, err))
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, scheduleRefreshResultDTO{
		Scheduled:       true,
		Year:            req.Year,
		DelaySeconds:    req.DelaySeconds,
		DeduplicationID: dedupID,
	})
}

func (h *Handler) decodeScheduleRefreshRequest(r *http.Request) (scheduleRefreshRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req scheduleRefreshRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return scheduleRefreshRequest{}, nil
		}
		return scheduleRefreshRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return scheduleRefreshRequest{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func (h *Handler) decodeRefreshJobRequest(r *http.Request) (refreshJobRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req refreshJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return refreshJobRequest{}, nil
		}
		return refreshJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return refreshJobRequest{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
