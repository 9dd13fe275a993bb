package httpapi

import (
	"net/http"
)

// GetDraftData serves the latest merged board snapshot as stored, so the
// response body matches the snapshot uploaded to edge storage.
func (h *Handler) GetDraftData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftData")
	defer span.End()

	snap, err := h.boardService.Board(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft data failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snap)
}

func (h *Handler) GetMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchStats")
	defer span.End()

	snap, err := h.boardService.Board(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get match stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snap.MatchStats)
}

func (h *Handler) GetPlayerBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerBySlug")
	defer span.End()

	slug := r.PathValue("slug")
	player, err := h.boardService.PlayerBySlug(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, player)
}
