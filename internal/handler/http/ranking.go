package http

import (
	"net/http"

	"github.com/lorencia/portal/internal/utils"
)

// getRanking is public: anonymous visitors get the cached snapshot (or the
// unavailable payload), signed-in players additionally trigger an on-the-spot
// generation when no snapshot exists yet.
func (h *Handler) getRanking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString := cookieValue(r, authTokenCookie)
	sessionID := cookieValue(r, sessionIDCookie)

	authenticated := false
	if tokenString != "" && sessionID != "" {
		if _, err := h.services.AuthService.Authenticate(ctx, tokenString, sessionID); err == nil {
			authenticated = true
		}
	}

	ranking, err := h.services.RankingService.Get(ctx, authenticated)
	if err != nil {
		h.respondError(w, r, err, "ranking read failed")
		return
	}

	_, _ = utils.WriteJSON(w, ranking, http.StatusOK)
}

// cronRanking regenerates the snapshot on demand. Exposed for external cron
// services; requires a signed-in caller.
func (h *Handler) cronRanking(w http.ResponseWriter, r *http.Request) {
	if _, err := h.services.RankingService.Generate(r.Context()); err != nil {
		h.respondError(w, r, err, "ranking generation failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"success": true, "message": "ranking updated"}, http.StatusOK)
}
