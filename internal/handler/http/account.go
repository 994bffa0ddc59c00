package http

import (
	"net/http"

	"github.com/lorencia/portal/internal/utils"
)

// me serves the signed-in player's profile. The account row is re-read
// through the account service so the credits balance reflects purchases
// settled after login.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	profile, err := h.services.AccountService.Profile(ctx, user.ID)
	if err != nil {
		h.respondError(w, r, err, "profile lookup failed")
		return
	}

	_, _ = utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	characters, err := h.services.AccountService.Characters(ctx, user.ID)
	if err != nil {
		h.respondError(w, r, err, "character listing failed")
		return
	}

	_, _ = utils.WriteJSON(w, characters, http.StatusOK)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	transactions, err := h.services.AccountService.Transactions(ctx, user.ID)
	if err != nil {
		h.respondError(w, r, err, "transaction listing failed")
		return
	}

	_, _ = utils.WriteJSON(w, transactions, http.StatusOK)
}

func (h *Handler) listNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.services.AdminService.ListNews(r.Context())
	if err != nil {
		h.respondError(w, r, err, "news listing failed")
		return
	}

	_, _ = utils.WriteJSON(w, news, http.StatusOK)
}

// listDownloads serves the downloads section of the site config: file list
// plus system requirement tables.
func (h *Handler) listDownloads(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.services.AdminService.SiteConfig(r.Context())
	if err != nil {
		h.respondError(w, r, err, "site config read failed")
		return
	}

	_, _ = utils.WriteJSON(w, cfg.Downloads, http.StatusOK)
}
