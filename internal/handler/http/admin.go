package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/internal/utils"
	"github.com/lorencia/portal/models"
)

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.AdminService.Stats(r.Context())
	if err != nil {
		h.respondError(w, r, err, "stats query failed")
		return
	}

	_, _ = utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) adminCreateNews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var news models.News
	if err := json.NewDecoder(r.Body).Decode(&news); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.AdminService.CreateNews(r.Context(), news)
	if err != nil {
		h.respondError(w, r, err, "news creation failed")
		return
	}

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) adminUpdateNews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSONError(w, "invalid news id", http.StatusBadRequest)
		return
	}

	var news models.News
	if err := json.NewDecoder(r.Body).Decode(&news); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	news.ID = id

	if err := h.services.AdminService.UpdateNews(r.Context(), news); err != nil {
		h.respondError(w, r, err, "news update failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"success": true}, http.StatusOK)
}

func (h *Handler) adminDeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSONError(w, "invalid news id", http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.DeleteNews(r.Context(), id); err != nil {
		h.respondError(w, r, err, "news deletion failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"success": true}, http.StatusOK)
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	search := query.Get("search")

	users, err := h.services.AdminService.ListUsers(r.Context(), page, limit, search)
	if err != nil {
		h.respondError(w, r, err, "user listing failed")
		return
	}

	_, _ = utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var update store.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	update.ID = id

	user, err := h.services.AdminService.UpdateUser(r.Context(), update)
	if err != nil {
		h.respondError(w, r, err, "user update failed")
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) adminGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.services.AdminService.SiteConfig(r.Context())
	if err != nil {
		h.respondError(w, r, err, "site config read failed")
		return
	}

	_, _ = utils.WriteJSON(w, cfg, http.StatusOK)
}

func (h *Handler) adminSaveConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	section := chi.URLParam(r, "section")

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	cfg, err := h.services.AdminService.SaveSiteConfig(r.Context(), section, raw)
	if err != nil {
		h.respondError(w, r, err, "site config save failed")
		return
	}

	_, _ = utils.WriteJSON(w, cfg, http.StatusOK)
}

func (h *Handler) adminInitDB(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AdminService.InitDB(r.Context()); err != nil {
		h.respondError(w, r, err, "schema migration failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"success": true, "message": "database initialized"}, http.StatusOK)
}
