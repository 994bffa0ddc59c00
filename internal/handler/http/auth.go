package http

import (
	"encoding/json"
	"net/http"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/internal/utils"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		h.respondError(w, r, err, "user registration failed")
		return
	}

	log.Info().Int64("id", registeredUser.ID).Str("username", registeredUser.Username).Msg("user registered")

	_, _ = utils.WriteJSON(w, map[string]any{"success": true}, http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err, "login failed")
		return
	}

	log.Debug().Int64("id", result.User.ID).Msg("user successfully logged in")

	h.setSessionCookies(w, result.Token, result.Session)

	_, _ = utils.WriteJSON(w, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":       result.User.ID,
			"username": result.User.Username,
		},
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.AuthService.Logout(ctx, cookieValue(r, sessionIDCookie)); err != nil {
		log.Err(err).Msg("session deletion failed")
	}

	h.clearSessionCookies(w)

	_, _ = utils.WriteJSON(w, map[string]any{"success": true}, http.StatusOK)
}
