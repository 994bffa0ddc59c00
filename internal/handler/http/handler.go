package http

import (
	"net/http"
	"time"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/models"
)

// Cookie names of the dual session pair. The JWT proves who the caller is,
// the session id points at the revocable server-side session row; the auth
// middleware requires both.
const (
	authTokenCookie = "auth-token"
	sessionIDCookie = "session-id"
)

type Handler struct {
	services *service.Services

	sessionDuration time.Duration
	secureCookies   bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessionDuration time.Duration, secureCookies bool, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		sessionDuration: sessionDuration,
		secureCookies:   secureCookies,
		logger:          logger,
	}
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, token models.Token, session models.Session) {
	maxAge := int(h.sessionDuration.Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookie,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{authTokenCookie, sessionIDCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// cookieValue returns the named cookie's value or "" when absent.
func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
