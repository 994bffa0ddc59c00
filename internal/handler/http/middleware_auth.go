// Package http implements the HTTP transport layer of the portal.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, admin gating, tracing and logging are
// all handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"net/http"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based authentication.
//
// It reads the "auth-token" and "session-id" cookies and validates the pair
// via [service.AuthService.Authenticate]: the JWT must verify and the
// server-side session row must be alive. On success the full user record is
// stored in the request context under [utils.AuthUserCtxKey] before
// delegating to the next handler.
//
// The middleware fails closed: any missing cookie, invalid or expired token,
// revoked session, or missing account rejects the request with HTTP 401.
// Validation re-runs on every request; nothing is cached between requests,
// so a deleted session or account takes effect immediately.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		tokenString := cookieValue(r, authTokenCookie)
		sessionID := cookieValue(r, sessionIDCookie)

		user, err := h.services.AuthService.Authenticate(ctx, tokenString, sessionID)
		if err != nil {
			log.Err(err).Msg("authentication failed")
			utils.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithAuthUser(ctx, user)))
	})
}

// admin gates a route group to administrator accounts. Must be mounted
// after auth.
func (h *Handler) admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, ok := utils.GetAuthUserFromContext(r.Context())
		if !ok {
			utils.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		if !user.IsAdmin() {
			log.Error().Int64("userID", user.ID).Str("role", user.Role).Msg("admin route denied")
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
