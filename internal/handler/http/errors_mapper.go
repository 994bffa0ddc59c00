package http

import (
	"errors"
	"net/http"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:       http.StatusBadRequest,
	service.ErrInvalidCredentials:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:   http.StatusUnauthorized,
	service.ErrRegistrationDisabled:      http.StatusForbidden,
	service.ErrUnknownCreditPackage:      http.StatusBadRequest,
	service.ErrPaymentMethodNotAvailable: http.StatusBadRequest,
	service.ErrRankingDisabled:           http.StatusNotFound,
	service.ErrRankingNotReady:           http.StatusNotFound,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrNoSessionWasFound:     http.StatusUnauthorized,
	store.ErrNoTransactionWasFound: http.StatusNotFound,
	store.ErrNoNewsWasFound:        http.StatusNotFound,
	store.ErrNothingToUpdate:       http.StatusBadRequest,
	siteconfig.ErrUnknownSection:   http.StatusNotFound,
	siteconfig.ErrInvalidSection:   http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes a JSON error payload. Messages are taken
// from the matched sentinel so internal errors never leak details.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), status)
		return
	}

	log.Err(err).Msg(msg)

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		_, _ = utils.WriteJSON(w, map[string]any{
			"error":   "validation failed",
			"details": validation.Fields,
		}, status)
		return
	}

	for target := range errorStatusMap {
		if errors.Is(err, target) {
			utils.WriteJSONError(w, target.Error(), status)
			return
		}
	}
	utils.WriteJSONError(w, http.StatusText(status), status)
}
