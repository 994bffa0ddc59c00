package service

import "errors"

var (
	ErrInvalidDataProvided       = errors.New("invalid data provided")
	ErrInvalidCredentials        = errors.New("invalid username or password")
	ErrTokenIsExpiredOrInvalid   = errors.New("token is expired or invalid")
	ErrRegistrationDisabled      = errors.New("registration is disabled")
	ErrUnknownCreditPackage      = errors.New("unknown credit package")
	ErrPaymentMethodNotAvailable = errors.New("payment method is not available")
	ErrRankingDisabled           = errors.New("ranking is disabled")
	ErrRankingNotReady           = errors.New("ranking snapshot is not ready")
)

// ValidationError carries per-field messages for malformed input.
// It unwraps to ErrInvalidDataProvided so handlers can match it
// with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvalidDataProvided.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDataProvided
}
