package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when registration fails because
	// an account with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when registration or an admin edit
	// fails because another account already uses the email address.
	ErrEmailAlreadyExists = errors.New("email already in use")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoSessionWasFound is returned when a session lookup by id matches
	// no live record (missing or expired).
	ErrNoSessionWasFound = errors.New("no session was found")

	// ErrNoTransactionWasFound is returned when a transaction lookup by id
	// or provider payment reference matches no record.
	ErrNoTransactionWasFound = errors.New("no transaction was found")

	// ErrTransactionNotPending is returned by CompleteTransaction when the
	// targeted transaction exists but is no longer pending, meaning the
	// payment notification was already processed.
	ErrTransactionNotPending = errors.New("transaction is not pending")

	// ErrNoNewsWasFound is returned when a news update or delete targets an
	// id that does not exist.
	ErrNoNewsWasFound = errors.New("no news entry was found")

	// ErrNothingToUpdate is returned when a partial update request carries
	// no fields to change.
	ErrNothingToUpdate = errors.New("nothing to update")
)
