// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HMAC hashing,
// HTTP response writing, JWT token generation and validation, and session id
// generation.
package utils

import (
	"context"

	"github.com/lorencia/portal/models"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents key collisions with other packages that
// may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthUserCtxKey is the key under which the auth middleware stores the
// authenticated user for the duration of a request.
var AuthUserCtxKey = contextKey("authUser")

// WithAuthUser returns a copy of ctx carrying the authenticated user.
func WithAuthUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, AuthUserCtxKey, user)
}

// GetAuthUserFromContext retrieves the authenticated user from the context.
//
// Returns the user and an ok flag:
//   - ok == true  — a user was stored by the auth middleware
//   - ok == false — the request is unauthenticated
func GetAuthUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(AuthUserCtxKey).(models.User)
	return user, ok
}
