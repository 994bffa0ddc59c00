package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, last-login bookkeeping and credit
// balance mutation against the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (ID, Role, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the username key →
//     [ErrUsernameAlreadyExists]; on the email key → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.PasswordHash, user.SecurityQuestion, user.SecurityAnswer)

	created := user
	err := row.Scan(&created.ID, &created.Username, &created.Email, &created.Role, &created.Credits, &created.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			if strings.Contains(err.Error(), "email") {
				return models.User{}, ErrEmailAlreadyExists
			}
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByUsername retrieves an account by its exact username.
//
// Returns [ErrNoUserWasFound] when no account matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.scanUser(ctx, findUserByUsername, username)
}

// FindUserByID retrieves an account by its internal id.
//
// Returns [ErrNoUserWasFound] when no account matches.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.scanUser(ctx, findUserByID, id)
}

func (r *userRepository) scanUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.SecurityQuestion, &user.SecurityAnswer, &user.Role, &user.Credits,
		&user.CreatedAt, &user.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.scanUser").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// TouchLastLogin stamps the account's last_login with the database clock.
func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, touchLastLogin, id); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}

// AddCredits atomically increments the account's credit balance by delta and
// returns the new balance.
//
// Returns [ErrNoUserWasFound] when the account does not exist.
func (r *userRepository) AddCredits(ctx context.Context, id int64, delta int64) (int64, error) {
	log := logger.FromContext(ctx)

	var balance int64
	err := r.db.QueryRowContext(ctx, addUserCredits, id, delta).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AddCredits").Int64("user_id", id).Msg("error adding credits")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return balance, nil
}
