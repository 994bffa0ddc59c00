package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Sessions give the signed auth token a server-side
// kill switch: logout deletes the row and the token stops authenticating
// even before it expires.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session record with the given opaque id and
// expiry and returns it with server-assigned timestamps.
func (r *sessionRepository) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, createSession, id, userID, expiresAt)
	if err := row.Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error creating session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// FindLiveSession retrieves the session with the given id belonging to the
// given user, provided it has not expired.
//
// Returns [ErrNoSessionWasFound] when no live session matches; an expired
// row is indistinguishable from a missing one by design.
func (r *sessionRepository) FindLiveSession(ctx context.Context, id string, userID int64) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findLiveSession, id, userID)

	err := row.Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNoSessionWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindLiveSession").Msg("error scanning session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// DeleteSession removes the session record. Deleting a non-existent session
// is not an error so logout stays idempotent.
func (r *sessionRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSession, id); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}

// DeleteExpiredSessions prunes all rows past their expiry and reports how
// many were removed. Run periodically by the maintenance job.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessions)
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return n, nil
}
