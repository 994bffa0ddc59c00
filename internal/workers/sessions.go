package workers

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/store"
)

// SessionPruneWorker deletes expired session rows once an hour so the
// sessions table does not grow without bound.
type SessionPruneWorker struct {
	sessions store.SessionRepository
	logger   *logger.Logger
}

func NewSessionPruneWorker(sessions store.SessionRepository, logger *logger.Logger) *SessionPruneWorker {
	return &SessionPruneWorker{sessions: sessions, logger: logger}
}

func (w *SessionPruneWorker) Run() {
	cronLog := newCronLogger(w.logger)

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
		cron.Recover(cronLog),
	))

	if _, err := c.AddFunc("@every 1h", w.prune); err != nil {
		w.logger.Err(err).Msg("session prune schedule registration failed")
		return
	}

	c.Start()
	w.logger.Info().Msg("session prune worker started")
}

func (w *SessionPruneWorker) prune() {
	ctx := w.logger.WithContext(context.Background())

	deleted, err := w.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		w.logger.Err(err).Msg("expired session cleanup failed")
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	}
}
