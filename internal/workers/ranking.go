package workers

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/internal/siteconfig"
)

// RankingWorker regenerates the leaderboard snapshot on the interval set in
// the site config.
//
// The cron entry ticks every minute and compares the elapsed time against
// the configured interval, so admin changes to updateInterval or enabled
// take effect without a restart. Panics and errors inside a run are
// confined to that run: the schedule itself always survives.
type RankingWorker struct {
	ranking service.RankingService
	site    *siteconfig.Store
	logger  *logger.Logger

	mu      sync.Mutex
	lastRun time.Time
}

func NewRankingWorker(ranking service.RankingService, site *siteconfig.Store, logger *logger.Logger) *RankingWorker {
	return &RankingWorker{
		ranking: ranking,
		site:    site,
		logger:  logger,
	}
}

func (w *RankingWorker) Run() {
	cronLog := newCronLogger(w.logger)

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
		cron.Recover(cronLog),
	))

	if _, err := c.AddFunc("@every 1m", w.tick); err != nil {
		w.logger.Err(err).Msg("ranking schedule registration failed")
		return
	}

	c.Start()
	w.logger.Info().Msg("ranking worker started")
}

func (w *RankingWorker) tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg := w.site.Snapshot().Ranking
	if !cfg.Enabled {
		return
	}

	interval := time.Duration(cfg.UpdateInterval) * time.Minute
	if !w.lastRun.IsZero() && time.Since(w.lastRun) < interval {
		return
	}

	ctx := w.logger.WithContext(context.Background())
	if _, err := w.ranking.Generate(ctx); err != nil {
		w.logger.Err(err).Msg("scheduled ranking generation failed")
		return
	}

	w.lastRun = time.Now()
}
