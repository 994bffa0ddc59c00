package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

// RankingFileName is the name of the leaderboard snapshot inside the data
// directory.
const RankingFileName = "ranking.json"

// rankingService generates and serves the cached leaderboard snapshot.
//
// The snapshot is a single JSON file under the data directory, rewritten as
// a whole on every generation with a write-temp-then-rename so readers never
// observe a partially written file. Categories are generated independently:
// one failing query logs and drops that category instead of aborting the
// whole run.
type rankingService struct {
	rankingRepository store.RankingRepository

	site   *siteconfig.Store
	path   string
	logger *logger.Logger
}

func NewRankingService(ranking store.RankingRepository, site *siteconfig.Store, dataDir string, logger *logger.Logger) RankingService {
	return &rankingService{
		rankingRepository: ranking,
		site:              site,
		path:              filepath.Join(dataDir, RankingFileName),
		logger:            logger,
	}
}

// Generate runs every configured category query and atomically replaces the
// snapshot file. Returns ErrRankingDisabled when the feature is turned off.
func (r *rankingService) Generate(ctx context.Context) (models.Ranking, error) {
	log := logger.FromContext(ctx)

	cfg := r.site.Snapshot().Ranking
	if !cfg.Enabled {
		return models.Ranking{}, ErrRankingDisabled
	}

	data := make(map[string][]models.RankingRow, len(cfg.Categories))
	for _, category := range cfg.Categories {
		rows, err := r.rankingRepository.RunCategoryQuery(ctx, category.Query, category.Limit)
		if err != nil {
			log.Err(err).Str("category", category.ID).Msg("ranking category query failed")
			continue
		}
		data[category.ID] = rows
	}

	now := time.Now().UTC()
	ranking := models.Ranking{Data: data, LastUpdated: &now}

	if err := r.writeSnapshot(ranking); err != nil {
		log.Err(err).Msg("ranking snapshot write failed")
		return models.Ranking{}, err
	}

	log.Info().Int("categories", len(data)).Msg("ranking snapshot generated")
	return ranking, nil
}

func (r *rankingService) writeSnapshot(ranking models.Ranking) error {
	payload, err := json.MarshalIndent(ranking, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ranking snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), RankingFileName+".*")
	if err != nil {
		return fmt.Errorf("creating ranking temp file: %w", err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ranking snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing ranking temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing ranking snapshot: %w", err)
	}

	return nil
}

// Get serves the current snapshot. When no snapshot exists yet, an
// authenticated caller triggers generation on the spot; an anonymous
// visitor gets an empty payload with the Error field set instead, so the
// public page never forces database work.
func (r *rankingService) Get(ctx context.Context, authenticated bool) (models.Ranking, error) {
	if !r.site.Snapshot().Ranking.Enabled {
		return models.Ranking{}, ErrRankingDisabled
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		if authenticated {
			return r.Generate(ctx)
		}
		return models.Ranking{Data: map[string][]models.RankingRow{}, Error: "ranking data not available"}, nil
	}
	if err != nil {
		return models.Ranking{}, fmt.Errorf("reading ranking snapshot: %w", err)
	}

	var ranking models.Ranking
	if err := json.Unmarshal(data, &ranking); err != nil {
		return models.Ranking{}, fmt.Errorf("decoding ranking snapshot: %w", err)
	}

	return ranking, nil
}
