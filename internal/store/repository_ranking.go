package store

import (
	"context"
	"fmt"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// rankingRepository executes the admin-configured leaderboard queries. The
// queries are trusted operator input (edited through the admin config form),
// so they run verbatim with only the row cap appended as a parameter.
type rankingRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewRankingRepository(db *DB, logger *logger.Logger) RankingRepository {
	logger.Debug().Msg("creating ranking repository")
	return &rankingRepository{
		db:     db,
		logger: logger,
	}
}

// RunCategoryQuery executes one category query with the given row cap and
// returns the rows as column/value maps, preserving whatever columns the
// operator selected. An empty result set yields an empty, non-nil slice.
func (r *rankingRepository) RunCategoryQuery(ctx context.Context, query string, limit int) ([]models.RankingRow, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("%s LIMIT %d", query, limit))
	if err != nil {
		log.Err(err).Str("func", "*rankingRepository.RunCategoryQuery").Msg("error running ranking query")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	result := make([]models.RankingRow, 0)
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}

		row := make(models.RankingRow, len(columns))
		for i, col := range columns {
			v := values[i]
			// Text columns surface as []byte through database/sql.
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result, nil
}
