package store

import (
	"context"
	"fmt"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// characterRepository reads game characters for the dashboard. Characters
// are created by the game server, never by the portal.
type characterRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCharacterRepository(db *DB, logger *logger.Logger) CharacterRepository {
	logger.Debug().Msg("creating character repository")
	return &characterRepository{
		db:     db,
		logger: logger,
	}
}

// FindCharactersByUser lists the user's characters, highest level first.
func (r *characterRepository) FindCharactersByUser(ctx context.Context, userID int64) ([]models.Character, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findCharactersByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*characterRepository.FindCharactersByUser").Msg("error querying characters")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	characters := make([]models.Character, 0)
	for rows.Next() {
		var c models.Character
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Class, &c.Level, &c.Experience, &c.Resets, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return characters, nil
}
