package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// newsRepository manages front-page announcements.
type newsRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewNewsRepository(db *DB, logger *logger.Logger) NewsRepository {
	logger.Debug().Msg("creating news repository")
	return &newsRepository{
		db:     db,
		logger: logger,
	}
}

// ListNews returns all announcements, newest first.
func (r *newsRepository) ListNews(ctx context.Context) ([]models.News, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listNews)
	if err != nil {
		log.Err(err).Str("func", "*newsRepository.ListNews").Msg("error querying news")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.News, 0)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}

// CreateNews persists a new announcement and returns it with
// server-assigned fields.
func (r *newsRepository) CreateNews(ctx context.Context, item models.News) (models.News, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createNews,
		item.Title, item.Content, nullString(item.ImageURL), nullString(item.Author))

	created, err := scanNews(row)
	if err != nil {
		log.Err(err).Str("func", "*newsRepository.CreateNews").Msg("error creating news")
		return models.News{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// UpdateNews replaces the title, content and image of an announcement.
//
// Returns [ErrNoNewsWasFound] when the id does not exist.
func (r *newsRepository) UpdateNews(ctx context.Context, item models.News) error {
	res, err := r.db.ExecContext(ctx, updateNews, item.ID, item.Title, item.Content, nullString(item.ImageURL))
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if n == 0 {
		return ErrNoNewsWasFound
	}
	return nil
}

// DeleteNews removes an announcement.
//
// Returns [ErrNoNewsWasFound] when the id does not exist.
func (r *newsRepository) DeleteNews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteNews, id)
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if n == 0 {
		return ErrNoNewsWasFound
	}
	return nil
}

func scanNews(s scanner) (models.News, error) {
	var item models.News
	var imageURL, author sql.NullString

	if err := s.Scan(&item.ID, &item.Title, &item.Content, &imageURL, &author, &item.CreatedAt); err != nil {
		return models.News{}, err
	}
	item.ImageURL = imageURL.String
	item.Author = author.String
	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
