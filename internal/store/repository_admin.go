package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/models"
)

// UserPage is one page of the admin user listing.
type UserPage struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"totalPages"`
}

// UserUpdate carries the optional fields of an admin partial user update.
// Nil pointers mean "leave unchanged".
type UserUpdate struct {
	ID      int64   `json:"-"`
	Email   *string `json:"email"`
	Role    *string `json:"role"`
	Credits *int64  `json:"credits"`
}

// AdminStats aggregates the figures shown on the admin dashboard.
type AdminStats struct {
	TotalUsers         int64               `json:"totalUsers"`
	ActiveUsers        int64               `json:"activeUsers"`
	TotalCharacters    int64               `json:"totalCharacters"`
	TotalTransactions  int64               `json:"totalTransactions"`
	TotalCreditsSold   int64               `json:"totalCredits"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

// RecentTransaction is a transaction row joined with its owner's username
// for the dashboard's recent-activity list.
type RecentTransaction struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Credits   int64     `json:"credits"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

// adminRepository serves the back-office queries that need dynamic SQL:
// paginated user search and partial user updates. Queries are built with
// squirrel so the WHERE and SET clauses grow only from supplied fields.
type adminRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

func NewAdminRepository(db *DB, logger *logger.Logger) AdminRepository {
	logger.Debug().Msg("creating admin repository")
	return &adminRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListUsers returns one page of accounts ordered by creation date, newest
// first. A non-empty search matches username or email as a substring.
func (r *adminRepository) ListUsers(ctx context.Context, page, limit int, search string) (UserPage, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sel := r.builder.
		Select("id", "username", "email", "role", "credits", "created_at", "last_login").
		From("users")
	count := r.builder.Select("COUNT(*)").From("users")

	if search != "" {
		like := sq.Or{
			sq.ILike{"username": "%" + search + "%"},
			sq.ILike{"email": "%" + search + "%"},
		}
		sel = sel.Where(like)
		count = count.Where(like)
	}

	sel = sel.OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	query, args, err := sel.ToSql()
	if err != nil {
		return UserPage{}, fmt.Errorf("building user listing query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.ListUsers").Msg("error querying users")
		return UserPage{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.Credits, &u.CreatedAt, &u.LastLogin); err != nil {
			return UserPage{}, fmt.Errorf("unexpected DB error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return UserPage{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	countQuery, countArgs, err := count.ToSql()
	if err != nil {
		return UserPage{}, fmt.Errorf("building user count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return UserPage{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateUser applies the non-nil fields of update to the account.
//
// Error handling:
//   - no fields supplied → [ErrNothingToUpdate]
//   - email already used by another account → [ErrEmailAlreadyExists]
//   - unknown id → [ErrNoUserWasFound]
func (r *adminRepository) UpdateUser(ctx context.Context, update UserUpdate) error {
	log := logger.FromContext(ctx)

	if update.Email != nil {
		var otherID int64
		err := r.db.QueryRowContext(ctx, findUserIDByEmailOthers, *update.Email, update.ID).Scan(&otherID)
		if err == nil {
			return ErrEmailAlreadyExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	upd := r.builder.Update("users")
	fields := 0
	if update.Email != nil {
		upd = upd.Set("email", *update.Email)
		fields++
	}
	if update.Role != nil {
		upd = upd.Set("role", *update.Role)
		fields++
	}
	if update.Credits != nil {
		upd = upd.Set("credits", *update.Credits)
		fields++
	}
	if fields == 0 {
		return ErrNothingToUpdate
	}

	query, args, err := upd.Where(sq.Eq{"id": update.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("building user update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.UpdateUser").Int64("id", update.ID).Msg("error updating user")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if n == 0 {
		return ErrNoUserWasFound
	}
	return nil
}

// GetStats gathers the dashboard aggregates in a single round of queries.
func (r *adminRepository) GetStats(ctx context.Context) (AdminStats, error) {
	log := logger.FromContext(ctx)

	var stats AdminStats
	counts := []struct {
		query string
		dst   *int64
	}{
		{countUsers, &stats.TotalUsers},
		{countActiveUsers, &stats.ActiveUsers},
		{countCharacters, &stats.TotalCharacters},
		{countTransactions, &stats.TotalTransactions},
		{sumCompletedCredits, &stats.TotalCreditsSold},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			log.Err(err).Str("func", "*adminRepository.GetStats").Msg("error querying stats")
			return AdminStats{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	rows, err := r.db.QueryContext(ctx, findRecentTransactions, 5)
	if err != nil {
		return AdminStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	stats.RecentTransactions = make([]RecentTransaction, 0, 5)
	for rows.Next() {
		var t RecentTransaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Credits, &t.Status, &t.CreatedAt, &t.Username); err != nil {
			return AdminStats{}, fmt.Errorf("unexpected DB error: %w", err)
		}
		stats.RecentTransactions = append(stats.RecentTransactions, t)
	}
	if err := rows.Err(); err != nil {
		return AdminStats{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stats, nil
}
