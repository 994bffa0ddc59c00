package store

import (
	"context"
	"time"

	"github.com/lorencia/portal/models"
)

// UserRepository persists game accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	AddCredits(ctx context.Context, id int64, delta int64) (int64, error)
}

// SessionRepository persists server-side session records.
type SessionRepository interface {
	CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) (models.Session, error)
	FindLiveSession(ctx context.Context, id string, userID int64) (models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// CharacterRepository reads game characters for the dashboard.
type CharacterRepository interface {
	FindCharactersByUser(ctx context.Context, userID int64) ([]models.Character, error)
}

// TransactionRepository persists credits purchases.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	SetPaymentID(ctx context.Context, id int64, paymentID string) error
	FindTransactionByID(ctx context.Context, id int64) (models.Transaction, error)
	FindTransactionByPaymentID(ctx context.Context, method, paymentID string) (models.Transaction, error)
	FindTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	CompleteTransaction(ctx context.Context, id int64, paymentID string) (models.Transaction, error)
}

// NewsRepository persists front-page announcements.
type NewsRepository interface {
	ListNews(ctx context.Context) ([]models.News, error)
	CreateNews(ctx context.Context, item models.News) (models.News, error)
	UpdateNews(ctx context.Context, item models.News) error
	DeleteNews(ctx context.Context, id int64) error
}

// AdminRepository serves back-office listings, partial updates and stats.
type AdminRepository interface {
	ListUsers(ctx context.Context, page, limit int, search string) (UserPage, error)
	UpdateUser(ctx context.Context, update UserUpdate) error
	GetStats(ctx context.Context) (AdminStats, error)
}

// RankingRepository executes the configured leaderboard queries.
type RankingRepository interface {
	RunCategoryQuery(ctx context.Context, query string, limit int) ([]models.RankingRow, error)
}
