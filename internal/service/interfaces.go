package service

import (
	"context"
	"encoding/json"

	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, tokenString, sessionID string) (models.User, error)
}

type AccountService interface {
	Profile(ctx context.Context, userID int64) (models.User, error)
	Characters(ctx context.Context, userID int64) ([]models.Character, error)
	Transactions(ctx context.Context, userID int64) ([]models.Transaction, error)
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, user models.User, packageID, method string) (Checkout, error)
	VerifyPayPalSignature(body []byte, transmissionID, timestamp, signature string) bool
	ProcessPayPalWebhook(ctx context.Context, event PayPalWebhookEvent) error
	ProcessMercadoPagoNotification(ctx context.Context, notificationType, paymentID string) error
}

type RankingService interface {
	Get(ctx context.Context, authenticated bool) (models.Ranking, error)
	Generate(ctx context.Context) (models.Ranking, error)
}

type AdminService interface {
	Stats(ctx context.Context) (store.AdminStats, error)
	ListNews(ctx context.Context) ([]models.News, error)
	CreateNews(ctx context.Context, news models.News) (models.News, error)
	UpdateNews(ctx context.Context, news models.News) error
	DeleteNews(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, page, perPage int, search string) (store.UserPage, error)
	UpdateUser(ctx context.Context, update store.UserUpdate) (models.User, error)
	SiteConfig(ctx context.Context) (siteconfig.Config, error)
	SaveSiteConfig(ctx context.Context, section string, raw json.RawMessage) (siteconfig.Config, error)
	InitDB(ctx context.Context) error
}

// EmailSender delivers transactional mail. Sends are best effort:
// implementations log failures instead of propagating them, so a broken
// SMTP relay never fails registration or payment processing.
type EmailSender interface {
	SendWelcome(ctx context.Context, to, username string)
	SendPaymentConfirmation(ctx context.Context, to, username string, credits int64, amount float64)
}
