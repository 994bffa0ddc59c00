package service

import (
	"context"
	"testing"
	"time"

	"github.com/lorencia/portal/internal/adapter"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn         func(ctx context.Context, user models.User) (models.User, error)
	findByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findByIDFn       func(ctx context.Context, id int64) (models.User, error)
	touchFn          func(ctx context.Context, id int64) error
	addCreditsFn     func(ctx context.Context, id, delta int64) (int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) AddCredits(ctx context.Context, id, delta int64) (int64, error) {
	if m.addCreditsFn != nil {
		return m.addCreditsFn(ctx, id, delta)
	}
	return delta, nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createFn      func(ctx context.Context, id string, userID int64, expiresAt time.Time) (models.Session, error)
	findLiveFn    func(ctx context.Context, id string, userID int64) (models.Session, error)
	deleteFn      func(ctx context.Context, id string) error
	deleteStaleFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) (models.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, id, userID, expiresAt)
	}
	return models.Session{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (m *mockSessionRepository) FindLiveSession(ctx context.Context, id string, userID int64) (models.Session, error) {
	if m.findLiveFn != nil {
		return m.findLiveFn(ctx, id, userID)
	}
	return models.Session{ID: id, UserID: userID}, nil
}

func (m *mockSessionRepository) DeleteSession(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	if m.deleteStaleFn != nil {
		return m.deleteStaleFn(ctx)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.TransactionRepository
// ─────────────────────────────────────────────

type mockTransactionRepository struct {
	createFn          func(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	setPaymentIDFn    func(ctx context.Context, id int64, paymentID string) error
	findByIDFn        func(ctx context.Context, id int64) (models.Transaction, error)
	findByPaymentIDFn func(ctx context.Context, method, paymentID string) (models.Transaction, error)
	findByUserFn      func(ctx context.Context, userID int64) ([]models.Transaction, error)
	completeFn        func(ctx context.Context, id int64, paymentID string) (models.Transaction, error)
}

func (m *mockTransactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tx)
	}
	tx.ID = 1
	tx.Status = models.TransactionPending
	return tx, nil
}

func (m *mockTransactionRepository) SetPaymentID(ctx context.Context, id int64, paymentID string) error {
	if m.setPaymentIDFn != nil {
		return m.setPaymentIDFn(ctx, id, paymentID)
	}
	return nil
}

func (m *mockTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (models.Transaction, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.Transaction{ID: id}, nil
}

func (m *mockTransactionRepository) FindTransactionByPaymentID(ctx context.Context, method, paymentID string) (models.Transaction, error) {
	if m.findByPaymentIDFn != nil {
		return m.findByPaymentIDFn(ctx, method, paymentID)
	}
	return models.Transaction{}, nil
}

func (m *mockTransactionRepository) FindTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTransactionRepository) CompleteTransaction(ctx context.Context, id int64, paymentID string) (models.Transaction, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, id, paymentID)
	}
	return models.Transaction{ID: id, PaymentID: paymentID, Status: models.TransactionCompleted}, nil
}

// ─────────────────────────────────────────────
// Mock: store.NewsRepository
// ─────────────────────────────────────────────

type mockNewsRepository struct {
	listFn   func(ctx context.Context) ([]models.News, error)
	createFn func(ctx context.Context, item models.News) (models.News, error)
	updateFn func(ctx context.Context, item models.News) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockNewsRepository) ListNews(ctx context.Context) ([]models.News, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []models.News{}, nil
}

func (m *mockNewsRepository) CreateNews(ctx context.Context, item models.News) (models.News, error) {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	item.ID = 1
	return item, nil
}

func (m *mockNewsRepository) UpdateNews(ctx context.Context, item models.News) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, item)
	}
	return nil
}

func (m *mockNewsRepository) DeleteNews(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.AdminRepository
// ─────────────────────────────────────────────

type mockAdminRepository struct {
	listUsersFn  func(ctx context.Context, page, limit int, search string) (store.UserPage, error)
	updateUserFn func(ctx context.Context, update store.UserUpdate) error
	statsFn      func(ctx context.Context) (store.AdminStats, error)
}

func (m *mockAdminRepository) ListUsers(ctx context.Context, page, limit int, search string) (store.UserPage, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, page, limit, search)
	}
	return store.UserPage{Users: []models.User{}, Page: page, Limit: limit}, nil
}

func (m *mockAdminRepository) UpdateUser(ctx context.Context, update store.UserUpdate) error {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, update)
	}
	return nil
}

func (m *mockAdminRepository) GetStats(ctx context.Context) (store.AdminStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return store.AdminStats{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.RankingRepository
// ─────────────────────────────────────────────

type mockRankingRepository struct {
	runFn func(ctx context.Context, query string, limit int) ([]models.RankingRow, error)
}

func (m *mockRankingRepository) RunCategoryQuery(ctx context.Context, query string, limit int) ([]models.RankingRow, error) {
	if m.runFn != nil {
		return m.runFn(ctx, query, limit)
	}
	return []models.RankingRow{}, nil
}

// ─────────────────────────────────────────────
// Mock: payment provider clients
// ─────────────────────────────────────────────

type mockPayPalClient struct {
	createOrderFn func(ctx context.Context, transactionID, userID, credits int64, amount float64) (adapter.PayPalOrder, error)
	verifyFn      func(body []byte, transmissionID, timestamp, signature string) bool
}

func (m *mockPayPalClient) CreateOrder(ctx context.Context, transactionID, userID, credits int64, amount float64) (adapter.PayPalOrder, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, transactionID, userID, credits, amount)
	}
	return adapter.PayPalOrder{ID: "ORDER-1", ApproveURL: "https://paypal.test/approve"}, nil
}

func (m *mockPayPalClient) VerifyWebhookSignature(body []byte, transmissionID, timestamp, signature string) bool {
	if m.verifyFn != nil {
		return m.verifyFn(body, transmissionID, timestamp, signature)
	}
	return true
}

type mockMercadoPagoClient struct {
	createPreferenceFn func(ctx context.Context, transactionID, credits int64, amount float64) (adapter.MercadoPagoPreference, error)
	getPaymentFn       func(ctx context.Context, paymentID string) (adapter.MercadoPagoPayment, error)
}

func (m *mockMercadoPagoClient) CreatePreference(ctx context.Context, transactionID, credits int64, amount float64) (adapter.MercadoPagoPreference, error) {
	if m.createPreferenceFn != nil {
		return m.createPreferenceFn(ctx, transactionID, credits, amount)
	}
	return adapter.MercadoPagoPreference{ID: "PREF-1", InitPoint: "https://mercadopago.test/pay"}, nil
}

func (m *mockMercadoPagoClient) GetPayment(ctx context.Context, paymentID string) (adapter.MercadoPagoPayment, error) {
	if m.getPaymentFn != nil {
		return m.getPaymentFn(ctx, paymentID)
	}
	return adapter.MercadoPagoPayment{}, nil
}

// ─────────────────────────────────────────────
// Mock: EmailSender (records sends)
// ─────────────────────────────────────────────

type mockEmailSender struct {
	welcomes      []string
	confirmations []string
}

func (m *mockEmailSender) SendWelcome(ctx context.Context, to, username string) {
	m.welcomes = append(m.welcomes, to)
}

func (m *mockEmailSender) SendPaymentConfirmation(ctx context.Context, to, username string, credits int64, amount float64) {
	m.confirmations = append(m.confirmations, to)
}

// newTestSiteStore returns a site config store backed by a temp directory,
// starting from the built-in defaults.
func newTestSiteStore(t *testing.T) *siteconfig.Store {
	t.Helper()

	site, err := siteconfig.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create site config store: %v", err)
	}
	return site
}
