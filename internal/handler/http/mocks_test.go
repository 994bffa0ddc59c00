package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn     func(ctx context.Context, req service.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, username, password string) (service.LoginResult, error)
	logoutFn       func(ctx context.Context, sessionID string) error
	authenticateFn func(ctx context.Context, tokenString, sessionID string) (models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req service.RegisterRequest) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{ID: 1, Username: req.Username}, nil
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return service.LoginResult{
		User:    models.User{ID: 1, Username: username},
		Token:   models.Token{SignedString: "signed-token"},
		Session: models.Session{ID: "session-1", UserID: 1},
	}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString, sessionID string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, tokenString, sessionID)
	}
	return models.User{}, service.ErrTokenIsExpiredOrInvalid
}

// ─────────────────────────────────────────────
// Mock: service.AccountService
// ─────────────────────────────────────────────

type mockAccountService struct {
	profileFn      func(ctx context.Context, userID int64) (models.User, error)
	charactersFn   func(ctx context.Context, userID int64) ([]models.Character, error)
	transactionsFn func(ctx context.Context, userID int64) ([]models.Transaction, error)
}

func (m *mockAccountService) Profile(ctx context.Context, userID int64) (models.User, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockAccountService) Characters(ctx context.Context, userID int64) ([]models.Character, error) {
	if m.charactersFn != nil {
		return m.charactersFn(ctx, userID)
	}
	return []models.Character{}, nil
}

func (m *mockAccountService) Transactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	if m.transactionsFn != nil {
		return m.transactionsFn(ctx, userID)
	}
	return []models.Transaction{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.PaymentService
// ─────────────────────────────────────────────

type mockPaymentService struct {
	createCheckoutFn func(ctx context.Context, user models.User, packageID, method string) (service.Checkout, error)
	verifyFn         func(body []byte, transmissionID, timestamp, signature string) bool
	paypalFn         func(ctx context.Context, event service.PayPalWebhookEvent) error
	mercadopagoFn    func(ctx context.Context, notificationType, paymentID string) error
}

func (m *mockPaymentService) CreateCheckout(ctx context.Context, user models.User, packageID, method string) (service.Checkout, error) {
	if m.createCheckoutFn != nil {
		return m.createCheckoutFn(ctx, user, packageID, method)
	}
	return service.Checkout{TransactionID: 1, PaymentID: "ORDER-1", RedirectURL: "https://paypal.test/approve"}, nil
}

func (m *mockPaymentService) VerifyPayPalSignature(body []byte, transmissionID, timestamp, signature string) bool {
	if m.verifyFn != nil {
		return m.verifyFn(body, transmissionID, timestamp, signature)
	}
	return true
}

func (m *mockPaymentService) ProcessPayPalWebhook(ctx context.Context, event service.PayPalWebhookEvent) error {
	if m.paypalFn != nil {
		return m.paypalFn(ctx, event)
	}
	return nil
}

func (m *mockPaymentService) ProcessMercadoPagoNotification(ctx context.Context, notificationType, paymentID string) error {
	if m.mercadopagoFn != nil {
		return m.mercadopagoFn(ctx, notificationType, paymentID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.RankingService
// ─────────────────────────────────────────────

type mockRankingService struct {
	getFn      func(ctx context.Context, authenticated bool) (models.Ranking, error)
	generateFn func(ctx context.Context) (models.Ranking, error)
}

func (m *mockRankingService) Get(ctx context.Context, authenticated bool) (models.Ranking, error) {
	if m.getFn != nil {
		return m.getFn(ctx, authenticated)
	}
	return models.Ranking{Data: map[string][]models.RankingRow{}}, nil
}

func (m *mockRankingService) Generate(ctx context.Context) (models.Ranking, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx)
	}
	return models.Ranking{Data: map[string][]models.RankingRow{}}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AdminService
// ─────────────────────────────────────────────

type mockAdminService struct {
	statsFn          func(ctx context.Context) (store.AdminStats, error)
	listNewsFn       func(ctx context.Context) ([]models.News, error)
	createNewsFn     func(ctx context.Context, news models.News) (models.News, error)
	updateNewsFn     func(ctx context.Context, news models.News) error
	deleteNewsFn     func(ctx context.Context, id int64) error
	listUsersFn      func(ctx context.Context, page, perPage int, search string) (store.UserPage, error)
	updateUserFn     func(ctx context.Context, update store.UserUpdate) (models.User, error)
	siteConfigFn     func(ctx context.Context) (siteconfig.Config, error)
	saveSiteConfigFn func(ctx context.Context, section string, raw json.RawMessage) (siteconfig.Config, error)
	initDBFn         func(ctx context.Context) error
}

func (m *mockAdminService) Stats(ctx context.Context) (store.AdminStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return store.AdminStats{}, nil
}

func (m *mockAdminService) ListNews(ctx context.Context) ([]models.News, error) {
	if m.listNewsFn != nil {
		return m.listNewsFn(ctx)
	}
	return []models.News{}, nil
}

func (m *mockAdminService) CreateNews(ctx context.Context, news models.News) (models.News, error) {
	if m.createNewsFn != nil {
		return m.createNewsFn(ctx, news)
	}
	news.ID = 1
	return news, nil
}

func (m *mockAdminService) UpdateNews(ctx context.Context, news models.News) error {
	if m.updateNewsFn != nil {
		return m.updateNewsFn(ctx, news)
	}
	return nil
}

func (m *mockAdminService) DeleteNews(ctx context.Context, id int64) error {
	if m.deleteNewsFn != nil {
		return m.deleteNewsFn(ctx, id)
	}
	return nil
}

func (m *mockAdminService) ListUsers(ctx context.Context, page, perPage int, search string) (store.UserPage, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, page, perPage, search)
	}
	return store.UserPage{Users: []models.User{}}, nil
}

func (m *mockAdminService) UpdateUser(ctx context.Context, update store.UserUpdate) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, update)
	}
	return models.User{ID: update.ID}, nil
}

func (m *mockAdminService) SiteConfig(ctx context.Context) (siteconfig.Config, error) {
	if m.siteConfigFn != nil {
		return m.siteConfigFn(ctx)
	}
	return siteconfig.Defaults(), nil
}

func (m *mockAdminService) SaveSiteConfig(ctx context.Context, section string, raw json.RawMessage) (siteconfig.Config, error) {
	if m.saveSiteConfigFn != nil {
		return m.saveSiteConfigFn(ctx, section, raw)
	}
	return siteconfig.Defaults(), nil
}

func (m *mockAdminService) InitDB(ctx context.Context) error {
	if m.initDBFn != nil {
		return m.initDBFn(ctx)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.EmailSender
// ─────────────────────────────────────────────

type mockEmailSender struct{}

func (mockEmailSender) SendWelcome(ctx context.Context, to, username string) {}

func (mockEmailSender) SendPaymentConfirmation(ctx context.Context, to, username string, credits int64, amount float64) {
}

// ─────────────────────────────────────────────
// Test fixture
// ─────────────────────────────────────────────

type handlerFixture struct {
	auth    *mockAuthService
	account *mockAccountService
	payment *mockPaymentService
	ranking *mockRankingService
	admin   *mockAdminService
	router  *chi.Mux
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		auth:    &mockAuthService{},
		account: &mockAccountService{},
		payment: &mockPaymentService{},
		ranking: &mockRankingService{},
		admin:   &mockAdminService{},
	}

	services := &service.Services{
		AuthService:    f.auth,
		AccountService: f.account,
		PaymentService: f.payment,
		RankingService: f.ranking,
		AdminService:   f.admin,
		EmailSender:    mockEmailSender{},
	}

	f.router = NewHandler(services, time.Hour, false, logger.Nop()).Init()
	return f
}

// asUser wires Authenticate to accept the fixture's session cookies and
// return the given account, and Profile to serve the same account by id.
func (f *handlerFixture) asUser(user models.User) {
	f.auth.authenticateFn = func(ctx context.Context, tokenString, sessionID string) (models.User, error) {
		if tokenString == "signed-token" && sessionID == "session-1" {
			return user, nil
		}
		return models.User{}, service.ErrTokenIsExpiredOrInvalid
	}
	f.account.profileFn = func(ctx context.Context, userID int64) (models.User, error) {
		if userID != user.ID {
			return models.User{}, store.ErrNoUserWasFound
		}
		return user, nil
	}
}

func withSessionCookies(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: authTokenCookie, Value: "signed-token"})
	r.AddCookie(&http.Cookie{Name: sessionIDCookie, Value: "session-1"})
	return r
}
