package service

import (
	"github.com/lorencia/portal/internal/adapter"
	"github.com/lorencia/portal/internal/config"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
	PaymentService PaymentService
	RankingService RankingService
	AdminService   AdminService
	EmailSender    EmailSender
}

func NewServices(storages *store.Storages, db *store.DB, site *siteconfig.Store, paypal adapter.PayPalClient, mercadopago adapter.MercadoPagoClient, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	email := NewMailSender(cfg.Email, site, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.SessionRepository, site, email, cfg.Auth, logger),
		AccountService: NewAccountService(storages.UserRepository, storages.CharacterRepository, storages.TransactionRepository, logger),
		PaymentService: NewPaymentService(storages.UserRepository, storages.TransactionRepository, paypal, mercadopago, site, email, logger),
		RankingService: NewRankingService(storages.RankingRepository, site, cfg.Storage.DataDir, logger),
		AdminService:   NewAdminService(storages.UserRepository, storages.NewsRepository, storages.AdminRepository, db, site, logger),
		EmailSender:    email,
	}
}
