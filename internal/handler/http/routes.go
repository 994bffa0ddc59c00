package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/auth", h.login)
		r.Delete("/api/auth", h.logout)

		r.Get("/api/news", h.listNews)
		r.Get("/api/downloads", h.listDownloads)
		r.Get("/api/ranking", h.getRanking)

		r.Post("/api/payments/paypal/webhook", h.paypalWebhook)
		r.Post("/api/payments/mercadopago/webhook", h.mercadopagoWebhook)
	})

	// routes for signed-in players
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/me", h.me)
		r.Get("/api/characters", h.listCharacters)
		r.Get("/api/transactions", h.listTransactions)

		r.Post("/api/payments", h.createPayment)

		r.Get("/api/cron/ranking", h.cronRanking)
	})

	// routes for administrators
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.admin)

		r.Get("/api/admin/stats", h.adminStats)

		r.Post("/api/admin/news", h.adminCreateNews)
		r.Put("/api/admin/news/{id}", h.adminUpdateNews)
		r.Delete("/api/admin/news/{id}", h.adminDeleteNews)

		r.Get("/api/admin/users", h.adminListUsers)
		r.Patch("/api/admin/users/{id}", h.adminUpdateUser)

		r.Get("/api/admin/config", h.adminGetConfig)
		r.Put("/api/admin/config/{section}", h.adminSaveConfig)

		r.Post("/api/admin/init-db", h.adminInitDB)
	})

	return router
}
