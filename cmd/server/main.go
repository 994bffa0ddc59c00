package main

import (
	"context"
	"fmt"

	"github.com/lorencia/portal/internal/adapter"
	"github.com/lorencia/portal/internal/config"
	httphandler "github.com/lorencia/portal/internal/handler/http"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/server"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("portal-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := log.WithContext(context.Background())

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	site, err := siteconfig.NewStore(cfg.Storage.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading site config")
	}

	paypal := adapter.NewPayPalClient(cfg.Payments, log)
	mercadopago := adapter.NewMercadoPagoClient(cfg.Payments, log)

	services := service.NewServices(storages, db, site, paypal, mercadopago, *cfg, log)

	handler := httphandler.NewHandler(services, cfg.Auth.SessionDuration, cfg.Server.SecureCookies, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(
		workers.NewRankingWorker(services.RankingService, site, log),
		workers.NewSessionPruneWorker(storages.SessionRepository, log),
	).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
