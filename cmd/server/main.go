// Folio is a self-hosted portfolio tracking dashboard: holdings CRUD, live
// price enrichment, NAV history and MPT risk metrics behind a JSON API.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/clientdata"
	"github.com/pratama/folio/internal/clients/mockprovider"
	"github.com/pratama/folio/internal/clients/yahoo"
	"github.com/pratama/folio/internal/config"
	"github.com/pratama/folio/internal/database"
	"github.com/pratama/folio/internal/domain"
	insightsmod "github.com/pratama/folio/internal/modules/insights"
	insightshandlers "github.com/pratama/folio/internal/modules/insights/handlers"
	"github.com/pratama/folio/internal/modules/portfolio"
	portfoliohandlers "github.com/pratama/folio/internal/modules/portfolio/handlers"
	"github.com/pratama/folio/internal/modules/risk"
	riskhandlers "github.com/pratama/folio/internal/modules/risk/handlers"
	"github.com/pratama/folio/internal/modules/snapshots"
	snapshothandlers "github.com/pratama/folio/internal/modules/snapshots/handlers"
	"github.com/pratama/folio/internal/modules/snapshots/jobs"
	"github.com/pratama/folio/internal/reliability"
	"github.com/pratama/folio/internal/scheduler"
	"github.com/pratama/folio/internal/server"
	"github.com/pratama/folio/internal/services"
	"github.com/pratama/folio/pkg/logger"
)

// Cron schedules (with seconds field).
const (
	navSnapshotSchedule  = "0 10 22 * * *" // daily, after US market close (UTC)
	cacheCleanupSchedule = "0 0 * * * *"   // hourly
	backupSchedule       = "0 30 2 * * *"  // daily, off-peak
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := zerolog.New(os.Stderr)
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	log.Info().Str("data_dir", cfg.DataDir).Str("provider", cfg.PriceProvider).Msg("Folio starting")

	// Databases. portfolio.db holds user data, client_data.db is a
	// disposable cache of provider responses.
	portfolioDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "portfolio.db"),
		Profile: database.ProfileStandard,
		Name:    "portfolio",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open portfolio database")
	}
	defer portfolioDB.Close()

	clientDataDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer clientDataDB.Close()

	for _, db := range []*database.DB{portfolioDB, clientDataDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Migration failed")
		}
	}

	// Price provider behind the cache layer.
	cache := clientdata.NewRepository(clientDataDB.Conn(), nil)

	var provider domain.PriceProvider
	switch cfg.PriceProvider {
	case config.ProviderMock:
		provider = mockprovider.NewProvider(nil, log)
	default:
		provider = yahoo.NewClient(cfg.QuoteAPIURL, cache, log)
	}

	// Core services.
	normalizer := services.NewCurrencyNormalizer(log)
	enricher := portfolio.NewEnricher(normalizer, log)
	aggregator := portfolio.NewAggregator()
	holdingRepo := portfolio.NewHoldingRepository(portfolioDB.Conn(), log)
	portfolioSvc := portfolio.NewService(holdingRepo, provider, enricher, aggregator, log)

	navRepo := snapshots.NewNavRepository(portfolioDB.Conn(), log)
	riskEngine := risk.NewEngine(risk.SimpleAnnualizer{}, log)
	riskSvc := risk.NewService(portfolioSvc, provider, navRepo, riskEngine, log)
	insightsSvc := insightsmod.NewService(holdingRepo, provider, log)

	// Background jobs.
	sched := scheduler.New(log)

	navJob := jobs.NewNavSnapshotJob(portfolioSvc, navRepo, log)
	if err := sched.AddJob(navSnapshotSchedule, navJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register NAV snapshot job")
	}

	cleanupJob := clientdata.NewCleanupJob(cache, log)
	if err := sched.AddJob(cacheCleanupSchedule, cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}

	if cfg.Backup.Enabled() {
		s3Client, err := reliability.NewS3Client(context.Background(),
			cfg.Backup.Endpoint, cfg.Backup.AccessKey, cfg.Backup.SecretKey, cfg.Backup.Bucket, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 client")
		}

		backupSvc := reliability.NewBackupService(map[string]*sql.DB{
			"portfolio":   portfolioDB.Conn(),
			"client_data": clientDataDB.Conn(),
		}, cfg.DataDir, s3Client, log)

		backupJob := reliability.NewBackupJob(backupSvc, cfg.Backup.Retention)
		if err := sched.AddJob(backupSchedule, backupJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	} else {
		log.Info().Msg("Backups disabled (no S3 credentials configured)")
	}

	sched.Start()

	// HTTP server.
	srv := server.New(server.Config{
		Log:          log,
		Port:         cfg.Port,
		DevMode:      cfg.DevMode,
		PortfolioDB:  portfolioDB,
		ClientDataDB: clientDataDB,

		PortfolioHandlers: portfoliohandlers.NewHandler(holdingRepo, portfolioSvc, log),
		RiskHandlers:      riskhandlers.NewHandler(riskSvc, log),
		NavHandlers:       snapshothandlers.NewHandler(navRepo, log),
		InsightsHandlers:  insightshandlers.NewHandler(insightsSvc, log),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server error")
		}
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	sched.Stop()

	log.Info().Msg("Folio stopped")
}
