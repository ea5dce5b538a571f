package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/analytics"
	"server/internal/auth"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := infra.Migrate(cfg.DatabaseURL, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	metricsRepo := repo.NewMetricsRepository(runner)
	newsRepo := repo.NewNewsRepository(runner)
	sessionRepo := repo.NewSessionRepository(runner)
	userRepo := repo.NewAdminUserRepository(runner)

	clock := time.Now

	authSvc := auth.NewService(sessionRepo, userRepo, clock, cfg.SessionTTL, logger)
	tracker := analytics.NewTracker(metricsRepo, newsRepo, clock)
	reporting := analytics.NewReporting(metricsRepo, newsRepo, clock, logger)

	var resolver geoip.CountryResolver
	if cfg.GeoIPDBPath != "" {
		resolver, err = geoip.NewResolver(cfg.GeoIPDBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("geoip database unavailable, country enrichment disabled")
			resolver = nil
		}
	}

	app := &handlers.App{
		Logger:       logger,
		Auth:         authSvc,
		Tracker:      tracker,
		Reporting:    reporting,
		News:         newsRepo,
		GeoIP:        resolver,
		CookieSecure: cfg.CookieSecure,
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
