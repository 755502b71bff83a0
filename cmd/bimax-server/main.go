// Package main is the entry point for the Bimax Pro admin server.
// It serves the product-catalog site, the token-authenticated admin API
// and the upload endpoints for brand/product images, documents and posters.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bimax-pro/bimax-admin/internal/auth"
	"github.com/bimax-pro/bimax-admin/internal/config"
	"github.com/bimax-pro/bimax-admin/internal/handler"
	"github.com/bimax-pro/bimax-admin/internal/metrics"
	"github.com/bimax-pro/bimax-admin/internal/repository/jsonfile"
	"github.com/bimax-pro/bimax-admin/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := newLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting Bimax Pro admin server")

	// Stores
	userStore := jsonfile.NewUserStore(cfg.Storage.UsersFile(), cfg.Auth.AdminPassword, logger)
	catalogStore := jsonfile.NewCatalogStore(cfg.Storage.CatalogFile(), logger)

	// Auth
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Services
	sessionService := service.NewSessionService(userStore, issuer, logger)
	catalogService := service.NewCatalogService(catalogStore, logger)
	uploadService := service.NewUploadService(cfg.Storage.SiteRoot, logger)

	// Metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// HTTP surface
	api := handler.NewAPIHandler(handler.APIConfig{
		SessionService: sessionService,
		CatalogService: catalogService,
		UploadService:  uploadService,
		Metrics:        m,
		Logger:         logger,
	})
	static := handler.NewStaticHandler(cfg.Storage.SiteRoot, cfg.Storage.IndexFile, logger)

	router := handler.NewRouter(handler.RouterConfig{
		API:            api,
		Static:         static,
		AuthMiddleware: auth.Middleware(issuer, logger),
		Metrics:        m,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("catalog_file", cfg.Storage.CatalogFile()).
			Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newLogger builds the process logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
