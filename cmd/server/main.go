// Command server runs the jewelry storefront API. It loads configuration
// from the environment (and an optional .env file), opens the configured
// storage backend, seeds default content when enabled, and serves the HTTP
// API with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/oguzcelik/jewelry-backend/internal/config"
	httpapi "github.com/oguzcelik/jewelry-backend/internal/http"
	"github.com/oguzcelik/jewelry-backend/internal/observability"
	"github.com/oguzcelik/jewelry-backend/internal/services"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
	"github.com/oguzcelik/jewelry-backend/internal/storage/memory"
	"github.com/oguzcelik/jewelry-backend/internal/storage/mongostore"
	"github.com/oguzcelik/jewelry-backend/internal/storage/sqlstore"
	"github.com/oguzcelik/jewelry-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("storage init failed")
	}

	if cfg.SeedDefaults {
		err := storage.EnsureDefaults(ctx, store, storage.SeedOptions{
			AdminUsername: cfg.Auth.AdminUsername,
			AdminPassword: cfg.Auth.AdminPassword,
			HashPassword:  services.HashPassword,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("seeding defaults failed")
		}
	}

	engine := gin.New()
	httpapi.RegisterRoutes(engine, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("backend", cfg.Storage.Backend).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown incomplete")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("storage close failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// openStorage builds the backend selected by STORAGE_BACKEND.
func openStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQL:
		open := func() (*gorm.DB, error) { return sqlstore.OpenSQLite(cfg.Storage.DBPath) }
		if cfg.Storage.DatabaseURL != "" {
			open = func() (*gorm.DB, error) { return sqlstore.OpenPostgres(cfg.Storage.DatabaseURL) }
		}
		db, err := open()
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db), nil
	case config.BackendMongo:
		return mongostore.Open(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDB)
	default:
		return nil, errors.New("unknown storage backend: " + cfg.Storage.Backend)
	}
}
