// Package main is the entry point for the Planta API server.
// Planta is a house plant care backend with bearer-token authentication
// and per-user resource scoping.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/auth"
	"github.com/planta-io/planta/internal/cache/memory"
	rediscache "github.com/planta-io/planta/internal/cache/redis"
	"github.com/planta-io/planta/internal/config"
	"github.com/planta-io/planta/internal/handler"
	"github.com/planta-io/planta/internal/metrics"
	"github.com/planta-io/planta/internal/repository"
	"github.com/planta-io/planta/internal/repository/postgres"
	"github.com/planta-io/planta/internal/repository/sqlite"
	"github.com/planta-io/planta/internal/service"
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

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting planta server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	tokenCache, closeCache, err := openTokenCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	userService := service.NewUserService(repos.User, logger)
	authService := service.NewAuthService(repos.User, tokenCache, cfg.Auth.TokenCacheTTL, logger)
	plantService := service.NewPlantService(repos.Plant, cfg.Auth.StrictOwnership, logger)
	eventService := service.NewEventService(repos.Event, cfg.Auth.StrictOwnership, logger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		m = metrics.NewMetrics(registry)
		go serveMetrics(cfg.Metrics, registry, logger)
	}

	router := handler.NewRouter(handler.RouterConfig{
		UserHandler:     handler.NewUserHandler(userService, logger),
		PlantHandler:    handler.NewPlantHandler(plantService, logger),
		EventHandler:    handler.NewEventHandler(eventService, logger),
		AuthMiddleware:  auth.Middleware(authService, logger),
		StrictOwnership: cfg.Auth.StrictOwnership,
		DB:              db,
		Metrics:         m,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Bool("strict_ownership", cfg.Auth.StrictOwnership).
			Str("database", cfg.Database.Driver).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// openDatabase opens the configured backend, applies migrations and
// builds the repository set.
func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:            cfg.Database.Path,
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			JournalMode:     cfg.Database.JournalMode,
			BusyTimeout:     cfg.Database.BusyTimeout,
			SynchronousMode: cfg.Database.SynchronousMode,
		}, logger)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return repository.Repositories{}, nil, err
		}
		return repository.Repositories{
			User:  sqlite.NewUserRepository(db),
			Plant: sqlite.NewPlantRepository(db),
			Event: sqlite.NewEventRepository(db),
		}, db, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return repository.Repositories{}, nil, err
		}
		return repository.Repositories{
			User:  postgres.NewUserRepository(db),
			Plant: postgres.NewPlantRepository(db),
			Event: postgres.NewEventRepository(db),
		}, db, nil

	default:
		return repository.Repositories{}, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// openTokenCache builds the token cache backend. Returns a nil cache
// when caching is disabled.
func openTokenCache(cfg *config.Config, logger zerolog.Logger) (repository.Cache, func(), error) {
	if cfg.Auth.TokenCacheTTL <= 0 {
		return nil, func() {}, nil
	}

	if cfg.Redis.Enabled {
		c, err := rediscache.NewCache(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect token cache: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("using redis token cache")
		return c, func() { _ = c.Close() }, nil
	}

	c := memory.NewCache()
	logger.Info().Dur("ttl", cfg.Auth.TokenCacheTTL).Msg("using in-memory token cache")
	return c, c.Stop, nil
}

// serveMetrics runs the Prometheus scrape endpoint on its own port.
func serveMetrics(cfg config.MetricsConfig, registry *prometheus.Registry, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler(registry))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Str("path", cfg.Path).Msg("metrics server listening")

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}

// newLogger builds the process logger from configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var out = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
