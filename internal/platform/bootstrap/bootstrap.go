// Package bootstrap wires configuration, storage and services for the server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/core/services"
	"github.com/SscSPs/ledger_reconciler/internal/metrics"
	"github.com/SscSPs/ledger_reconciler/internal/platform/config"
	"github.com/SscSPs/ledger_reconciler/internal/repositories/cache"
	"github.com/SscSPs/ledger_reconciler/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_reconciler/pkg/database"
)

// App holds the long-lived dependencies of a running process.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *pgxpool.Pool
	Redis    *redis.Client // nil when REDIS_URL is unset
	Registry *prometheus.Registry
	Metrics  *metrics.ReconMetrics
	Services *portssvc.ServiceContainer

	// AccountCache is nil when REDIS_URL is unset.
	AccountCache *cache.AccountCache
}

// New connects to Postgres and, when configured, Redis and builds the service container.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	app := &App{Config: cfg, Logger: logger, DB: pool}

	repos := pgsql.NewRepositoryProvider(pool)
	if cfg.RedisURL != "" {
		app.Redis, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.AccountCache = cache.NewAccountCache(repos.AccountRepo, app.Redis, cfg.AccountCacheTTL)
		repos.AccountRepo = app.AccountCache
		logger.Info("Chart of accounts cache enabled", slog.Duration("ttl", cfg.AccountCacheTTL))
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.Metrics = metrics.NewReconMetrics(app.Registry)

	app.Services = services.NewServiceContainer(cfg, repos, pgsql.NewUnitOfWork(pool), app.Metrics)
	logger.Info("Services initialized", slog.String("sync_mode", string(cfg.SyncMode)))
	return app, nil
}

// Close releases the database pool and the Redis client.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("Failed to close redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.DB)
}
