package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/BilawalArif/redfin-clone/internal/config"
	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/BilawalArif/redfin-clone/pkg/observability"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Infrastructure owns the process-wide connections and telemetry
type Infrastructure interface {
	Postgres() *database.Postgres
	Redis() *database.Redis
	Logger() *zap.Logger
	MetricsHandler() http.Handler
	MeterProvider() *metric.MeterProvider

	Shutdown(ctx context.Context) error
}

type infrastructure struct {
	postgres       *database.Postgres
	redis          *database.Redis
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider

	// closers run in reverse order when startup fails midway
	closers []func() error
}

var _ Infrastructure = &infrastructure{}

func NewInfrastructure(ctx context.Context, cfg config.Config) (*infrastructure, error) {
	logger, err := observability.InitLogger(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	i := &infrastructure{logger: logger}
	if err := i.connect(ctx, cfg); err != nil {
		i.unwind()
		return nil, err
	}

	return i, nil
}

func (i *infrastructure) connect(ctx context.Context, cfg config.Config) error {
	postgres, err := database.NewPostgres(cfg.Postgres.DSN(), cfg.Postgres.Pool())
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	i.postgres = postgres
	i.closers = append(i.closers, postgres.Close)

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(postgres, database.MigrateUp); err != nil {
			return err
		}
		i.logger.Info("Database schema is up to date")
	}

	redis, err := database.NewRedis(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	i.redis = redis
	i.closers = append(i.closers, redis.Close)

	meterProvider, metricsHandler, err := observability.InitTelemetry(serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	i.meterProvider = meterProvider
	i.metricsHandler = metricsHandler
	i.closers = append(i.closers, func() error { return meterProvider.Shutdown(ctx) })

	return nil
}

func (i *infrastructure) unwind() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		_ = i.closers[n]()
	}
	_ = i.logger.Sync()
}

func (i *infrastructure) Postgres() *database.Postgres {
	return i.postgres
}

func (i *infrastructure) Redis() *database.Redis {
	return i.redis
}

func (i *infrastructure) Logger() *zap.Logger {
	return i.logger
}

func (i *infrastructure) MetricsHandler() http.Handler {
	return i.metricsHandler
}

func (i *infrastructure) MeterProvider() *metric.MeterProvider {
	return i.meterProvider
}

// Shutdown closes the stores, then flushes telemetry and the logger
func (i *infrastructure) Shutdown(ctx context.Context) error {
	errs := make(chan error, 2)

	go func() { errs <- i.postgres.Close() }()
	go func() { errs <- i.redis.Close() }()

	storeErr := errors.Join(<-errs, <-errs)
	return errors.Join(storeErr, observability.Shutdown(ctx, i.meterProvider, i.logger))
}
