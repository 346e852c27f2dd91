package components

import (
	"context"
	"fmt"
	"log/slog"

	"zurbo/internal/domain/usage"
	"zurbo/internal/infra/redisdb"
	"zurbo/internal/infra/usagestore"
	"zurbo/internal/pkg/config"
	"zurbo/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	usageStorePostgres = "postgres"
	usageStoreRedis    = "redis"
)

var UsageModule = fx.Module("usage",
	fx.Provide(
		NewUsagePolicy,
		NewUsageStore,
	),
)

func NewUsagePolicy(cfg config.Config) (usage.Policy, error) {
	p := usage.Policy{
		MaxPerHour:  cfg.RateLimit.MaxPerHour,
		HourlyBlock: cfg.RateLimit.HourlyBlock,
		MaxPerDay:   cfg.RateLimit.MaxPerDay,
		DailyBlock:  cfg.RateLimit.DailyBlock,
		MaxActive:   cfg.RateLimit.MaxActive,
		MinSpacing:  cfg.RateLimit.MinSpacing,
	}
	if err := p.Validate(); err != nil {
		return usage.Policy{}, err
	}
	return p, nil
}

// NewUsageStore connects to Redis only when it is the selected backend.
func NewUsageStore(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, logger *slog.Logger) (shared.UsageStore, error) {
	switch cfg.RateLimit.Store {
	case "", usageStorePostgres:
		logger.Info("usage store selected", "backend", usageStorePostgres)
		return usagestore.NewPostgresStore(uow), nil

	case usageStoreRedis:
		rdb, cleanup, err := redisdb.Connect(cfg.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		logger.Info("usage store selected", "backend", usageStoreRedis, "addr", cfg.Redis.Addr)
		return usagestore.NewRedisStore(rdb,
			usagestore.WithPrefix(cfg.Redis.Prefix),
			usagestore.WithMaxRetries(cfg.RateLimit.MutateRetries),
		), nil

	default:
		return nil, fmt.Errorf("unknown USAGE_STORE %q", cfg.RateLimit.Store)
	}
}
