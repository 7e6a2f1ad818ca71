package bootstrap

import (
	"context"
	"log/slog"

	"prize-wheel/internal/infra/db"
	"prize-wheel/internal/infra/kv"
	"prize-wheel/internal/pkg/config"
	"prize-wheel/internal/pkg/errs"

	"go.uber.org/fx"
)

var StateModule = fx.Module("state",
	fx.Provide(
		NewKVStore,
	),
)

// NewKVStore opens the backend selected by STATE_DRIVER. Only the selected
// backend is connected.
func NewKVStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (kv.Store, error) {
	ctx := context.Background()

	var (
		store   kv.Store
		cleanup func()
	)

	switch cfg.State.Driver {
	case "", "memory":
		store = kv.NewMemoryStore()
	case "redis":
		s, err := kv.NewRedisStore(ctx, kv.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			PoolSize:  cfg.Redis.PoolSize,
			Namespace: cfg.State.Namespace,
		})
		if err != nil {
			return nil, err
		}
		store = s
	case "postgres":
		pool, closePool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		store = kv.NewPostgresStore(pool, cfg.State.Namespace, logger)
		cleanup = closePool
	case "mongo":
		s, err := kv.NewMongoStore(ctx, kv.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Namespace:  cfg.State.Namespace,
		})
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, errs.Newf("unknown STATE_DRIVER %q", cfg.State.Driver)
	}

	logger.Info("state store ready", "driver", cfg.State.Driver, "namespace", cfg.State.Namespace)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			err := store.Close(ctx)
			if cleanup != nil {
				cleanup()
			}
			return err
		},
	})

	return store, nil
}
