package components

import (
	"context"
	"log/slog"

	"prize-wheel/internal/infra/kv"
	"prize-wheel/internal/infra/repository"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/pkg/config"
	"prize-wheel/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			NewStateRepository,
			fx.As(new(shared.StateRepository)),
		),
		NewPromotionsStore,
	),
)

func NewStateRepository(store kv.Store, clk clock.Clock, logger *slog.Logger) *repository.StateRepository {
	return repository.NewStateRepository(store, clk, logger)
}

func NewPromotionsStore(repo shared.StateRepository, cfg config.Config, logger *slog.Logger) (*shared.PromotionsStore, error) {
	retry := shared.RetryPolicy{
		MaxRetries: cfg.State.PersistMaxRetries,
		BaseDelay:  cfg.State.PersistRetryBase,
	}
	return shared.NewPromotionsStore(context.Background(), repo, retry, logger)
}
