package components

import (
	"context"
	"log/slog"

	"prize-wheel/internal/domain/bonus"
	"prize-wheel/internal/domain/promocode"
	"prize-wheel/internal/domain/reward"
	"prize-wheel/internal/pkg/clock"
	"prize-wheel/internal/pkg/config"
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"
	"prize-wheel/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	fx.Invoke(startSweeper),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(c *clock.RealClock) clock.Clock { return c },
	func(c *clock.RealClock) clock.Scheduler { return c },
	fx.Annotate(
		reward.NewCryptoDrawer,
		fx.As(new(reward.Drawer)),
	),
	NewCatalog,
	NewPromoCodeGenerator,
	NewDailyPolicy,
	NewSubscriptionPolicy,
	NewWheelSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSpinCommands,
		commands.NewBonusCommands,
		commands.NewRedemptionCommands,
		NewExpirySweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPromotionsQueries,
	),
)

func NewCatalog(cfg config.Config, logger *slog.Logger) (*reward.Catalog, error) {
	if cfg.Wheel.CatalogPath != "" {
		catalog, err := reward.LoadCatalogFile(cfg.Wheel.CatalogPath, cfg.Wheel.FallbackRewardID)
		if err != nil {
			return nil, err
		}
		logger.Info("reward catalog loaded", "path", cfg.Wheel.CatalogPath, "entries", catalog.Len())
		return catalog, nil
	}

	def := reward.DefaultCatalog()
	if cfg.Wheel.FallbackRewardID > 0 && cfg.Wheel.FallbackRewardID != def.Fallback().ID() {
		return reward.NewCatalog(def.Definitions(), cfg.Wheel.FallbackRewardID)
	}
	return def, nil
}

func NewPromoCodeGenerator(cfg config.Config) (promocode.Generator, error) {
	return promocode.NewRandomGenerator(cfg.Wheel.PromoCodePrefix, cfg.Wheel.PromoCodeLength)
}

func NewDailyPolicy(cfg config.Config) (bonus.DailyPolicy, error) {
	loc, err := cfg.Bonus.Location()
	if err != nil {
		return bonus.DailyPolicy{}, err
	}
	return bonus.NewDailyPolicy(cfg.Bonus.DailyAmount, loc)
}

func NewSubscriptionPolicy(cfg config.Config) (bonus.SubscriptionPolicy, error) {
	return bonus.NewSubscriptionPolicy(cfg.Bonus.SubscriptionAmount, cfg.Bonus.SubscriptionConfirmDelay, cfg.Bonus.SubscriptionURL)
}

func NewWheelSettings(cfg config.Config) shared.WheelSettings {
	return shared.WheelSettings{
		SpinCost:             cfg.Wheel.SpinCost,
		RevealDelay:          cfg.Wheel.RevealDelay,
		RewardTTL:            cfg.Wheel.RewardTTL,
		PromoCodeMaxAttempts: cfg.Wheel.PromoCodeMaxAttempts,
	}
}

func NewExpirySweeper(
	store *shared.PromotionsStore,
	clk clock.Clock,
	scheduler clock.Scheduler,
	publisher shared.EventPublisher,
	cfg config.Config,
	logger *slog.Logger,
) *commands.ExpirySweeper {
	return commands.NewExpirySweeper(store, clk, scheduler, publisher, cfg.Wheel.SweepInterval, logger)
}

func startSweeper(lc fx.Lifecycle, sweeper *commands.ExpirySweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sweeper.Start(ctx)
		},
		OnStop: func(context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
