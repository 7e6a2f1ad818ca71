package bootstrap

import (
	"context"
	"log/slog"

	"prize-wheel/internal/infra/events"
	"prize-wheel/internal/pkg/config"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

type closablePublisher interface {
	shared.EventPublisher
	Close() error
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	var publisher closablePublisher

	switch cfg.Events.Driver {
	case "", "log":
		publisher = events.NewLogPublisher(logger)
	case "kafka":
		p, err := events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, logger)
		if err != nil {
			return nil, err
		}
		publisher = p
	default:
		return nil, errs.Newf("unknown EVENTS_DRIVER %q", cfg.Events.Driver)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
