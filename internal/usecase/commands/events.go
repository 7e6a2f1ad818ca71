package commands

import (
	"context"
	"log/slog"

	"prize-wheel/internal/usecase/shared"
)

// publishEvent is fire-and-forget: state is already committed when events go out.
func publishEvent(ctx context.Context, publisher shared.EventPublisher, logger *slog.Logger, event shared.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event", "type", string(event.Type), "error", err.Error())
	}
}
