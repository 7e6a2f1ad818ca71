package events

import (
	"context"
	"log/slog"

	"prize-wheel/internal/usecase/shared"
)

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, event shared.Event) error {
	attrs := make([]any, 0, 2+2*len(event.Payload))
	attrs = append(attrs, "type", string(event.Type), "occurred_at", event.OccurredAt)
	for k, v := range event.Payload {
		attrs = append(attrs, k, v)
	}
	p.logger.InfoContext(ctx, "promotion event", attrs...)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

var _ shared.EventPublisher = (*LogPublisher)(nil)
