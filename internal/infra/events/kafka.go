package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each event as a JSON message keyed by event type.
type KafkaPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.New("kafka publisher requires at least one broker")
	}
	if topic == "" {
		return nil, errs.New("kafka publisher requires a topic")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteTimeout:           10 * time.Second,
		ReadTimeout:            10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisherWithWriter(writer, logger), nil
}

func NewKafkaPublisherWithWriter(writer MessageWriter, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger.With("component", "kafka-publisher")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event shared.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal event")
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return errs.Wrapf(err, "write %s event", event.Type)
	}

	p.logger.Debug("event published", "type", string(event.Type))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ shared.EventPublisher = (*KafkaPublisher)(nil)
