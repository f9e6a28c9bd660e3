package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"marketplace/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

const kafkaWriteTimeout = 5 * time.Second

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a Kafka topic. Messages are
// keyed by aggregate ID so events of one order or vendor stay in order.
type kafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: kafkaWriteTimeout,
	}, logger)
}

func newKafkaPublisher(writer messageWriter, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes the event synchronously.
func (p *kafkaPublisher) Publish(ctx context.Context, event *service.MarketplaceEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "kafka: failed to marshal event")
	}

	attributes := eventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for key, value := range attributes {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.AggregateID),
		Value:   data,
		Headers: headers,
		Time:    event.OccurredAt,
	}); err != nil {
		return errors.Wrap(err, "kafka: write failed")
	}

	p.logger.InfoContext(ctx, "[Kafka] Event published successfully",
		slog.String("event_type", string(event.Type)),
		slog.String("aggregate_id", event.AggregateID),
	)

	return nil
}

// Close flushes pending writes and closes the writer.
func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
