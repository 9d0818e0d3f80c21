// Package messaging forwards seller lifecycle events to Kafka so that
// services outside this process can react to them.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
	"github.com/venta/backend/internal/infrastructure/config"
	"github.com/venta/backend/internal/infrastructure/event"
)

// MessageWriter is the subset of kafka.Writer used by the forwarder
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaLifecycleForwarder publishes every seller lifecycle event to a Kafka
// topic. Messages are keyed by seller id so that one seller's events stay
// ordered within a partition.
type KafkaLifecycleForwarder struct {
	writer       MessageWriter
	serializer   *event.EventSerializer
	topic        string
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewKafkaLifecycleForwarder creates a forwarder backed by a kafka.Writer
func NewKafkaLifecycleForwarder(cfg config.KafkaConfig, serializer *event.EventSerializer, logger *zap.Logger) (*KafkaLifecycleForwarder, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		Async:        false,
	}
	return NewKafkaLifecycleForwarderWithWriter(writer, serializer, cfg.Topic, cfg.WriteTimeout, logger), nil
}

// NewKafkaLifecycleForwarderWithWriter creates a forwarder with an existing writer.
// This is useful for testing.
func NewKafkaLifecycleForwarderWithWriter(writer MessageWriter, serializer *event.EventSerializer, topic string, writeTimeout time.Duration, logger *zap.Logger) *KafkaLifecycleForwarder {
	if serializer == nil {
		serializer = event.NewSellerEventSerializer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &KafkaLifecycleForwarder{
		writer:       writer,
		serializer:   serializer,
		topic:        topic,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (f *KafkaLifecycleForwarder) EventTypes() []string {
	return seller.AllEventTypes()
}

// Handle serializes the event and writes it to the topic
func (f *KafkaLifecycleForwarder) Handle(ctx context.Context, e shared.DomainEvent) error {
	msg, err := f.message(e)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, f.writeTimeout)
	defer cancel()

	if err := f.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("failed to publish event %s to topic %s: %w", e.EventID(), f.topic, err)
	}

	f.logger.Debug("lifecycle event forwarded",
		zap.String("topic", f.topic),
		zap.String("event_type", e.EventType()),
		zap.String("event_id", e.EventID().String()),
	)
	return nil
}

func (f *KafkaLifecycleForwarder) message(e shared.DomainEvent) (kafka.Message, error) {
	payload, err := f.serializer.Serialize(e)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.AggregateID(), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "ce-type", Value: []byte(e.EventType())},
			{Key: "ce-id", Value: []byte(e.EventID().String())},
			{Key: "ce-time", Value: []byte(e.OccurredAt().Format(time.RFC3339))},
			{Key: "ce-subject", Value: []byte(e.AggregateType())},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: e.OccurredAt(),
	}
	if lifecycle, ok := e.(seller.LifecycleEvent); ok {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   "venta-kind",
			Value: []byte(lifecycle.Kind()),
		})
	}
	return msg, nil
}

// Close flushes and closes the underlying writer
func (f *KafkaLifecycleForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaLifecycleForwarder)(nil)
