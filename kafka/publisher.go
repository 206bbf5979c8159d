package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-engine/pkg/logger"
)

// EventPublisher publishes domain events after their transaction commits
type EventPublisher interface {
	PublishSaleRegistered(ctx context.Context, event SaleRegisteredEvent) error
	PublishLowStock(ctx context.Context, event LowStockEvent) error
}

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer creates a publisher on an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer}
}

// PublishSaleRegistered publishes a sale registered event keyed by product
func (p *Publisher) PublishSaleRegistered(ctx context.Context, event SaleRegisteredEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeSaleRegistered
	event.Timestamp = time.Now().UTC()

	return p.publish(ctx, TopicSales, fmt.Sprintf("product_%d", event.ProductID), event.EventType, event.EventID, event,
		attribute.Int64("sale.id", int64(event.SaleID)),
		attribute.Int64("product.id", int64(event.ProductID)),
		attribute.Int64("sale.quantity", event.Quantity),
	)
}

// PublishLowStock publishes a low stock event keyed by supply
func (p *Publisher) PublishLowStock(ctx context.Context, event LowStockEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeSupplyLowStock
	event.Timestamp = time.Now().UTC()

	return p.publish(ctx, TopicLowStock, fmt.Sprintf("supply_%d", event.SupplyID), event.EventType, event.EventID, event,
		attribute.Int64("supply.id", int64(event.SupplyID)),
		attribute.String("supply.stock", event.Stock.String()),
	)
}

func (p *Publisher) publish(ctx context.Context, topic, key, eventType, eventID string, payload interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Trace context travels in the message headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(body),
		Headers: headers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops every event; used when no brokers are configured
type NopPublisher struct{}

func (NopPublisher) PublishSaleRegistered(context.Context, SaleRegisteredEvent) error { return nil }

func (NopPublisher) PublishLowStock(context.Context, LowStockEvent) error { return nil }
