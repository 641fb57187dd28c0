package events

import (
	"context"

	"shoptrack/pkg/kafka"
	"shoptrack/pkg/logger"
)

// Publisher emits work order lifecycle events. Services depend on this
// interface so tests and broker-less deployments can run without Kafka.
type Publisher interface {
	WorkOrderCreated(ctx context.Context, event WorkOrderCreated) error
	WorkOrderAssigned(ctx context.Context, event WorkOrderAssigned) error
	WorkOrderStatusChanged(ctx context.Context, event WorkOrderStatusChanged) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

// NewKafkaPublisher wraps a producer for the work order events topic.
func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *kafkaPublisher) WorkOrderCreated(ctx context.Context, event WorkOrderCreated) error {
	return p.publish(ctx, TypeWorkOrderCreated, event.WorkOrderID, event)
}

func (p *kafkaPublisher) WorkOrderAssigned(ctx context.Context, event WorkOrderAssigned) error {
	return p.publish(ctx, TypeWorkOrderAssigned, event.WorkOrderID, event)
}

func (p *kafkaPublisher) WorkOrderStatusChanged(ctx context.Context, event WorkOrderStatusChanged) error {
	return p.publish(ctx, TypeWorkOrderStatusChanged, event.WorkOrderID, event)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, key string, payload interface{}) error {
	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
		return err
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) WorkOrderCreated(context.Context, WorkOrderCreated) error { return nil }

func (nopPublisher) WorkOrderAssigned(context.Context, WorkOrderAssigned) error { return nil }

func (nopPublisher) WorkOrderStatusChanged(context.Context, WorkOrderStatusChanged) error {
	return nil
}

func (nopPublisher) Close() error { return nil }
