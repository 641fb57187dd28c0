package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"shoptrack/pkg/events"
	"shoptrack/pkg/kafka"
	kafka_config "shoptrack/pkg/kafka/config"
	kafka_middleware "shoptrack/pkg/kafka/middleware"
	"shoptrack/pkg/logger"
)

const ConsumerGroup = "shoptrack-notifier"

// The notifier tails the work order event stream and logs the customer
// notifications the shop front desk would send. Swapping the log lines
// for an SMS gateway is the only change needed to make it real.
func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "notifier",
	})

	kafkaCfg := kafka_config.Load()

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		events.TopicWorkOrders,
		ConsumerGroup,
		events.TopicWorkOrdersDLQ,
		handleEvent(log),
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Notifier consuming", "topic", events.TopicWorkOrders, "group", ConsumerGroup)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
}

func handleEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		switch msg.Headers[kafka.HeaderEventType] {
		case events.TypeWorkOrderCreated:
			var event events.WorkOrderCreated
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return err
			}
			log.Info("Booking confirmation",
				"work_order_id", event.WorkOrderID,
				"customer_id", event.CustomerID,
				"service", event.ServiceLabel,
				"start_time", event.StartTime,
			)

		case events.TypeWorkOrderAssigned:
			var event events.WorkOrderAssigned
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return err
			}
			log.Info("Technician assigned notification",
				"work_order_id", event.WorkOrderID,
				"technician_id", event.TechnicianID,
				"auto_assigned", event.AutoAssigned,
			)

		case events.TypeWorkOrderStatusChanged:
			var event events.WorkOrderStatusChanged
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return err
			}
			log.Info("Status update notification",
				"work_order_id", event.WorkOrderID,
				"from", event.FromStatus,
				"to", event.ToStatus,
			)

		default:
			log.Warn("Unknown event type, skipping",
				"event_type", msg.Headers[kafka.HeaderEventType],
				"offset", msg.Offset,
			)
		}
		return nil
	}
}
