package main

import (
	"shoptrack/internal/workorders/handler"
	"shoptrack/internal/workorders/repository"
	"shoptrack/internal/workorders/service"
	"shoptrack/internal/workorders/validator"
	"shoptrack/pkg/app"
	"shoptrack/pkg/config"
	"shoptrack/pkg/events"
	"shoptrack/pkg/kafka"
	kafka_config "shoptrack/pkg/kafka/config"
	kafka_middleware "shoptrack/pkg/kafka/middleware"
)

const ServiceName = "workorders"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Work Orders service")
	workOrderService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewWorkOrderHandler(workOrderService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.WorkOrderService {
	workOrderValidator := validator.NewWorkOrderValidator(cfg.Log)
	workOrderRepo := repository.NewMongoWorkOrderRepository(cfg)
	slotLockRepo := repository.NewSlotLockRepository(cfg)

	workOrderService := service.NewWorkOrderService(
		workOrderRepo,
		slotLockRepo,
		workOrderValidator,
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Work order service initialized", "database", cfg.MongoDatabaseName)
	return workOrderService
}

// initPublisher wires the Kafka event publisher, falling back to a no-op
// when EVENTS_ENABLED is off so the service runs without a broker.
func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Event publishing disabled, using no-op publisher")
		return events.NewNopPublisher()
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, events.TopicWorkOrders, events.TopicWorkOrdersDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka event publisher initialized", "topic", events.TopicWorkOrders)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}
