package main

import (
	"shoptrack/internal/customers/handler"
	"shoptrack/internal/customers/repository"
	"shoptrack/internal/customers/service"
	"shoptrack/internal/customers/validator"
	"shoptrack/pkg/app"
	"shoptrack/pkg/config"
)

const ServiceName = "customers"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Customers service")
	customerService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewCustomerHandler(customerService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CustomerService {
	customerValidator := validator.NewCustomerValidator()
	customerRepo := repository.NewMongoCustomerRepository(cfg)
	vehicleRepo := repository.NewMongoVehicleRepository(cfg)

	customerService := service.NewCustomerService(
		customerRepo,
		vehicleRepo,
		customerValidator,
		cfg,
	)

	cfg.Log.Info("Customer service initialized", "database", cfg.MongoDatabaseName)
	return customerService
}
