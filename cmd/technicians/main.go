package main

import (
	"shoptrack/internal/technicians/handler"
	"shoptrack/internal/technicians/repository"
	"shoptrack/internal/technicians/service"
	"shoptrack/internal/technicians/validator"
	"shoptrack/pkg/app"
	"shoptrack/pkg/config"
)

const ServiceName = "technicians"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Technicians service")
	technicianService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewTechnicianHandler(technicianService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.TechnicianService {
	technicianValidator := validator.NewTechnicianValidator(cfg.Log)
	technicianRepo := repository.NewMongoTechnicianRepository(cfg)

	technicianService := service.NewTechnicianService(
		technicianRepo,
		technicianValidator,
		cfg,
	)

	cfg.Log.Info("Technician service initialized", "database", cfg.MongoDatabaseName)
	return technicianService
}
