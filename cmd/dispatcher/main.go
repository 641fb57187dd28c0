package main

import (
	"net/http"
	"os"

	"shoptrack/internal/dispatcher/api"
	"shoptrack/pkg/client"
	"shoptrack/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "dispatcher",
	})

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	port := os.Getenv("DISPATCHER_PORT")
	if port == "" {
		port = "8090"
	}

	apiClient := client.NewClient()
	apiClient.SetWorkOrderClient(baseURL)
	apiClient.SetTechnicianClient(baseURL)
	apiClient.SetCustomerClient(baseURL)

	router := api.SetupRouter(apiClient, log)

	addr := ":" + port
	log.Info("Starting Dispatcher API server", "address", addr, "base_url", baseURL)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
