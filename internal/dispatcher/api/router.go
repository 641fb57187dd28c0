package api

import (
	"net/http"

	"shoptrack/internal/dispatcher/handlers"
	"shoptrack/internal/dispatcher/service"
	"shoptrack/pkg/client"
	"shoptrack/pkg/logger"
)

func SetupRouter(client *client.Client, log *logger.Logger) *http.ServeMux {
	dispatcherService := service.NewDispatcherService(client, log)
	flowHandler := handlers.NewFlowHandler(dispatcherService, log)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/dispatcher/execute", flowHandler.ExecuteFlow)
	mux.HandleFunc("/api/v1/dispatcher/flows", flowHandler.ListFlows)
	mux.HandleFunc("/api/v1/dispatcher/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return mux
}
