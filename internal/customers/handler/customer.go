package handler

import (
	"encoding/json"
	"net/http"

	"shoptrack/internal/customers/service"
	httputil "shoptrack/pkg/http"
	"shoptrack/pkg/logger"
	"shoptrack/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

func NewCustomerHandler(service service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log,
	}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var customer model.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &customer); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, customer); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, customer); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CustomerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	customers, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, customers, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *CustomerHandler) GetByPhone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	phone := ps.ByName("phone")

	customers, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByPhone", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, customers); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByPhone", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.CustomerUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CustomerHandler) AddVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customerID := ps.ByName("id")

	var vehicle model.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AddVehicle", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.AddVehicle(r.Context(), customerID, &vehicle); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AddVehicle", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, vehicle); err != nil {
		h.log.Error("failed to write created response", "handler", "AddVehicle", "operation", "WriteCreated", "error", err)
	}
}

func (h *CustomerHandler) GetVehicles(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customerID := ps.ByName("id")

	vehicles, err := h.service.GetVehicles(r.Context(), customerID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetVehicles", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, vehicles); err != nil {
		h.log.Error("failed to write success response", "handler", "GetVehicles", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CustomerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/customers", h.Create)
	router.GET("/api/v1/customers", h.GetAll)
	router.GET("/api/v1/customers/id/:id", h.GetByID)
	router.PATCH("/api/v1/customers/id/:id", h.Update)
	router.DELETE("/api/v1/customers/id/:id", h.Delete)
	router.GET("/api/v1/customers/phone/:phone", h.GetByPhone)
	router.POST("/api/v1/customers/id/:id/vehicles", h.AddVehicle)
	router.GET("/api/v1/customers/id/:id/vehicles", h.GetVehicles)
}
