package handler

import (
	"net/http"

	"hvac-finder/internal/model"
	"hvac-finder/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ServiceRequestHandler handles homeowner service request HTTP requests.
type ServiceRequestHandler struct {
	service  service.ServiceRequestService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewServiceRequestHandler creates a new service request handler.
func NewServiceRequestHandler(service service.ServiceRequestService, logger zerolog.Logger) *ServiceRequestHandler {
	return &ServiceRequestHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With().Str("handler", "service-request").Logger(),
	}
}

// Submit handles POST /api/service-requests requests.
func (h *ServiceRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitServiceRequestRequest
	if !decodeAndValidate(w, r, h.validate, &req, h.logger) {
		return
	}

	detail, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to submit service request", h.logger)
		return
	}

	w.Header().Set("Location", "/api/service-requests/"+detail.ID.String())
	writeJSON(w, http.StatusCreated, detail, h.logger)
}

// GetByID handles GET /api/service-requests/{id} requests.
func (h *ServiceRequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidArgument, "invalid service request ID format", h.logger)
		return
	}

	detail, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve service request", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail, h.logger)
}
