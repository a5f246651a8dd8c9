package handler

import (
	"net/http"

	"hvac-finder/internal/model"
	"hvac-finder/internal/service"
	"hvac-finder/internal/zipcode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProviderHandler handles provider-related HTTP requests.
type ProviderHandler struct {
	service  service.ProviderService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProviderHandler creates a new provider handler.
func NewProviderHandler(service service.ProviderService, logger zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With().Str("handler", "provider").Logger(),
	}
}

// Search handles GET /api/providers?zipCode= requests.
func (h *ProviderHandler) Search(w http.ResponseWriter, r *http.Request) {
	zipCode := r.URL.Query().Get("zipCode")
	if !zipcode.IsWellFormed(zipCode) {
		writeError(w, http.StatusBadRequest, model.ErrInvalidZipFormat.Code, model.ErrInvalidZipFormat.Message, h.logger)
		return
	}

	summaries, err := h.service.SearchByPostalCode(r.Context(), zipCode)
	if err != nil {
		writeServiceError(w, err, "failed to search providers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summaries, h.logger)
}

// ListActive handles GET /api/providers/active requests.
func (h *ProviderHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list providers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summaries, h.logger)
}

// GetByID handles GET /api/providers/{id} requests.
func (h *ProviderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.providerID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve provider", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail, h.logger)
}

// Register handles POST /api/providers requests.
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterProviderRequest
	if !decodeAndValidate(w, r, h.validate, &req, h.logger) {
		return
	}

	detail, err := h.service.RegisterProvider(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to register provider", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, detail, h.logger)
}

// AddServiceArea handles POST /api/providers/{id}/service-areas requests.
func (h *ProviderHandler) AddServiceArea(w http.ResponseWriter, r *http.Request) {
	id, ok := h.providerID(w, r)
	if !ok {
		return
	}

	var req model.ServiceAreaRequest
	if !decodeAndValidate(w, r, h.validate, &req, h.logger) {
		return
	}

	detail, err := h.service.AddServiceArea(r.Context(), id, req.ZipCode)
	if err != nil {
		writeServiceError(w, err, "failed to add service area", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail, h.logger)
}

// Activate handles POST /api/providers/{id}/activate requests.
func (h *ProviderHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.providerID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Activate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to activate provider", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail, h.logger)
}

// Deactivate handles POST /api/providers/{id}/deactivate requests.
func (h *ProviderHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.providerID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to deactivate provider", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail, h.logger)
}

func (h *ProviderHandler) providerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidArgument, "provider ID is required", h.logger)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidArgument, "invalid provider ID format", h.logger)
		return uuid.Nil, false
	}

	return id, true
}
