package handler

import (
	"net/http"

	"hvac-finder/internal/zipcode"

	"github.com/rs/zerolog"
)

// ZipCodeHandler exposes ZIP code validation.
type ZipCodeHandler struct {
	validator zipcode.Validator
	logger    zerolog.Logger
}

// NewZipCodeHandler creates a new ZIP code handler.
func NewZipCodeHandler(validator zipcode.Validator, logger zerolog.Logger) *ZipCodeHandler {
	return &ZipCodeHandler{
		validator: validator,
		logger:    logger.With().Str("handler", "zipcode").Logger(),
	}
}

// Validate handles GET /api/zipcodes/{code} requests. Invalid codes are a
// normal outcome and are reported in the body with status 200.
func (h *ZipCodeHandler) Validate(w http.ResponseWriter, r *http.Request) {
	result := h.validator.Validate(r.PathValue("code"))

	h.logger.Debug().
		Bool("is_valid", result.IsValid).
		Str("city", result.City).
		Msg("zip code validated")

	writeJSON(w, http.StatusOK, result, h.logger)
}
