package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"hvac-finder/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code. The status is
// already sent when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code, error code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message}, logger)
}

// writeServiceError maps service errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrProviderNotFound), errors.Is(err, model.ErrServiceRequestNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateProvider), errors.Is(err, model.ErrDuplicateServiceRequest):
		status = http.StatusConflict
	case errors.Is(err, model.ErrInvalidArgument), errors.Is(err, model.ErrInvalidZipFormat):
		status = http.StatusBadRequest
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the handler should
// continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}

	if err := v.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, err.Error(), logger)
			return false
		}

		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = describeFieldError(fe)
		}

		logger.Warn().Interface("fields", fields).Msg("request validation failed")
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeValidationFailed,
			Message: "request validation failed",
			Fields:  fields,
		}, logger)
		return false
	}

	return true
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// newValidator returns a validator that reports JSON field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
