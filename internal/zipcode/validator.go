package zipcode

import (
	"fmt"
	"strings"

	"hvac-finder/internal/metrics"
	"hvac-finder/internal/model"

	"github.com/rs/zerolog"
)

const (
	msgRequired = "ZIP code is required."
	msgFormat   = "ZIP code must be exactly 5 digits."
	msgNotFound = "ZIP code %s was not found. Please verify and try again."
)

// validator implements Validator against a loaded Dataset.
type validator struct {
	dataset *Dataset
	metrics *metrics.Metrics
	logger  zerolog.Logger
	// read-only after loading
}

// NewValidator creates a validator over dataset. m may be nil.
func NewValidator(dataset *Dataset, m *metrics.Metrics, logger zerolog.Logger) Validator {
	m.SetDatasetSize(dataset.Size())

	return &validator{
		dataset: dataset,
		metrics: m,
		logger:  logger.With().Str("component", "zipcode-validator").Logger(),
	}
}

// Validate checks raw against the dataset and returns the located result or
// a human-readable rejection.
func (v *validator) Validate(raw string) model.ValidationResult {
	if strings.TrimSpace(raw) == "" {
		v.metrics.ObserveValidation("required")
		return model.ValidationResult{ErrorMessage: msgRequired}
	}

	code := strings.TrimSpace(raw)
	if !IsWellFormed(code) {
		v.logger.Debug().Str("zip_code", code).Msg("zip code format invalid")
		v.metrics.ObserveValidation("format")
		return model.ValidationResult{ErrorMessage: msgFormat}
	}

	rec, ok := v.dataset.Lookup(code)
	if !ok {
		v.logger.Debug().Str("zip_code", code).Msg("zip code not found")
		v.metrics.ObserveValidation("not_found")
		return model.ValidationResult{ErrorMessage: fmt.Sprintf(msgNotFound, code)}
	}

	v.metrics.ObserveValidation("valid")
	return model.ValidationResult{
		IsValid:           true,
		City:              rec.City,
		StateAbbreviation: rec.StateAbbreviation,
		StateName:         rec.StateName,
	}
}

// IsWellFormed reports whether code is exactly five ASCII digits.
func IsWellFormed(code string) bool {
	if len(code) != 5 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
