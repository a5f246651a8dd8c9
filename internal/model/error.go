package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeInvalidZipCode    = "INVALID_ZIP_CODE"
	ErrCodeProviderNotFound  = "PROVIDER_NOT_FOUND"
	ErrCodeDuplicateProvider = "DUPLICATE_PROVIDER"
	ErrCodeRequestNotFound   = "SERVICE_REQUEST_NOT_FOUND"
	ErrCodeDuplicateRequest  = "DUPLICATE_SERVICE_REQUEST"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-logic error carrying an API error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped variants with a more
// specific message still satisfy errors.Is against the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidArgument   = NewDomainError(ErrCodeInvalidArgument, "Invalid argument")
	ErrProviderNotFound  = NewDomainError(ErrCodeProviderNotFound, "Provider not found")
	ErrDuplicateProvider = NewDomainError(ErrCodeDuplicateProvider, "Provider already exists")
	ErrInvalidZipFormat  = NewDomainError(ErrCodeInvalidZipCode, "A valid 5-digit ZIP code is required.")

	ErrServiceRequestNotFound  = NewDomainError(ErrCodeRequestNotFound, "Service request not found")
	ErrDuplicateServiceRequest = NewDomainError(ErrCodeDuplicateRequest, "Service request already exists")
)

// InvalidArgument returns an ErrInvalidArgument variant with a specific message.
func InvalidArgument(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidArgument, message)
}

// InvalidZipCode returns an ErrInvalidZipFormat variant carrying the
// validator's message.
func InvalidZipCode(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidZipCode, message)
}
