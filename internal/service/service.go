package service

import (
	"context"

	"hvac-finder/internal/model"

	"github.com/google/uuid"
)

// ProviderService defines operations for finding and managing HVAC providers.
type ProviderService interface {
	// SearchByPostalCode returns summaries of active providers serving
	// rawCode, ordered by company name. A blank rawCode is rejected with
	// model.ErrInvalidArgument. The code is not checked against the ZIP
	// reference dataset.
	SearchByPostalCode(ctx context.Context, rawCode string) ([]model.ProviderSummary, error)

	// ListActive returns summaries of every active provider.
	ListActive(ctx context.Context) ([]model.ProviderSummary, error)

	// GetByID retrieves a provider with its service areas.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error)

	// RegisterProvider creates a new active provider.
	RegisterProvider(ctx context.Context, req *model.RegisterProviderRequest) (*model.ProviderDetail, error)

	// AddServiceArea declares an additional ZIP code served by a provider.
	AddServiceArea(ctx context.Context, id uuid.UUID, zipCode string) (*model.ProviderDetail, error)

	// Activate makes a provider visible to searches.
	Activate(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error)

	// Deactivate hides a provider from searches.
	Deactivate(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error)
}

// ServiceRequestService defines operations for homeowner service requests.
type ServiceRequestService interface {
	// Submit validates req, checks its ZIP code against the reference
	// dataset and stores it as a submitted request. An unknown or malformed
	// ZIP code is rejected with model.ErrInvalidZipFormat.
	Submit(ctx context.Context, req *model.SubmitServiceRequestRequest) (*model.ServiceRequestDetail, error)

	// GetByID retrieves a submitted request.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequestDetail, error)
}
