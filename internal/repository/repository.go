package repository

import (
	"context"

	"hvac-finder/internal/model"

	"github.com/google/uuid"
)

// ProviderDirectory stores providers and answers coverage queries.
// Implementations perform no validation of the providers they store.
type ProviderDirectory interface {
	// AddProvider inserts a fully constructed provider.
	// Returns model.ErrDuplicateProvider if the ID is already stored.
	AddProvider(ctx context.Context, provider *model.Provider) error

	// UpdateProvider persists the activation flag, editable fields and any
	// service areas added to an already stored provider.
	// Returns model.ErrProviderNotFound if the provider is unknown.
	UpdateProvider(ctx context.Context, provider *model.Provider) error

	// FindByID returns nil, nil when no provider has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Provider, error)

	// FindByPostalCode returns active providers with a service area exactly
	// equal to zipCode, ordered by company name then insertion order.
	FindByPostalCode(ctx context.Context, zipCode string) ([]*model.Provider, error)

	// FindAllActive returns active providers ordered by company name then
	// insertion order.
	FindAllActive(ctx context.Context) ([]*model.Provider, error)

	// Count returns the number of stored providers, active or not.
	Count(ctx context.Context) (int, error)
}

// ServiceRequestStore persists homeowner service requests.
type ServiceRequestStore interface {
	// AddServiceRequest inserts a fully constructed request.
	// Returns model.ErrDuplicateServiceRequest if the ID is already stored.
	AddServiceRequest(ctx context.Context, request *model.ServiceRequest) error

	// FindServiceRequestByID returns nil, nil when no request has the given ID.
	FindServiceRequestByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error)
}
