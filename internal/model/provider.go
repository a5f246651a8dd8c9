package model

import (
	"strings"

	"github.com/google/uuid"
)

// ServiceArea is a ZIP code a provider declares it will service.
type ServiceArea struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProviderID uuid.UUID `json:"providerId" db:"provider_id"`
	ZipCode    string    `json:"zipCode" db:"zip_code"`
}

// ProviderParams holds the raw fields used to register a provider.
type ProviderParams struct {
	CompanyName string
	Phone       string
	Email       string
	Address     Address
	Website     string
	Description string
	LogoURL     string
}

// Provider is a residential HVAC business. It is the aggregate root for its
// service areas: they can only be added through AddServiceArea.
type Provider struct {
	ID          uuid.UUID
	CompanyName string
	Phone       string
	Email       string
	Address     Address
	Website     string
	Description string
	LogoURL     string
	IsActive    bool

	serviceAreas []ServiceArea
}

// NewProvider validates params and builds an active provider with a fresh ID.
// Either every required field is present or no provider is returned.
func NewProvider(params ProviderParams) (*Provider, error) {
	if isBlank(params.CompanyName) {
		return nil, InvalidArgument("Company name is required.")
	}
	if isBlank(params.Phone) {
		return nil, InvalidArgument("Phone is required.")
	}
	if isBlank(params.Email) {
		return nil, InvalidArgument("Email is required.")
	}

	// Re-run the address constructor so a zero or hand-built Address cannot slip through.
	address, err := NewAddress(params.Address.Street, params.Address.City, params.Address.State, params.Address.ZipCode)
	if err != nil {
		return nil, err
	}

	return &Provider{
		ID:          uuid.New(),
		CompanyName: strings.TrimSpace(params.CompanyName),
		Phone:       strings.TrimSpace(params.Phone),
		Email:       strings.TrimSpace(params.Email),
		Address:     address,
		Website:     strings.TrimSpace(params.Website),
		Description: strings.TrimSpace(params.Description),
		LogoURL:     strings.TrimSpace(params.LogoURL),
		IsActive:    true,
	}, nil
}

// RestoreProvider rebuilds a provider from persisted state without
// re-validating it.
func RestoreProvider(p Provider, areas []ServiceArea) *Provider {
	restored := p
	restored.serviceAreas = append([]ServiceArea(nil), areas...)
	return &restored
}

// ServiceAreas returns a copy of the provider's service areas in the order
// they were added.
func (p *Provider) ServiceAreas() []ServiceArea {
	areas := make([]ServiceArea, len(p.serviceAreas))
	copy(areas, p.serviceAreas)
	return areas
}

// AddServiceArea declares zipCode as serviced by p. Adding a code that is
// already declared is a no-op.
func (p *Provider) AddServiceArea(zipCode string) error {
	if isBlank(zipCode) {
		return InvalidArgument("ZipCode is required.")
	}

	trimmed := strings.TrimSpace(zipCode)
	if p.CoversZipCode(trimmed) {
		return nil
	}

	p.serviceAreas = append(p.serviceAreas, ServiceArea{
		ID:         uuid.New(),
		ProviderID: p.ID,
		ZipCode:    trimmed,
	})
	return nil
}

// CoversZipCode reports whether zipCode is one of p's service areas.
// The comparison is exact.
func (p *Provider) CoversZipCode(zipCode string) bool {
	for _, sa := range p.serviceAreas {
		if sa.ZipCode == zipCode {
			return true
		}
	}
	return false
}

// Activate makes the provider visible to searches.
func (p *Provider) Activate() {
	p.IsActive = true
}

// Deactivate hides the provider from searches.
func (p *Provider) Deactivate() {
	p.IsActive = false
}

// Clone returns a deep copy of p.
func (p *Provider) Clone() *Provider {
	return RestoreProvider(*p, p.serviceAreas)
}
