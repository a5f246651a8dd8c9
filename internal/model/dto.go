package model

import (
	"time"

	"github.com/google/uuid"
)

// ValidationResult is the outcome of validating a user-supplied ZIP code.
// Location fields are set only when IsValid is true; ErrorMessage only when
// it is false.
type ValidationResult struct {
	IsValid           bool   `json:"isValid"`
	City              string `json:"city,omitempty"`
	StateAbbreviation string `json:"stateAbbreviation,omitempty"`
	StateName         string `json:"stateName,omitempty"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
}

// ProviderSummary is the search-result view of a provider. City and State
// come from the provider's registered address.
type ProviderSummary struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city"`
	State       string    `json:"state"`
}

// ProviderDetail is a provider summary plus its declared service areas.
type ProviderDetail struct {
	ProviderSummary
	LogoURL      string   `json:"logoUrl,omitempty"`
	IsActive     bool     `json:"isActive"`
	ServiceAreas []string `json:"serviceAreas"`
}

// NewProviderSummary maps a provider to its search-result view.
func NewProviderSummary(p *Provider) ProviderSummary {
	return ProviderSummary{
		ID:          p.ID,
		CompanyName: p.CompanyName,
		Phone:       p.Phone,
		Email:       p.Email,
		Website:     p.Website,
		Description: p.Description,
		City:        p.Address.City,
		State:       p.Address.State,
	}
}

// NewProviderDetail maps a provider to its detail view.
func NewProviderDetail(p *Provider) ProviderDetail {
	areas := p.ServiceAreas()
	zips := make([]string, len(areas))
	for i, sa := range areas {
		zips[i] = sa.ZipCode
	}

	return ProviderDetail{
		ProviderSummary: NewProviderSummary(p),
		LogoURL:         p.LogoURL,
		IsActive:        p.IsActive,
		ServiceAreas:    zips,
	}
}

// RegisterProviderRequest is the request payload for registering a provider.
type RegisterProviderRequest struct {
	CompanyName  string   `json:"companyName" validate:"required,max=200"`
	Phone        string   `json:"phone" validate:"required,max=20"`
	Email        string   `json:"email" validate:"required,email,max=254"`
	Website      string   `json:"website,omitempty" validate:"omitempty,max=500"`
	Description  string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	LogoURL      string   `json:"logoUrl,omitempty" validate:"omitempty,max=500"`
	Street       string   `json:"street" validate:"required,max=300"`
	City         string   `json:"city" validate:"required,max=100"`
	State        string   `json:"state" validate:"required,max=2"`
	ZipCode      string   `json:"zipCode" validate:"required,max=10"`
	ServiceAreas []string `json:"serviceAreas,omitempty" validate:"omitempty,dive,required,max=10"`
}

// ServiceAreaRequest is the request payload for adding a service area.
type ServiceAreaRequest struct {
	ZipCode string `json:"zipCode" validate:"required,max=10"`
}

// SubmitServiceRequestRequest is the request payload for submitting a
// service request.
type SubmitServiceRequestRequest struct {
	Name              string        `json:"name" validate:"required,max=200"`
	Email             string        `json:"email" validate:"required,email,max=254"`
	Phone             string        `json:"phone" validate:"required,max=20"`
	Street            string        `json:"street" validate:"required,max=300"`
	City              string        `json:"city" validate:"required,max=100"`
	State             string        `json:"state" validate:"required,max=2"`
	ZipCode           string        `json:"zipCode" validate:"required,max=10"`
	IssueDescription  string        `json:"issueDescription" validate:"required,max=2000"`
	IssueCategory     IssueCategory `json:"issueCategory,omitempty" validate:"omitempty,oneof=Heating Cooling Ventilation Thermostat Maintenance Installation Other"`
	UrgencyLevel      UrgencyLevel  `json:"urgencyLevel,omitempty" validate:"omitempty,oneof=Low Standard Urgent Emergency"`
	EquipmentDetails  string        `json:"equipmentDetails,omitempty" validate:"omitempty,max=500"`
	PreferredSchedule string        `json:"preferredSchedule,omitempty" validate:"omitempty,max=200"`
}

// ServiceRequestDetail is the response view of a service request.
type ServiceRequestDetail struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	Street            string        `json:"street"`
	City              string        `json:"city"`
	State             string        `json:"state"`
	ZipCode           string        `json:"zipCode"`
	IssueDescription  string        `json:"issueDescription"`
	IssueCategory     IssueCategory `json:"issueCategory"`
	UrgencyLevel      UrgencyLevel  `json:"urgencyLevel"`
	EquipmentDetails  string        `json:"equipmentDetails,omitempty"`
	PreferredSchedule string        `json:"preferredSchedule,omitempty"`
	Status            RequestStatus `json:"status"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// NewServiceRequestDetail maps a service request to its response view.
func NewServiceRequestDetail(r *ServiceRequest) ServiceRequestDetail {
	return ServiceRequestDetail{
		ID:                r.ID,
		Name:              r.Contact.Name,
		Email:             r.Contact.Email,
		Phone:             r.Contact.Phone,
		Street:            r.Address.Street,
		City:              r.Address.City,
		State:             r.Address.State,
		ZipCode:           r.Address.ZipCode,
		IssueDescription:  r.IssueDescription,
		IssueCategory:     r.IssueCategory,
		UrgencyLevel:      r.UrgencyLevel,
		EquipmentDetails:  r.EquipmentDetails,
		PreferredSchedule: r.PreferredSchedule,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
	}
}
