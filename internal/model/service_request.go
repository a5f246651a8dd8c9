package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxIssueDescriptionLength is measured in characters, not bytes.
const MaxIssueDescriptionLength = 2000

// IssueCategory classifies the problem a homeowner reports.
type IssueCategory string

const (
	IssueCategoryHeating      IssueCategory = "Heating"
	IssueCategoryCooling      IssueCategory = "Cooling"
	IssueCategoryVentilation  IssueCategory = "Ventilation"
	IssueCategoryThermostat   IssueCategory = "Thermostat"
	IssueCategoryMaintenance  IssueCategory = "Maintenance"
	IssueCategoryInstallation IssueCategory = "Installation"
	IssueCategoryOther        IssueCategory = "Other"
)

// Valid reports whether c is a known category.
func (c IssueCategory) Valid() bool {
	switch c {
	case IssueCategoryHeating, IssueCategoryCooling, IssueCategoryVentilation, IssueCategoryThermostat,
		IssueCategoryMaintenance, IssueCategoryInstallation, IssueCategoryOther:
		return true
	}
	return false
}

// UrgencyLevel is how quickly the homeowner needs a visit.
type UrgencyLevel string

const (
	UrgencyLow       UrgencyLevel = "Low"
	UrgencyStandard  UrgencyLevel = "Standard"
	UrgencyUrgent    UrgencyLevel = "Urgent"
	UrgencyEmergency UrgencyLevel = "Emergency"
)

// Valid reports whether u is a known urgency level.
func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyStandard, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

// RequestStatus tracks a service request through its lifecycle.
type RequestStatus string

const (
	RequestStatusSubmitted    RequestStatus = "Submitted"
	RequestStatusAcknowledged RequestStatus = "Acknowledged"
	RequestStatusInProgress   RequestStatus = "InProgress"
	RequestStatusCompleted    RequestStatus = "Completed"
	RequestStatusCancelled    RequestStatus = "Cancelled"
)

// ServiceRequestParams holds the raw fields of a homeowner's request.
type ServiceRequestParams struct {
	Contact           ContactInfo
	Address           Address
	IssueDescription  string
	IssueCategory     IssueCategory
	UrgencyLevel      UrgencyLevel
	EquipmentDetails  string
	PreferredSchedule string
}

// ServiceRequest is a homeowner's request for HVAC service at an address.
type ServiceRequest struct {
	ID                uuid.UUID
	Contact           ContactInfo
	Address           Address
	IssueDescription  string
	IssueCategory     IssueCategory
	UrgencyLevel      UrgencyLevel
	EquipmentDetails  string
	PreferredSchedule string
	Status            RequestStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewServiceRequest validates params and builds a submitted request.
// An empty category defaults to Other and an empty urgency to Standard.
func NewServiceRequest(params ServiceRequestParams) (*ServiceRequest, error) {
	contact, err := NewContactInfo(params.Contact.Name, params.Contact.Email, params.Contact.Phone)
	if err != nil {
		return nil, err
	}

	address, err := NewAddress(params.Address.Street, params.Address.City, params.Address.State, params.Address.ZipCode)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(params.IssueDescription)
	if description == "" {
		return nil, InvalidArgument("Issue description is required.")
	}
	if utf8.RuneCountInString(description) > MaxIssueDescriptionLength {
		return nil, InvalidArgument("Issue description must not exceed 2000 characters.")
	}

	category := params.IssueCategory
	if category == "" {
		category = IssueCategoryOther
	}
	if !category.Valid() {
		return nil, InvalidArgument("Issue category is not recognised.")
	}

	urgency := params.UrgencyLevel
	if urgency == "" {
		urgency = UrgencyStandard
	}
	if !urgency.Valid() {
		return nil, InvalidArgument("Urgency level is not recognised.")
	}

	// postgres keeps microseconds
	now := time.Now().UTC().Truncate(time.Microsecond)

	return &ServiceRequest{
		ID:                uuid.New(),
		Contact:           contact,
		Address:           address,
		IssueDescription:  description,
		IssueCategory:     category,
		UrgencyLevel:      urgency,
		EquipmentDetails:  strings.TrimSpace(params.EquipmentDetails),
		PreferredSchedule: strings.TrimSpace(params.PreferredSchedule),
		Status:            RequestStatusSubmitted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
