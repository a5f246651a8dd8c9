package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequestParams() ServiceRequestParams {
	return ServiceRequestParams{
		Contact: ContactInfo{Name: " Jane Homeowner ", Email: "jane@example.com ", Phone: " 217-555-0142"},
		Address: Address{
			Street:  "42 Elm St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: " 62704 ",
		},
		IssueDescription:  "  Furnace blows cold air.  ",
		IssueCategory:     IssueCategoryHeating,
		UrgencyLevel:      UrgencyUrgent,
		EquipmentDetails:  " Carrier 59TP6 ",
		PreferredSchedule: " Weekday mornings ",
	}
}

func TestNewServiceRequest_Success(t *testing.T) {
	before := time.Now().Add(-time.Second)

	r, err := NewServiceRequest(validRequestParams())

	require.NoError(t, err)
	require.NotNil(t, r)
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, ContactInfo{Name: "Jane Homeowner", Email: "jane@example.com", Phone: "217-555-0142"}, r.Contact)
	assert.Equal(t, "62704", r.Address.ZipCode)
	assert.Equal(t, "Furnace blows cold air.", r.IssueDescription)
	assert.Equal(t, IssueCategoryHeating, r.IssueCategory)
	assert.Equal(t, UrgencyUrgent, r.UrgencyLevel)
	assert.Equal(t, "Carrier 59TP6", r.EquipmentDetails)
	assert.Equal(t, "Weekday mornings", r.PreferredSchedule)
	assert.Equal(t, RequestStatusSubmitted, r.Status)
	assert.True(t, r.CreatedAt.After(before))
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
}

func TestNewServiceRequest_Defaults(t *testing.T) {
	params := validRequestParams()
	params.IssueCategory = ""
	params.UrgencyLevel = ""

	r, err := NewServiceRequest(params)

	require.NoError(t, err)
	assert.Equal(t, IssueCategoryOther, r.IssueCategory)
	assert.Equal(t, UrgencyStandard, r.UrgencyLevel)
}

func TestNewServiceRequest_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ServiceRequestParams)
		errorMsg string
	}{
		{
			name:     "Missing contact name",
			mutate:   func(p *ServiceRequestParams) { p.Contact.Name = " " },
			errorMsg: "Name is required.",
		},
		{
			name:     "Missing contact email",
			mutate:   func(p *ServiceRequestParams) { p.Contact.Email = "" },
			errorMsg: "Email is required.",
		},
		{
			name:     "Missing contact phone",
			mutate:   func(p *ServiceRequestParams) { p.Contact.Phone = "" },
			errorMsg: "Phone is required.",
		},
		{
			name:     "Missing address",
			mutate:   func(p *ServiceRequestParams) { p.Address = Address{} },
			errorMsg: "Street is required.",
		},
		{
			name:     "Blank description",
			mutate:   func(p *ServiceRequestParams) { p.IssueDescription = "\t\n" },
			errorMsg: "Issue description is required.",
		},
		{
			name:     "Description too long",
			mutate:   func(p *ServiceRequestParams) { p.IssueDescription = strings.Repeat("a", MaxIssueDescriptionLength+1) },
			errorMsg: "Issue description must not exceed 2000 characters.",
		},
		{
			name:     "Unknown category",
			mutate:   func(p *ServiceRequestParams) { p.IssueCategory = "Plumbing" },
			errorMsg: "Issue category is not recognised.",
		},
		{
			name:     "Unknown urgency",
			mutate:   func(p *ServiceRequestParams) { p.UrgencyLevel = "Whenever" },
			errorMsg: "Urgency level is not recognised.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validRequestParams()
			tt.mutate(&params)

			r, err := NewServiceRequest(params)

			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, tt.errorMsg, err.Error())
		})
	}
}

func TestNewServiceRequest_DescriptionLimitCountsCharacters(t *testing.T) {
	params := validRequestParams()
	params.IssueDescription = strings.Repeat("é", MaxIssueDescriptionLength)

	r, err := NewServiceRequest(params)

	require.NoError(t, err)
	assert.Len(t, []rune(r.IssueDescription), MaxIssueDescriptionLength)
}

func TestNewServiceRequestDetail(t *testing.T) {
	r, err := NewServiceRequest(validRequestParams())
	require.NoError(t, err)

	detail := NewServiceRequestDetail(r)

	assert.Equal(t, r.ID, detail.ID)
	assert.Equal(t, "Jane Homeowner", detail.Name)
	assert.Equal(t, "jane@example.com", detail.Email)
	assert.Equal(t, "62704", detail.ZipCode)
	assert.Equal(t, RequestStatusSubmitted, detail.Status)
	assert.Equal(t, r.CreatedAt, detail.CreatedAt)
}

func TestInvalidZipCode_MatchesSentinel(t *testing.T) {
	err := InvalidZipCode("ZIP code 99999 was not found. Please verify and try again.")

	assert.ErrorIs(t, err, ErrInvalidZipFormat)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, ErrCodeInvalidZipCode, err.Code)
}
