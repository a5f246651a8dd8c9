package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hvac-finder/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProviderService is a mock implementation of ProviderService.
type MockProviderService struct {
	mock.Mock
}

func (m *MockProviderService) SearchByPostalCode(ctx context.Context, rawCode string) ([]model.ProviderSummary, error) {
	args := m.Called(ctx, rawCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProviderSummary), args.Error(1)
}

func (m *MockProviderService) ListActive(ctx context.Context) ([]model.ProviderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProviderSummary), args.Error(1)
}

func (m *MockProviderService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error) {
	return m.detail(m.Called(ctx, id))
}

func (m *MockProviderService) RegisterProvider(ctx context.Context, req *model.RegisterProviderRequest) (*model.ProviderDetail, error) {
	return m.detail(m.Called(ctx, req))
}

func (m *MockProviderService) AddServiceArea(ctx context.Context, id uuid.UUID, zipCode string) (*model.ProviderDetail, error) {
	return m.detail(m.Called(ctx, id, zipCode))
}

func (m *MockProviderService) Activate(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error) {
	return m.detail(m.Called(ctx, id))
}

func (m *MockProviderService) Deactivate(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error) {
	return m.detail(m.Called(ctx, id))
}

func (m *MockProviderService) detail(args mock.Arguments) (*model.ProviderDetail, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProviderDetail), args.Error(1)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestProviderHandler_Search(t *testing.T) {
	logger := zerolog.Nop()

	results := []model.ProviderSummary{
		{ID: uuid.New(), CompanyName: "Alpha HVAC", City: "Springfield", State: "IL"},
		{ID: uuid.New(), CompanyName: "Beta HVAC", City: "Springfield", State: "IL"},
	}

	tests := []struct {
		name           string
		query          string
		mockReturn     []model.ProviderSummary
		mockError      error
		expectedStatus int
		expectService  bool
		zipCode        string
	}{
		{
			name:           "Success",
			query:          "?zipCode=62704",
			mockReturn:     results,
			expectedStatus: http.StatusOK,
			expectService:  true,
			zipCode:        "62704",
		},
		{
			name:           "No matches",
			query:          "?zipCode=00501",
			mockReturn:     []model.ProviderSummary{},
			expectedStatus: http.StatusOK,
			expectService:  true,
			zipCode:        "00501",
		},
		{
			name:           "Missing zipCode",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Too short",
			query:          "?zipCode=6270",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Letters",
			query:          "?zipCode=ABCDE",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Padded with spaces",
			query:          "?zipCode=%2062704",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			query:          "?zipCode=62704",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
			zipCode:        "62704",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProviderService)
			handler := NewProviderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("SearchByPostalCode", mock.Anything, tt.zipCode).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/providers"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Search(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "SearchByPostalCode", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProviderHandler_Search_BadRequestBody(t *testing.T) {
	handler := NewProviderHandler(new(MockProviderService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/providers?zipCode=1234", nil)
	w := httptest.NewRecorder()
	handler.Search(w, req)

	resp := decodeError(t, w)
	assert.Equal(t, model.ErrCodeInvalidZipCode, resp.Error)
	assert.Equal(t, "A valid 5-digit ZIP code is required.", resp.Message)
}

func TestProviderHandler_Search_ResponseBody(t *testing.T) {
	mockService := new(MockProviderService)
	id := uuid.New()
	mockService.On("SearchByPostalCode", mock.Anything, "62704").Return([]model.ProviderSummary{
		{ID: id, CompanyName: "Cool Air", Phone: "217-555-0101", Email: "a@example.com", City: "Springfield", State: "IL"},
	}, nil)

	handler := NewProviderHandler(mockService, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/providers?zipCode=62704", nil)
	w := httptest.NewRecorder()
	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0]["id"])
	assert.Equal(t, "Cool Air", body[0]["companyName"])
	assert.Equal(t, "Springfield", body[0]["city"])
	assert.NotContains(t, body[0], "website")
}

func TestProviderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	id := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		mockReturn     *model.ProviderDetail
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			pathID:         id.String(),
			mockReturn:     &model.ProviderDetail{ProviderSummary: model.ProviderSummary{ID: id}, ServiceAreas: []string{"62704"}},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			pathID:         id.String(),
			mockError:      model.ErrProviderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Wrapped not found",
			pathID:         id.String(),
			mockError:      fmt.Errorf("failed to update provider: %w", model.ErrProviderNotFound),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid ID format",
			pathID:         "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing ID",
			pathID:         "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProviderService)
			handler := NewProviderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, id).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/providers/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestProviderHandler_Register(t *testing.T) {
	logger := zerolog.Nop()

	validBody := `{
		"companyName": "Cool Air",
		"phone": "217-555-0101",
		"email": "service@example.com",
		"street": "100 Industrial Blvd",
		"city": "Springfield",
		"state": "IL",
		"zipCode": "62704",
		"serviceAreas": ["62704", "62701"]
	}`

	tests := []struct {
		name           string
		body           string
		mockError      error
		expectedStatus int
		expectService  bool
		expectedCode   string
		invalidField   string
	}{
		{
			name:           "Success",
			body:           validBody,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			body:           `{"companyName": `,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Missing company name",
			body:           strings.Replace(validBody, `"Cool Air"`, `""`, 1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidationFailed,
			invalidField:   "companyName",
		},
		{
			name:           "Invalid email",
			body:           strings.Replace(validBody, "service@example.com", "not-an-email", 1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidationFailed,
			invalidField:   "email",
		},
		{
			name:           "State too long",
			body:           strings.Replace(validBody, `"IL"`, `"Illinois"`, 1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidationFailed,
			invalidField:   "state",
		},
		{
			name:           "Blank after trimming",
			body:           strings.Replace(validBody, `"Cool Air"`, `"   "`, 1),
			mockError:      model.InvalidArgument("Company name is required."),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
			expectedCode:   model.ErrCodeInvalidArgument,
		},
		{
			name:           "Duplicate",
			body:           validBody,
			mockError:      fmt.Errorf("failed to register provider: %w", model.ErrDuplicateProvider),
			expectedStatus: http.StatusConflict,
			expectService:  true,
			expectedCode:   model.ErrCodeDuplicateProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProviderService)
			handler := NewProviderHandler(mockService, logger)

			if tt.expectService {
				var ret *model.ProviderDetail
				if tt.mockError == nil {
					ret = &model.ProviderDetail{ProviderSummary: model.ProviderSummary{ID: uuid.New(), CompanyName: "Cool Air"}}
				}
				mockService.On("RegisterProvider", mock.Anything, mock.AnythingOfType("*model.RegisterProviderRequest")).
					Return(ret, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/providers", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				resp := decodeError(t, w)
				assert.Equal(t, tt.expectedCode, resp.Error)
				if tt.invalidField != "" {
					assert.Contains(t, resp.Fields, tt.invalidField)
				}
			}
			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "RegisterProvider", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProviderHandler_AddServiceArea(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProviderService)
		mockService.On("AddServiceArea", mock.Anything, id, "62701").
			Return(&model.ProviderDetail{ServiceAreas: []string{"62704", "62701"}}, nil)
		handler := NewProviderHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/providers/"+id.String()+"/service-areas", strings.NewReader(`{"zipCode":"62701"}`))
		req.SetPathValue("id", id.String())
		w := httptest.NewRecorder()
		handler.AddServiceArea(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var detail model.ProviderDetail
		require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
		assert.Equal(t, []string{"62704", "62701"}, detail.ServiceAreas)
		mockService.AssertExpectations(t)
	})

	t.Run("Missing zipCode", func(t *testing.T) {
		mockService := new(MockProviderService)
		handler := NewProviderHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/providers/"+id.String()+"/service-areas", strings.NewReader(`{}`))
		req.SetPathValue("id", id.String())
		w := httptest.NewRecorder()
		handler.AddServiceArea(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Fields, "zipCode")
		mockService.AssertNotCalled(t, "AddServiceArea", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown provider", func(t *testing.T) {
		mockService := new(MockProviderService)
		mockService.On("AddServiceArea", mock.Anything, id, "62701").Return(nil, model.ErrProviderNotFound)
		handler := NewProviderHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/providers/"+id.String()+"/service-areas", strings.NewReader(`{"zipCode":"62701"}`))
		req.SetPathValue("id", id.String())
		w := httptest.NewRecorder()
		handler.AddServiceArea(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, model.ErrCodeProviderNotFound, decodeError(t, w).Error)
	})
}

func TestProviderHandler_ActivateDeactivate(t *testing.T) {
	id := uuid.New()

	mockService := new(MockProviderService)
	mockService.On("Deactivate", mock.Anything, id).Return(&model.ProviderDetail{IsActive: false}, nil)
	mockService.On("Activate", mock.Anything, id).Return(&model.ProviderDetail{IsActive: true}, nil)
	handler := NewProviderHandler(mockService, zerolog.Nop())

	for _, tc := range []struct {
		action string
		fn     http.HandlerFunc
		active bool
	}{
		{action: "deactivate", fn: handler.Deactivate, active: false},
		{action: "activate", fn: handler.Activate, active: true},
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/providers/"+id.String()+"/"+tc.action, nil)
		req.SetPathValue("id", id.String())
		w := httptest.NewRecorder()

		tc.fn(w, req)

		require.Equal(t, http.StatusOK, w.Code, tc.action)
		var detail model.ProviderDetail
		require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
		assert.Equal(t, tc.active, detail.IsActive, tc.action)
	}

	mockService.AssertExpectations(t)
}

func TestProviderHandler_ListActive(t *testing.T) {
	mockService := new(MockProviderService)
	mockService.On("ListActive", mock.Anything).Return([]model.ProviderSummary{{CompanyName: "Cool Air"}}, nil)
	handler := NewProviderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/providers/active", nil)
	w := httptest.NewRecorder()
	handler.ListActive(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []model.ProviderSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Len(t, body, 1)
}
