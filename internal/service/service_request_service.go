package service

import (
	"context"
	"fmt"

	"hvac-finder/internal/metrics"
	"hvac-finder/internal/model"
	"hvac-finder/internal/repository"
	"hvac-finder/internal/zipcode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// serviceRequestService implements ServiceRequestService.
type serviceRequestService struct {
	store    repository.ServiceRequestStore
	zipCodes zipcode.Validator
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewServiceRequestService creates a new service request service. m may be nil.
func NewServiceRequestService(store repository.ServiceRequestStore, zipCodes zipcode.Validator, m *metrics.Metrics, logger zerolog.Logger) ServiceRequestService {
	return &serviceRequestService{
		store:    store,
		zipCodes: zipCodes,
		metrics:  m,
		logger:   logger.With().Str("service", "service-request").Logger(),
	}
}

// Submit builds a service request from req and stores it.
func (s *serviceRequestService) Submit(ctx context.Context, req *model.SubmitServiceRequestRequest) (*model.ServiceRequestDetail, error) {
	request, err := model.NewServiceRequest(model.ServiceRequestParams{
		Contact: model.ContactInfo{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
		Address: model.Address{
			Street:  req.Street,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
		},
		IssueDescription:  req.IssueDescription,
		IssueCategory:     req.IssueCategory,
		UrgencyLevel:      req.UrgencyLevel,
		EquipmentDetails:  req.EquipmentDetails,
		PreferredSchedule: req.PreferredSchedule,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid service request")
		return nil, err
	}

	if result := s.zipCodes.Validate(request.Address.ZipCode); !result.IsValid {
		s.logger.Warn().
			Str("zip_code", request.Address.ZipCode).
			Str("reason", result.ErrorMessage).
			Msg("service request rejected for zip code")
		return nil, model.InvalidZipCode(result.ErrorMessage)
	}

	if err := s.store.AddServiceRequest(ctx, request); err != nil {
		s.logger.Error().Err(err).Str("request_id", request.ID.String()).Msg("failed to add service request")
		return nil, fmt.Errorf("failed to submit service request: %w", err)
	}

	s.metrics.IncrementRequestsSubmitted(string(request.UrgencyLevel))

	s.logger.Info().
		Str("request_id", request.ID.String()).
		Str("zip_code", request.Address.ZipCode).
		Str("category", string(request.IssueCategory)).
		Str("urgency", string(request.UrgencyLevel)).
		Msg("service request submitted successfully")

	detail := model.NewServiceRequestDetail(request)
	return &detail, nil
}

// GetByID retrieves a service request by ID.
func (s *serviceRequestService) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequestDetail, error) {
	request, err := s.store.FindServiceRequestByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to get service request by ID")
		return nil, fmt.Errorf("failed to get service request: %w", err)
	}

	if request == nil {
		s.logger.Debug().Str("request_id", id.String()).Msg("service request not found")
		return nil, model.ErrServiceRequestNotFound
	}

	detail := model.NewServiceRequestDetail(request)
	return &detail, nil
}
