package repository

import (
	"context"
	"sync"

	"hvac-finder/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memoryServiceRequestStore implements ServiceRequestStore in process memory.
type memoryServiceRequestStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]model.ServiceRequest
	logger   zerolog.Logger
}

// NewMemoryServiceRequestStore creates an empty in-memory service request store.
func NewMemoryServiceRequestStore(logger zerolog.Logger) ServiceRequestStore {
	return &memoryServiceRequestStore{
		requests: make(map[uuid.UUID]model.ServiceRequest),
		logger:   logger.With().Str("repository", "service-request-memory").Logger(),
	}
}

// AddServiceRequest stores a copy of request.
func (s *memoryServiceRequestStore) AddServiceRequest(ctx context.Context, request *model.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[request.ID]; exists {
		s.logger.Warn().Str("request_id", request.ID.String()).Msg("service request already exists")
		return model.ErrDuplicateServiceRequest
	}

	s.requests[request.ID] = *request

	s.logger.Debug().
		Str("request_id", request.ID.String()).
		Str("zip_code", request.Address.ZipCode).
		Msg("service request added")

	return nil
}

// FindServiceRequestByID returns a copy of the stored request, or nil.
func (s *memoryServiceRequestStore) FindServiceRequestByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, exists := s.requests[id]
	if !exists {
		return nil, nil
	}
	return &request, nil
}
