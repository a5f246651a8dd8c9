package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hvac-finder/internal/metrics"
	"hvac-finder/internal/model"
	"hvac-finder/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// providerService implements ProviderService.
type providerService struct {
	directory repository.ProviderDirectory
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewProviderService creates a new provider service. m may be nil.
func NewProviderService(directory repository.ProviderDirectory, m *metrics.Metrics, logger zerolog.Logger) ProviderService {
	return &providerService{
		directory: directory,
		metrics:   m,
		logger:    logger.With().Str("service", "provider").Logger(),
	}
}

// SearchByPostalCode returns active providers covering rawCode.
func (s *providerService) SearchByPostalCode(ctx context.Context, rawCode string) ([]model.ProviderSummary, error) {
	if strings.TrimSpace(rawCode) == "" {
		s.logger.Warn().Msg("search called with blank postal code")
		return nil, fmt.Errorf("search by postal code: %w", model.InvalidArgument("Postal code is required."))
	}

	start := time.Now()
	code := strings.TrimSpace(rawCode)

	providers, err := s.directory.FindByPostalCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("zip_code", code).Msg("failed to find providers by postal code")
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}

	summaries := toSummaries(providers)
	s.metrics.ObserveSearch(start, len(summaries))

	s.logger.Debug().
		Str("zip_code", code).
		Int("count", len(summaries)).
		Dur("duration", time.Since(start)).
		Msg("provider search completed")

	return summaries, nil
}

// ListActive returns every active provider.
func (s *providerService) ListActive(ctx context.Context) ([]model.ProviderSummary, error) {
	providers, err := s.directory.FindAllActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list active providers")
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return toSummaries(providers), nil
}

// GetByID retrieves a provider by ID.
func (s *providerService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error) {
	provider, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := model.NewProviderDetail(provider)
	return &detail, nil
}

// RegisterProvider builds a provider from req and stores it.
func (s *providerService) RegisterProvider(ctx context.Context, req *model.RegisterProviderRequest) (*model.ProviderDetail, error) {
	provider, err := model.NewProvider(model.ProviderParams{
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address: model.Address{
			Street:  req.Street,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
		},
		Website:     req.Website,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid provider registration")
		return nil, err
	}

	for _, zip := range req.ServiceAreas {
		if err := provider.AddServiceArea(zip); err != nil {
			s.logger.Warn().Err(err).Msg("invalid service area in registration")
			return nil, err
		}
	}

	if err := s.directory.AddProvider(ctx, provider); err != nil {
		s.logger.Error().Err(err).Str("provider_id", provider.ID.String()).Msg("failed to add provider")
		return nil, fmt.Errorf("failed to register provider: %w", err)
	}

	s.metrics.IncrementProvidersRegistered()

	s.logger.Info().
		Str("provider_id", provider.ID.String()).
		Str("company_name", provider.CompanyName).
		Int("service_areas", len(provider.ServiceAreas())).
		Msg("provider registered successfully")

	detail := model.NewProviderDetail(provider)
	return &detail, nil
}

// AddServiceArea adds zipCode to the provider's service areas. Adding a code
// the provider already serves succeeds without change.
func (s *providerService) AddServiceArea(ctx context.Context, id uuid.UUID, zipCode string) (*model.ProviderDetail, error) {
	return s.mutate(ctx, id, func(p *model.Provider) error {
		return p.AddServiceArea(zipCode)
	})
}

// Activate marks the provider active.
func (s *providerService) Activate(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error) {
	return s.mutate(ctx, id, func(p *model.Provider) error {
		p.Activate()
		return nil
	})
}

// Deactivate marks the provider inactive.
func (s *providerService) Deactivate(ctx context.Context, id uuid.UUID) (*model.ProviderDetail, error) {
	return s.mutate(ctx, id, func(p *model.Provider) error {
		p.Deactivate()
		return nil
	})
}

// mutate loads the provider, applies change through the aggregate and writes
// it back.
func (s *providerService) mutate(ctx context.Context, id uuid.UUID, change func(*model.Provider) error) (*model.ProviderDetail, error) {
	provider, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := change(provider); err != nil {
		s.logger.Warn().Err(err).Str("provider_id", id.String()).Msg("provider change rejected")
		return nil, err
	}

	if err := s.directory.UpdateProvider(ctx, provider); err != nil {
		s.logger.Error().Err(err).Str("provider_id", id.String()).Msg("failed to update provider")
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	s.logger.Debug().
		Str("provider_id", id.String()).
		Bool("is_active", provider.IsActive).
		Int("service_areas", len(provider.ServiceAreas())).
		Msg("provider updated")

	detail := model.NewProviderDetail(provider)
	return &detail, nil
}

func (s *providerService) load(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	provider, err := s.directory.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("provider_id", id.String()).Msg("failed to get provider by ID")
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	if provider == nil {
		s.logger.Debug().Str("provider_id", id.String()).Msg("provider not found")
		return nil, model.ErrProviderNotFound
	}

	return provider, nil
}

func toSummaries(providers []*model.Provider) []model.ProviderSummary {
	summaries := make([]model.ProviderSummary, len(providers))
	for i, p := range providers {
		summaries[i] = model.NewProviderSummary(p)
	}
	return summaries
}
