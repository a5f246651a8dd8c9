package repository

import (
	"context"
	"errors"
	"fmt"

	"hvac-finder/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// serviceRequestRepository implements ServiceRequestStore using PostgreSQL.
type serviceRequestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewServiceRequestRepository creates a new PostgreSQL-backed service request store.
func NewServiceRequestRepository(pool *pgxpool.Pool, logger zerolog.Logger) ServiceRequestStore {
	return &serviceRequestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "service-request").Logger(),
	}
}

// AddServiceRequest inserts a new service request.
func (r *serviceRequestRepository) AddServiceRequest(ctx context.Context, request *model.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (
			id, contact_name, contact_email, contact_phone,
			street, city, state, zip_code,
			issue_description, issue_category, urgency_level,
			equipment_details, preferred_schedule, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		request.ID,
		request.Contact.Name,
		request.Contact.Email,
		request.Contact.Phone,
		request.Address.Street,
		request.Address.City,
		request.Address.State,
		request.Address.ZipCode,
		request.IssueDescription,
		string(request.IssueCategory),
		string(request.UrgencyLevel),
		request.EquipmentDetails,
		request.PreferredSchedule,
		string(request.Status),
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn().Str("request_id", request.ID.String()).Msg("service request already exists")
			return model.ErrDuplicateServiceRequest
		}
		r.logger.Error().Err(err).Str("request_id", request.ID.String()).Msg("failed to create service request")
		return fmt.Errorf("failed to create service request: %w", err)
	}

	r.logger.Debug().
		Str("request_id", request.ID.String()).
		Str("zip_code", request.Address.ZipCode).
		Msg("service request created successfully")

	return nil
}

// FindServiceRequestByID retrieves a service request by ID.
func (r *serviceRequestRepository) FindServiceRequestByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	query := `
		SELECT id, contact_name, contact_email, contact_phone,
			street, city, state, zip_code,
			issue_description, issue_category, urgency_level,
			equipment_details, preferred_schedule, status, created_at, updated_at
		FROM service_requests
		WHERE id = $1
	`

	var (
		request  model.ServiceRequest
		category string
		urgency  string
		status   string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.Contact.Name,
		&request.Contact.Email,
		&request.Contact.Phone,
		&request.Address.Street,
		&request.Address.City,
		&request.Address.State,
		&request.Address.ZipCode,
		&request.IssueDescription,
		&category,
		&urgency,
		&request.EquipmentDetails,
		&request.PreferredSchedule,
		&status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("request_id", id.String()).Msg("service request not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to query service request")
		return nil, fmt.Errorf("failed to query service request: %w", err)
	}

	request.IssueCategory = model.IssueCategory(category)
	request.UrgencyLevel = model.UrgencyLevel(urgency)
	request.Status = model.RequestStatus(status)
	request.CreatedAt = request.CreatedAt.UTC()
	request.UpdatedAt = request.UpdatedAt.UTC()

	return &request, nil
}
