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

const uniqueViolation = "23505"

const providerColumns = `
	p.id, p.company_name, p.phone, p.email, p.website, p.description, p.logo_url,
	p.street, p.city, p.state, p.zip_code, p.is_active
`

// providerRepository implements ProviderDirectory using PostgreSQL.
type providerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProviderRepository creates a new PostgreSQL-backed provider directory.
func NewProviderRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProviderDirectory {
	return &providerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "provider").Logger(),
	}
}

// AddProvider inserts the provider and its service areas in one transaction.
func (r *providerRepository) AddProvider(ctx context.Context, provider *model.Provider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO providers (
			id, company_name, phone, email, website, description, logo_url,
			street, city, state, zip_code, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, query,
		provider.ID,
		provider.CompanyName,
		provider.Phone,
		provider.Email,
		provider.Website,
		provider.Description,
		provider.LogoURL,
		provider.Address.Street,
		provider.Address.City,
		provider.Address.State,
		provider.Address.ZipCode,
		provider.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn().Str("provider_id", provider.ID.String()).Msg("provider already exists")
			return model.ErrDuplicateProvider
		}
		r.logger.Error().Err(err).Str("provider_id", provider.ID.String()).Msg("failed to create provider")
		return fmt.Errorf("failed to create provider: %w", err)
	}

	if err := r.insertServiceAreas(ctx, tx, provider.ServiceAreas()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("provider_id", provider.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create provider: %w", err)
	}

	r.logger.Debug().
		Str("provider_id", provider.ID.String()).
		Int("service_areas", len(provider.ServiceAreas())).
		Msg("provider created successfully")

	return nil
}

// UpdateProvider writes the provider's fields and inserts any new service areas.
func (r *providerRepository) UpdateProvider(ctx context.Context, provider *model.Provider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE providers
		SET company_name = $2, phone = $3, email = $4, website = $5, description = $6,
			logo_url = $7, street = $8, city = $9, state = $10, zip_code = $11,
			is_active = $12, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		provider.ID,
		provider.CompanyName,
		provider.Phone,
		provider.Email,
		provider.Website,
		provider.Description,
		provider.LogoURL,
		provider.Address.Street,
		provider.Address.City,
		provider.Address.State,
		provider.Address.ZipCode,
		provider.IsActive,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("provider_id", provider.ID.String()).Msg("failed to update provider")
		return fmt.Errorf("failed to update provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("provider_id", provider.ID.String()).Msg("provider not found")
		return model.ErrProviderNotFound
	}

	if err := r.insertServiceAreas(ctx, tx, provider.ServiceAreas()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("provider_id", provider.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to update provider: %w", err)
	}

	return nil
}

// insertServiceAreas queues one insert per area. Areas already stored for the
// provider are skipped by the unique (provider_id, zip_code) constraint.
func (r *providerRepository) insertServiceAreas(ctx context.Context, tx pgx.Tx, areas []model.ServiceArea) error {
	if len(areas) == 0 {
		return nil
	}

	query := `
		INSERT INTO service_areas (id, provider_id, zip_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider_id, zip_code) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, sa := range areas {
		batch.Queue(query, sa.ID, sa.ProviderID, sa.ZipCode)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(areas); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("provider_id", areas[i].ProviderID.String()).
				Str("zip_code", areas[i].ZipCode).
				Msg("failed to create service area")
			return fmt.Errorf("failed to create service area: %w", err)
		}
	}

	return nil
}

// FindByID retrieves a provider with its service areas.
func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers p WHERE p.id = $1`

	var p model.Provider
	err := r.pool.QueryRow(ctx, query, id).Scan(providerFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("provider_id", id.String()).Msg("provider not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("provider_id", id.String()).Msg("failed to query provider")
		return nil, fmt.Errorf("failed to query provider: %w", err)
	}

	areas, err := r.serviceAreasFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	return model.RestoreProvider(p, areas[id]), nil
}

// FindByPostalCode retrieves active providers covering zipCode.
func (r *providerRepository) FindByPostalCode(ctx context.Context, zipCode string) ([]*model.Provider, error) {
	query := `
		SELECT ` + providerColumns + `
		FROM providers p
		WHERE p.is_active
		  AND EXISTS (
			SELECT 1 FROM service_areas sa
			WHERE sa.provider_id = p.id AND sa.zip_code = $1
		  )
		ORDER BY p.company_name COLLATE "C", p.seq
	`

	return r.queryProviders(ctx, query, zipCode)
}

// FindAllActive retrieves every active provider.
func (r *providerRepository) FindAllActive(ctx context.Context) ([]*model.Provider, error) {
	query := `
		SELECT ` + providerColumns + `
		FROM providers p
		WHERE p.is_active
		ORDER BY p.company_name COLLATE "C", p.seq
	`

	return r.queryProviders(ctx, query)
}

// Count returns the number of stored providers.
func (r *providerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM providers`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count providers")
		return 0, fmt.Errorf("failed to count providers: %w", err)
	}
	return count, nil
}

func (r *providerRepository) queryProviders(ctx context.Context, query string, args ...any) ([]*model.Provider, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query providers")
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	var found []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(providerFields(&p)...); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan provider row")
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		found = append(found, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating provider rows")
		return nil, fmt.Errorf("error iterating providers: %w", err)
	}

	ids := make([]uuid.UUID, len(found))
	for i := range found {
		ids[i] = found[i].ID
	}

	areas, err := r.serviceAreasFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	providers := make([]*model.Provider, len(found))
	for i := range found {
		providers[i] = model.RestoreProvider(found[i], areas[found[i].ID])
	}
	return providers, nil
}

// serviceAreasFor loads service areas grouped by provider, in insertion order.
func (r *providerRepository) serviceAreasFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.ServiceArea, error) {
	grouped := make(map[uuid.UUID][]model.ServiceArea, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, provider_id, zip_code
		FROM service_areas
		WHERE provider_id = ANY($1)
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query service areas")
		return nil, fmt.Errorf("failed to query service areas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sa model.ServiceArea
		if err := rows.Scan(&sa.ID, &sa.ProviderID, &sa.ZipCode); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan service area row")
			return nil, fmt.Errorf("failed to scan service area: %w", err)
		}
		grouped[sa.ProviderID] = append(grouped[sa.ProviderID], sa)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating service area rows")
		return nil, fmt.Errorf("error iterating service areas: %w", err)
	}

	return grouped, nil
}

func providerFields(p *model.Provider) []any {
	return []any{
		&p.ID,
		&p.CompanyName,
		&p.Phone,
		&p.Email,
		&p.Website,
		&p.Description,
		&p.LogoURL,
		&p.Address.Street,
		&p.Address.City,
		&p.Address.State,
		&p.Address.ZipCode,
		&p.IsActive,
	}
}
