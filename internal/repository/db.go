package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the provider directory and service request tables. Statements are idempotent so
// Migrate can run on every startup.
const schema = `
	CREATE TABLE IF NOT EXISTS providers (
		id UUID PRIMARY KEY,
		seq BIGSERIAL NOT NULL UNIQUE,
		company_name VARCHAR(200) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		email VARCHAR(254) NOT NULL,
		website VARCHAR(500) NOT NULL DEFAULT '',
		description VARCHAR(1000) NOT NULL DEFAULT '',
		logo_url VARCHAR(500) NOT NULL DEFAULT '',
		street VARCHAR(300) NOT NULL,
		city VARCHAR(100) NOT NULL,
		state VARCHAR(2) NOT NULL,
		zip_code VARCHAR(10) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS service_areas (
		id UUID PRIMARY KEY,
		provider_id UUID NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
		zip_code VARCHAR(10) NOT NULL,
		seq BIGSERIAL NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (provider_id, zip_code)
	);

	CREATE TABLE IF NOT EXISTS service_requests (
		id UUID PRIMARY KEY,
		contact_name VARCHAR(200) NOT NULL,
		contact_email VARCHAR(254) NOT NULL,
		contact_phone VARCHAR(20) NOT NULL,
		street VARCHAR(300) NOT NULL,
		city VARCHAR(100) NOT NULL,
		state VARCHAR(2) NOT NULL,
		zip_code VARCHAR(10) NOT NULL,
		issue_description VARCHAR(2000) NOT NULL,
		issue_category VARCHAR(50) NOT NULL,
		urgency_level VARCHAR(20) NOT NULL,
		equipment_details VARCHAR(500) NOT NULL DEFAULT '',
		preferred_schedule VARCHAR(200) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_providers_is_active ON providers(is_active);
	CREATE INDEX IF NOT EXISTS idx_service_areas_zip_code ON service_areas(zip_code);
	CREATE INDEX IF NOT EXISTS idx_service_requests_zip_code ON service_requests(zip_code);
	CREATE INDEX IF NOT EXISTS idx_service_requests_created_at ON service_requests(created_at);
`

// Migrate creates the tables used by the postgres directory and request store.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
