package integration

import (
	"context"
	"testing"
	"time"

	"hvac-finder/internal/config"
	"hvac-finder/internal/database"
	"hvac-finder/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB starts a PostgreSQL container, connects through the
// application's pool constructor and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedProviders inserts the sample providers through the postgres directory.
func SeedProviders(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	dir := repository.NewProviderRepository(pool, zerolog.Nop())
	if _, err := repository.Seed(context.Background(), dir, zerolog.Nop()); err != nil {
		t.Fatalf("failed to seed providers: %v", err)
	}
}

// CleanupDB removes all providers, their service areas and service requests.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "TRUNCATE providers, service_requests CASCADE"); err != nil {
		t.Logf("failed to clean tables: %v", err)
	}
}
