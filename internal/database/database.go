package database

import (
	"context"
	"fmt"
	"time"

	"hvac-finder/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ApplicationName identifies this service's sessions in pg_stat_activity.
const ApplicationName = "hvac-finder"

// ServerInfo describes the database a pool is connected to.
type ServerInfo struct {
	Database string
	Version  string
}

// NewPool creates a PostgreSQL connection pool for the provider directory and
// checks that the server answers before returning it.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "database").Logger()

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	info, err := Describe(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("database", info.Database).
		Str("server_version", info.Version).
		Msg("database connection pool ready")

	return pool, nil
}

// Describe reports which database the pool reaches and its server version.
func Describe(ctx context.Context, pool *pgxpool.Pool) (ServerInfo, error) {
	var info ServerInfo
	err := pool.QueryRow(ctx, `SELECT current_database(), current_setting('server_version')`).
		Scan(&info.Database, &info.Version)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to describe database: %w", err)
	}
	return info, nil
}
